package focus

import "testing"

// testWindow builds a window whose rows get ids base, base+1, ... so tests
// can reference ids from a "previous" materialization by using a stale base.
func testWindow(before, after int, base RowID, keys ...string) Window[string, string] {
	rows := make([]Row[string, string], len(keys))
	for i, k := range keys {
		rows[i] = Row[string, string]{ID: base + RowID(i), Key: k, Data: k + "-data"}
	}
	return Window[string, string]{Before: before, After: after, Rows: rows}
}

func TestFindByIndexRecomputesIndex(t *testing.T) {
	w := testWindow(5, 3, 100, "a", "b", "c", "d")
	start, end := Bounds(w)
	if start != 5 || end != 9 {
		t.Fatalf("bounds = (%d, %d), want (5, 9)", start, end)
	}
	for i := start; i < end; i++ {
		got, ok := FindByIndex(w, i)
		if !ok {
			t.Fatalf("FindByIndex(%d) failed inside window", i)
		}
		if got.Index != i {
			t.Errorf("FindByIndex(%d).Index = %d", i, got.Index)
		}
	}
	for _, i := range []int{4, 9, -1, 100} {
		if _, ok := FindByIndex(w, i); ok {
			t.Errorf("FindByIndex(%d) succeeded outside window", i)
		}
	}
}

func TestFindByKeyAndIDAgree(t *testing.T) {
	w := testWindow(10, 0, 40, "x", "y", "z")
	for _, r := range w.Rows {
		byKey, ok := FindByKey(w, r.Key)
		if !ok {
			t.Fatalf("FindByKey(%q) failed", r.Key)
		}
		byID, ok := FindByID(w, r.ID)
		if !ok {
			t.Fatalf("FindByID(%d) failed", r.ID)
		}
		if byKey.Index != byID.Index {
			t.Errorf("key/id disagree for %q: %d vs %d", r.Key, byKey.Index, byID.Index)
		}
		if byKey != byID {
			t.Errorf("key/id triples differ for %q: %+v vs %+v", r.Key, byKey, byID)
		}
	}
	if _, ok := FindByKey(w, "missing"); ok {
		t.Error("FindByKey found a key that is not in the window")
	}
	if _, ok := FindByID(w, 999); ok {
		t.Error("FindByID found an id that is not in the window")
	}
}

func TestFindInRangePriority(t *testing.T) {
	// Stale key, index, and id each resolve to a different row: key must
	// beat index, index must beat id.
	w := testWindow(0, 0, 10, "a", "b", "c")
	vr := Range{Start: 0, End: 2}

	key, idx, id := "c", 1, RowID(10) // "c" at 2, index 1 is "b", id 10 is "a"

	res := FindInRange(vr, w, &key, &id, &idx)
	if res.Outcome != InRange || res.Row.Key != "c" {
		t.Fatalf("key should win: got %+v", res)
	}

	res = FindInRange(vr, w, nil, &id, &idx)
	if res.Outcome != InRange || res.Row.Key != "b" {
		t.Fatalf("index should beat id: got %+v", res)
	}

	res = FindInRange(vr, w, nil, &id, nil)
	if res.Outcome != InRange || res.Row.Key != "a" {
		t.Fatalf("id is the last resort: got %+v", res)
	}

	// A key that no longer exists falls through to the index.
	gone := "gone"
	res = FindInRange(vr, w, &gone, &id, &idx)
	if res.Outcome != InRange || res.Row.Key != "b" {
		t.Fatalf("missing key should fall through to index: got %+v", res)
	}
}

func TestFindInRangeBoundarySubstitution(t *testing.T) {
	w := testWindow(0, 0, 0, "a", "b", "c", "d", "e")

	// Resolved below the visible range: boundary row at vr.Start.
	key := "a"
	res := FindInRange(Range{Start: 2, End: 4}, w, &key, nil, nil)
	if res.Outcome != Nearest || res.Row.Key != "c" {
		t.Fatalf("below range: got %+v, want Nearest(c)", res)
	}

	// Resolved above the visible range: boundary row at vr.End.
	key = "e"
	res = FindInRange(Range{Start: 0, End: 2}, w, &key, nil, nil)
	if res.Outcome != Nearest || res.Row.Key != "c" {
		t.Fatalf("above range: got %+v, want Nearest(c)", res)
	}

	// Nothing resolves at all: the row at vr.Start substitutes.
	gone := "gone"
	idx := 99
	id := RowID(999)
	res = FindInRange(Range{Start: 1, End: 3}, w, &gone, &id, &idx)
	if res.Outcome != Nearest || res.Row.Key != "b" {
		t.Fatalf("total miss: got %+v, want Nearest(b)", res)
	}
}

func TestFindInRangeIndeterminate(t *testing.T) {
	empty := Window[string, string]{}
	full := testWindow(0, 0, 0, "a", "b")
	farWindow := testWindow(50, 0, 0, "x", "y")
	key := "a"

	cases := []struct {
		name string
		vr   Range
		w    Window[string, string]
	}{
		{"empty window", Range{Start: 0, End: 5}, empty},
		{"inverted range", Range{Start: 3, End: 1}, full},
		{"no overlap", Range{Start: 0, End: 9}, farWindow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := FindInRange(tc.vr, tc.w, &key, nil, nil)
			if res.Outcome != Indeterminate {
				t.Fatalf("got %+v, want Indeterminate", res)
			}
		})
	}

	// Overlapping window that cannot supply vr.Start and has no resolvable
	// candidate also ends Indeterminate rather than inventing a row.
	w := testWindow(3, 0, 0, "m", "n", "o")
	gone := "gone"
	res := FindInRange(Range{Start: 0, End: 4}, w, &gone, nil, nil)
	if res.Outcome != Indeterminate {
		t.Fatalf("unsuppliable boundary: got %+v, want Indeterminate", res)
	}
}
