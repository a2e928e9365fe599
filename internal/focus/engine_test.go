package focus

import "testing"

var testGeom = Geometry{RowHeight: 1, HeaderHeight: 1}

func newTestEngine() *Engine[string, string] {
	return NewEngine[string, string](testGeom)
}

func requireFocus(t *testing.T, e *Engine[string, string], want string) {
	t.Helper()
	key, ok := e.VisuallyFocusedKey()
	if !ok {
		t.Fatalf("nothing focused, want %q", want)
	}
	if key != want {
		t.Fatalf("focused %q, want %q", key, want)
	}
}

func requireUnfocused(t *testing.T, e *Engine[string, string]) {
	t.Helper()
	if key, ok := e.VisuallyFocusedKey(); ok {
		t.Fatalf("focused %q, want nothing", key)
	}
}

// The walkthrough from the package's reason for existing: a three-row
// window, down, down, up.
func TestDownDownUp(t *testing.T) {
	w := testWindow(0, 0, 1, "k0", "k1", "k4")
	vr := Range{Start: 0, End: 2}
	e := newTestEngine()

	eff := e.FocusDown(w, vr)
	requireFocus(t, e, "k0")
	if !eff.Changed || eff.Key == nil || *eff.Key != "k0" {
		t.Fatalf("first Down: effects = %+v, want change to k0", eff)
	}

	e.FocusDown(w, vr)
	requireFocus(t, e, "k1")

	eff = e.FocusUp(w, vr)
	requireFocus(t, e, "k0")
	if !eff.Changed {
		t.Fatal("Up back to k0 should notify")
	}
}

func TestDownUpSymmetry(t *testing.T) {
	w := testWindow(0, 0, 1, "a", "b", "c", "d", "e")
	vr := Range{Start: 0, End: 4}
	e := newTestEngine()
	e.Focus("c", w, vr)

	e.FocusDown(w, vr)
	requireFocus(t, e, "d")
	e.FocusUp(w, vr)
	requireFocus(t, e, "c")
}

func TestDownAtBottomStaysPut(t *testing.T) {
	w := testWindow(0, 0, 1, "a", "b", "c")
	vr := Range{Start: 0, End: 2}
	e := newTestEngine()
	e.Focus("c", w, vr)

	eff := e.FocusDown(w, vr)
	requireFocus(t, e, "c")
	if eff.Changed {
		t.Fatal("staying in place must not notify")
	}
	if eff.Scroll != nil {
		t.Fatalf("staying in place emitted scroll %+v", eff.Scroll)
	}
}

func TestDownPastVisibleEdgeScrolls(t *testing.T) {
	w := testWindow(0, 0, 1, "a", "b", "c", "d", "e")
	vr := Range{Start: 0, End: 2}
	e := newTestEngine()
	e.Focus("c", w, vr)

	eff := e.FocusDown(w, vr)
	requireFocus(t, e, "d")
	if eff.Scroll == nil {
		t.Fatal("moving below the visible range must emit a scroll intent")
	}
	if eff.Scroll.Index != 3 || eff.Scroll.Anchor != AnchorBottom {
		t.Fatalf("scroll = %+v, want index 3 anchored bottom", eff.Scroll)
	}
}

func TestRemovalResumesDirectionally(t *testing.T) {
	before := testWindow(0, 0, 1, "0", "1", "4")
	vr := Range{Start: 0, End: 2}

	// Remove the focused row "1", then Down lands on "4".
	e := newTestEngine()
	e.Focus("1", before, vr)
	after := testWindow(0, 0, 10, "0", "4")
	e.FocusDown(after, vr)
	requireFocus(t, e, "4")

	// Same removal, Up instead: lands on "0".
	e = newTestEngine()
	e.Focus("1", before, vr)
	e.FocusUp(after, vr)
	requireFocus(t, e, "0")
}

func TestUnfocusShadowResume(t *testing.T) {
	w := testWindow(0, 0, 1, "a", "b", "c")
	vr := Range{Start: 0, End: 2}
	e := newTestEngine()
	e.Focus("c", w, vr)

	eff := e.Unfocus(w, vr)
	requireUnfocused(t, e)
	if !eff.Changed || eff.Key != nil {
		t.Fatalf("unfocus effects = %+v, want change to none", eff)
	}

	// Down resumes at +1 from the old index; +1 doesn't exist here, so it
	// falls back to the old index itself and refocuses "c".
	e.FocusDown(w, vr)
	requireFocus(t, e, "c")
}

func TestUnfocusWhenAlreadyUnfocusedKeepsShadow(t *testing.T) {
	w := testWindow(0, 0, 1, "a", "b", "c")
	vr := Range{Start: 0, End: 2}
	e := newTestEngine()
	e.Focus("b", w, vr)
	e.Unfocus(w, vr)

	eff := e.Unfocus(w, vr)
	if eff.Changed {
		t.Fatal("second Unfocus must not notify")
	}
	// Shadow survived the second Unfocus: Up resumes at -1 from "b".
	e.FocusUp(w, vr)
	requireFocus(t, e, "a")
}

func TestShadowIsSingleUse(t *testing.T) {
	w := testWindow(0, 0, 1, "a", "b", "c", "d")
	vr := Range{Start: 0, End: 3}
	e := newTestEngine()
	e.Focus("b", w, vr)
	e.Unfocus(w, vr)

	e.FocusDown(w, vr) // consumes shadow: resumes at index 2
	requireFocus(t, e, "c")
	if e.Model().Shadow != nil {
		t.Fatal("shadow must be cleared once consumed")
	}
}

func TestSelectForcesScroll(t *testing.T) {
	w := testWindow(0, 0, 1, "k0", "k1", "k4")
	vr := Range{Start: 0, End: 1}
	e := newTestEngine()

	eff := e.Focus("k4", w, vr)
	requireFocus(t, e, "k4")
	if eff.Scroll == nil {
		t.Fatal("selecting an off-range row must emit a scroll intent")
	}
	if eff.Scroll.Index != 2 || eff.Scroll.Anchor != AnchorBottom {
		t.Fatalf("scroll = %+v, want index 2 anchored bottom", eff.Scroll)
	}
	if eff.Scroll.Offset != 3 {
		t.Fatalf("scroll offset = %d, want 3 (bottom of row 2 at height 1)", eff.Scroll.Offset)
	}
}

func TestSelectMissingKeyClearsFocus(t *testing.T) {
	w := testWindow(0, 0, 1, "a", "b")
	vr := Range{Start: 0, End: 1}
	e := newTestEngine()
	e.Focus("a", w, vr)

	eff := e.Focus("missing", w, vr)
	requireUnfocused(t, e)
	if !eff.Changed || eff.Key != nil {
		t.Fatalf("effects = %+v, want change to none", eff)
	}
}

func TestPageDownIdempotent(t *testing.T) {
	w := testWindow(0, 0, 1, "a", "b", "c", "d", "e")
	vr := Range{Start: 1, End: 3}
	e := newTestEngine()

	e.PageDown(w, vr)
	requireFocus(t, e, "d")
	eff := e.PageDown(w, vr)
	requireFocus(t, e, "d")
	if eff.Changed {
		t.Fatal("second PageDown with an unshifted window must not notify")
	}
}

func TestPageAnchorsFarEdge(t *testing.T) {
	w := testWindow(0, 0, 1, "a", "b", "c", "d", "e")
	vr := Range{Start: 1, End: 3}
	e := newTestEngine()

	eff := e.PageUp(w, vr)
	requireFocus(t, e, "b")
	if eff.Scroll == nil || eff.Scroll.Anchor != AnchorBottom {
		t.Fatalf("PageUp scroll = %+v, want bottom anchor", eff.Scroll)
	}

	eff = e.PageDown(w, vr)
	requireFocus(t, e, "d")
	if eff.Scroll == nil || eff.Scroll.Anchor != AnchorTop {
		t.Fatalf("PageDown scroll = %+v, want top anchor", eff.Scroll)
	}
}

func TestPageClampsToShortCollection(t *testing.T) {
	w := testWindow(0, 0, 1, "a", "b")
	vr := Range{Start: 0, End: 5}
	e := newTestEngine()

	e.PageDown(w, vr)
	requireFocus(t, e, "b")
}

func TestUpFromNothingStartsAtBottom(t *testing.T) {
	w := testWindow(0, 0, 1, "a", "b", "c")
	vr := Range{Start: 0, End: 2}
	e := newTestEngine()

	e.FocusUp(w, vr)
	requireFocus(t, e, "c")
}

func TestUpFromNothingClampsToCollectionEnd(t *testing.T) {
	// Viewport taller than the whole collection: the base index computed
	// from the range would point past the final row.
	w := testWindow(0, 0, 1, "a", "b", "c")
	vr := Range{Start: 0, End: 9}
	e := newTestEngine()

	e.FocusUp(w, vr)
	requireFocus(t, e, "c")
}

func TestDownFromNothingStartsAtRangeTop(t *testing.T) {
	w := testWindow(0, 0, 1, "a", "b", "c")
	vr := Range{Start: 1, End: 2}
	e := newTestEngine()

	e.FocusDown(w, vr)
	requireFocus(t, e, "b")
}

func TestInvertedRangeIsNoOp(t *testing.T) {
	w := testWindow(0, 0, 1, "a", "b", "c")
	e := newTestEngine()
	e.Focus("b", w, Range{Start: 0, End: 2})

	var traced bool
	e.SetTrace(func(string, ...any) { traced = true })
	eff := e.FocusDown(w, Range{Start: 2, End: 0})
	requireFocus(t, e, "b")
	if eff.Changed || eff.Scroll != nil {
		t.Fatalf("inverted range produced effects %+v", eff)
	}
	if !traced {
		t.Fatal("inverted range should be reported through the trace hook")
	}
}

func TestReconcileFollowsKeyAcrossResort(t *testing.T) {
	vr := Range{Start: 0, End: 2}
	e := newTestEngine()
	e.Focus("b", testWindow(0, 0, 10, "a", "b", "c"), vr)

	// Re-sort reversed the order and re-materialized (fresh ids).
	resorted := testWindow(0, 0, 20, "c", "b", "a")
	eff := e.Reconcile(resorted, vr)
	requireFocus(t, e, "b")
	if eff.Changed {
		t.Fatal("same key after re-sort must not notify")
	}
	if e.Model().Current.ID != resorted.Rows[1].ID {
		t.Fatal("reconcile must refresh the window-local id")
	}
}

func TestReconcileFallsBackToIndexWhenKeyGone(t *testing.T) {
	vr := Range{Start: 0, End: 2}
	e := newTestEngine()
	e.Focus("b", testWindow(0, 0, 10, "a", "b", "c"), vr)

	refiltered := testWindow(0, 0, 20, "a", "c")
	eff := e.Reconcile(refiltered, vr)
	requireFocus(t, e, "c")
	if !eff.Changed || eff.Key == nil || *eff.Key != "c" {
		t.Fatalf("effects = %+v, want change to c", eff)
	}
}

func TestReconcileIndeterminateLeavesModelAlone(t *testing.T) {
	vr := Range{Start: 0, End: 2}
	e := newTestEngine()
	e.Focus("b", testWindow(0, 0, 10, "a", "b", "c"), vr)

	eff := e.Reconcile(Window[string, string]{}, vr)
	requireFocus(t, e, "b")
	if eff.Changed {
		t.Fatalf("effects = %+v, want none", eff)
	}
}
