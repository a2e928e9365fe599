package focus

// Locator functions. All of them are pure: they search one Window snapshot
// and return a resolved Triple without touching any state.

// FindByKey returns the triple for the row with the given key, if the row is
// materialized. Keys are unique across the whole collection, so the first
// match is the only match.
func FindByKey[K comparable, V any](w Window[K, V], key K) (Triple[K], bool) {
	for i, r := range w.Rows {
		if r.Key == key {
			return Triple[K]{Key: r.Key, ID: r.ID, Index: w.Before + i}, true
		}
	}
	return Triple[K]{}, false
}

// FindByIndex returns the triple for the row at the given logical index, or
// false when the index falls outside the window. Rows are stored in display
// order, so the lookup is a single bounds check rather than a scan.
func FindByIndex[K comparable, V any](w Window[K, V], index int) (Triple[K], bool) {
	i := index - w.Before
	if i < 0 || i >= len(w.Rows) {
		return Triple[K]{}, false
	}
	r := w.Rows[i]
	return Triple[K]{Key: r.Key, ID: r.ID, Index: index}, true
}

// FindByID returns the triple for the row with the given window-local id.
// Only meaningful while the window that assigned the id is still current.
func FindByID[K comparable, V any](w Window[K, V], id RowID) (Triple[K], bool) {
	for i, r := range w.Rows {
		if r.ID == id {
			return Triple[K]{Key: r.Key, ID: r.ID, Index: w.Before + i}, true
		}
	}
	return Triple[K]{}, false
}

// Bounds returns the half-open interval of logical indices the window
// materializes: [start, end).
func Bounds[K comparable, V any](w Window[K, V]) (start, end int) {
	return w.Before, w.Before + len(w.Rows)
}

// Outcome tags a RangeResult.
type Outcome int

const (
	// Indeterminate means the window and the candidate range share no
	// information: the window is empty, lies entirely outside the visible
	// range, or every lookup failed. The caller must treat focus as
	// unknown, not as cleared.
	Indeterminate Outcome = iota
	// InRange means the referenced row resolved to an index inside the
	// visible range.
	InRange
	// Nearest means the row could not be confirmed in range; the nearest
	// boundary row was substituted instead.
	Nearest
)

// RangeResult is the outcome of reconciling a possibly stale row reference
// against the current window. Row holds the resolved row for InRange and
// the substituted boundary row for Nearest; it is zero for Indeterminate.
type RangeResult[K comparable] struct {
	Outcome Outcome
	Row     Triple[K]
}

// FindInRange reconciles a previously captured identity against the current
// window and visible range. key, id, and index are each optional (nil means
// "not known"); resolution tries them in strict priority order and takes the
// first success:
//
//  1. by key   — survives reordering, the most stable reference
//  2. by index — survives while the data hasn't moved
//  3. by id    — valid only if the window hasn't re-materialized
//
// The order is load-bearing. When a data mutation leaves the three stale
// references pointing at different rows, the key resolution must win, then
// index, then id; changing the order changes which row gets focus.
//
// A successful resolution inside vr yields InRange. A resolution outside vr
// substitutes the row at the nearer range boundary (clamped to what the
// window can supply) and yields Nearest. If nothing resolves, the row at
// vr.Start is tried as a last resort; failing that, the result is
// Indeterminate.
func FindInRange[K comparable, V any](vr Range, w Window[K, V], key *K, id *RowID, index *int) RangeResult[K] {
	if !vr.Valid() || len(w.Rows) == 0 {
		return RangeResult[K]{Outcome: Indeterminate}
	}
	winStart, winEnd := Bounds(w)
	if winEnd <= vr.Start || winStart > vr.End {
		// Zero overlap between the window and the visible range.
		return RangeResult[K]{Outcome: Indeterminate}
	}

	resolved, ok := Triple[K]{}, false
	if key != nil {
		resolved, ok = FindByKey(w, *key)
	}
	if !ok && index != nil {
		resolved, ok = FindByIndex(w, *index)
	}
	if !ok && id != nil {
		resolved, ok = FindByID(w, *id)
	}

	if !ok {
		if sub, found := FindByIndex(w, vr.Start); found {
			return RangeResult[K]{Outcome: Nearest, Row: sub}
		}
		return RangeResult[K]{Outcome: Indeterminate}
	}

	if vr.Contains(resolved.Index) {
		return RangeResult[K]{Outcome: InRange, Row: resolved}
	}

	// Out of range: substitute the boundary row on the side the resolution
	// fell off, clamped into the window.
	target := vr.Start
	if resolved.Index > vr.End {
		target = vr.End
	}
	if sub, found := FindByIndex(w, clamp(target, winStart, winEnd-1)); found {
		return RangeResult[K]{Outcome: Nearest, Row: sub}
	}
	return RangeResult[K]{Outcome: Indeterminate}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
