package focus

// Op enumerates the focus actions.
type Op int

const (
	OpUnfocus Op = iota
	OpUp
	OpDown
	OpPageUp
	OpPageDown
	OpSelect
)

// Action is one focus action. Key is only meaningful for OpSelect.
type Action[K comparable] struct {
	Op  Op
	Key K
}

// Select builds an explicit-selection action for the given key.
func Select[K comparable](key K) Action[K] { return Action[K]{Op: OpSelect, Key: key} }

// Model is the whole focus state: the actively focused row plus the shadow,
// the last-known identity of a row that was focused but no longer is. The
// shadow only seeds "where do I resume from" on the next Up/Down issued
// while nothing is focused; every other transition clears it.
type Model[K comparable] struct {
	Current *Triple[K]
	Shadow  *Triple[K]
}

// FocusedKey returns the currently focused key, if any.
func (m Model[K]) FocusedKey() (K, bool) {
	if m.Current == nil {
		var zero K
		return zero, false
	}
	return m.Current.Key, true
}

// Effects is everything a transition wants the host to do. Returned as a
// value rather than invoked mid-transition, which keeps Apply pure.
type Effects[K comparable] struct {
	// Changed is true when the focused key differs from before the
	// transition (compared by key, not by index or id). Key then holds
	// the new focus; nil means focus was cleared.
	Changed bool
	Key     *K
	Scroll  *ScrollIntent
}

// TraceFunc receives diagnostics for lookups that should have succeeded but
// didn't. Such misses degrade to a no-op instead of an error; the trace is
// the only place they surface.
type TraceFunc func(format string, args ...any)

// Apply runs one action against one window snapshot and visible range,
// returning the next model and the side effects for the host. It is the
// only way a Model changes. The snapshot and range are read-only inputs;
// concurrent actions must be serialized by the caller's event loop.
func Apply[K comparable, V any](m Model[K], a Action[K], w Window[K, V], vr Range, g Geometry, trace TraceFunc) (Model[K], Effects[K]) {
	if trace == nil {
		trace = func(string, ...any) {}
	}
	if a.Op != OpUnfocus && !vr.Valid() {
		trace("focus: inverted visible range (%d, %d)", vr.Start, vr.End)
		return m, Effects[K]{}
	}

	var next Model[K]
	var scroll *ScrollIntent

	switch a.Op {
	case OpSelect:
		if t, ok := FindByKey(w, a.Key); ok {
			next.Current = &t
			// An explicit selection always forces the row into view; no
			// range-membership check gates the scroll.
			scroll = g.intent(t.Index, vr, nil)
		} else {
			trace("focus: select %v: key not materialized", a.Key)
		}

	case OpUnfocus:
		if m.Current != nil {
			next.Shadow = m.Current
		} else {
			next.Shadow = m.Shadow
		}

	case OpUp, OpDown:
		next.Current, scroll = step(m, a.Op, w, vr, g, trace)

	case OpPageUp:
		// Jump to the top edge, anchoring the row's bottom so the next
		// page's bottom stays put. The far-edge anchor is intentional.
		next.Current, scroll = pageTo(m, w, vr, vr.Start, AnchorBottom, g, trace)

	case OpPageDown:
		next.Current, scroll = pageTo(m, w, vr, vr.End, AnchorTop, g, trace)
	}

	eff := Effects[K]{Scroll: scroll}
	if !sameKey(m.Current, next.Current) {
		eff.Changed = true
		if next.Current != nil {
			k := next.Current.Key
			eff.Key = &k
		}
	}
	return next, eff
}

// step handles Up and Down: re-resolve whatever identity we have, move one
// row, and reconcile the result against the visible range.
func step[K comparable, V any](m Model[K], op Op, w Window[K, V], vr Range, g Geometry, trace TraceFunc) (*Triple[K], *ScrollIntent) {
	delta := 1
	if op == OpUp {
		delta = -1
	}

	var cand *Triple[K]
	switch {
	case m.Current != nil:
		cur := *m.Current
		if re, ok := FindByKey(w, cur.Key); ok {
			if t, ok := FindByIndex(w, re.Index+delta); ok {
				cand = &t
			} else {
				// Neighbour not materialized: stay in place rather than
				// lose focus.
				cand = m.Current
			}
		} else {
			// The focused row vanished. Down lands on whatever occupies
			// the old slot now; Up lands on the slot above it. When that
			// slot is gone too (the row was at the collection's edge),
			// the other neighbour keeps focus near where it was.
			primary, fallback := cur.Index, cur.Index-1
			if op == OpUp {
				primary, fallback = cur.Index-1, cur.Index
			}
			if t, ok := FindByIndex(w, primary); ok {
				cand = &t
			} else if t, ok := FindByIndex(w, fallback); ok {
				cand = &t
			} else {
				trace("focus: row %v gone and slots %d/%d empty", cur.Key, primary, fallback)
			}
		}

	case m.Shadow != nil:
		// Resume near the remembered row: one step beyond it, falling
		// back to the slot itself.
		sh := *m.Shadow
		if t, ok := FindByIndex(w, sh.Index+delta); ok {
			cand = &t
		} else if t, ok := FindByIndex(w, sh.Index); ok {
			cand = &t
		}

	default:
		// Nothing focused, nothing remembered. Down enters at the top of
		// the visible range; Up enters at the bottom of the presently
		// knowable world, clamped for collections shorter than the range.
		base := vr.Start
		if op == OpUp {
			// The clamp term is rowsAfter+windowLength, not windowLength-1:
			// it matters at the end of a collection shorter than the range.
			base = min(vr.End, w.After+len(w.Rows))
		}
		if t, ok := FindByIndex(w, base); ok {
			cand = &t
		} else if _, winEnd := Bounds(w); op == OpUp && winEnd > 0 {
			// Base fell past the materialized tail; recover on the last
			// row we can actually see.
			if t, ok := FindByIndex(w, winEnd-1); ok {
				cand = &t
			} else {
				trace("focus: up base %d unresolvable", base)
			}
		}
	}

	if cand == nil {
		return nil, nil
	}

	res := FindInRange(vr, w, &cand.Key, &cand.ID, &cand.Index)
	switch res.Outcome {
	case InRange:
		t := res.Row
		return &t, nil
	case Nearest:
		// The candidate is a real window row outside the visible range:
		// keep it focused and ask the host to bring it into view.
		return cand, g.intent(cand.Index, vr, nil)
	default:
		trace("focus: indeterminate reconciliation for index %d", cand.Index)
		return cand, nil
	}
}

// pageTo handles PageUp/PageDown: unconditionally target a visible-range
// edge, clamped to what the window can supply, with a forced anchor.
func pageTo[K comparable, V any](m Model[K], w Window[K, V], vr Range, target int, forced Anchor, g Geometry, trace TraceFunc) (*Triple[K], *ScrollIntent) {
	winStart, winEnd := Bounds(w)
	if winEnd == winStart {
		return m.Current, nil
	}

	idx := clamp(target, winStart, winEnd-1)
	res := FindInRange(vr, w, nil, nil, &idx)
	switch res.Outcome {
	case InRange, Nearest:
		t := res.Row
		return &t, g.anchored(t.Index, forced)
	default:
		// Window and range share nothing; leave focus untouched.
		trace("focus: page target %d unresolvable", target)
		return m.Current, nil
	}
}

func sameKey[K comparable](a, b *Triple[K]) bool {
	switch {
	case a == nil && b == nil:
		return true
	case a == nil || b == nil:
		return false
	default:
		return a.Key == b.Key
	}
}

// Engine owns a Model and applies one action at a time against caller-owned
// snapshots. It exposes the operation surface the host wires to its inputs.
type Engine[K comparable, V any] struct {
	model Model[K]
	geom  Geometry
	trace TraceFunc
}

// NewEngine creates an engine with no focus and the given geometry.
func NewEngine[K comparable, V any](g Geometry) *Engine[K, V] {
	return &Engine[K, V]{geom: g}
}

// SetTrace installs a diagnostics hook for degraded lookups.
func (e *Engine[K, V]) SetTrace(f TraceFunc) { e.trace = f }

// Model returns a copy of the current focus state.
func (e *Engine[K, V]) Model() Model[K] { return e.model }

// VisuallyFocusedKey returns the key the state machine considers focused,
// independent of any application-level presence check.
func (e *Engine[K, V]) VisuallyFocusedKey() (K, bool) { return e.model.FocusedKey() }

// Apply runs one action and records the resulting model.
func (e *Engine[K, V]) Apply(a Action[K], w Window[K, V], vr Range) Effects[K] {
	m, eff := Apply(e.model, a, w, vr, e.geom, e.trace)
	e.model = m
	return eff
}

// Unfocus clears focus, remembering the old row as the shadow.
func (e *Engine[K, V]) Unfocus(w Window[K, V], vr Range) Effects[K] {
	return e.Apply(Action[K]{Op: OpUnfocus}, w, vr)
}

// FocusUp moves focus one row up.
func (e *Engine[K, V]) FocusUp(w Window[K, V], vr Range) Effects[K] {
	return e.Apply(Action[K]{Op: OpUp}, w, vr)
}

// FocusDown moves focus one row down.
func (e *Engine[K, V]) FocusDown(w Window[K, V], vr Range) Effects[K] {
	return e.Apply(Action[K]{Op: OpDown}, w, vr)
}

// PageUp jumps focus to the top edge of the visible range.
func (e *Engine[K, V]) PageUp(w Window[K, V], vr Range) Effects[K] {
	return e.Apply(Action[K]{Op: OpPageUp}, w, vr)
}

// PageDown jumps focus to the bottom edge of the visible range.
func (e *Engine[K, V]) PageDown(w Window[K, V], vr Range) Effects[K] {
	return e.Apply(Action[K]{Op: OpPageDown}, w, vr)
}

// Focus selects the row with the given key explicitly.
func (e *Engine[K, V]) Focus(key K, w Window[K, V], vr Range) Effects[K] {
	return e.Apply(Select(key), w, vr)
}

// Reconcile re-resolves the focused identity after the window has been
// re-materialized (re-sort, re-filter, insert, remove). The key wins when
// it still exists, then the old index, then the old id; a row that fell
// outside the visible range is replaced by the boundary row. Indeterminate
// leaves the model untouched so a later snapshot can still recover it.
// Reconcile never emits scroll intents — the window follows the viewport,
// not the other way round.
func (e *Engine[K, V]) Reconcile(w Window[K, V], vr Range) Effects[K] {
	if e.model.Current == nil {
		return Effects[K]{}
	}
	cur := *e.model.Current
	res := FindInRange(vr, w, &cur.Key, &cur.ID, &cur.Index)
	if res.Outcome == Indeterminate {
		if e.trace != nil {
			e.trace("focus: reconcile %v indeterminate", cur.Key)
		}
		return Effects[K]{}
	}

	t := res.Row
	e.model.Current = &t
	if t.Key == cur.Key {
		return Effects[K]{}
	}
	k := t.Key
	return Effects[K]{Changed: true, Key: &k}
}
