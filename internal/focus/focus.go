// Package focus tracks which row of a virtualized, filtered, sorted table is
// focused, and keeps that focus correct as the underlying data mutates out
// from under it.
//
// Only a contiguous window of the logical collection is ever materialized.
// A focused row can therefore be referenced three ways, each of which goes
// stale independently:
//
//   - by key    — stable across the whole collection, survives re-sorting
//   - by index  — logical position, survives while the data doesn't move
//   - by id     — window-local handle, valid only until re-materialization
//
// The locator functions resolve these references against a Window snapshot;
// the state machine in engine.go applies one action at a time against one
// snapshot and returns the new model together with the side effects (scroll
// intent, focus-changed notification) for the host to consume. The package
// performs no rendering and no scrolling itself.
package focus

// RowID identifies a row within a single window materialization. It is
// deliberately opaque: a collator assigns fresh ids every time it
// materializes a window, so a RowID captured before the window moved never
// aliases a different row afterwards.
type RowID int64

// Row is one window-resident row: its collection-wide key plus the payload
// the host wants rendered.
type Row[K comparable, V any] struct {
	ID   RowID
	Key  K
	Data V
}

// Window is an immutable snapshot of the materialized slice of the
// collection. Rows are in display order. Before and After count the
// unmaterialized rows on either side, so the logical index of Rows[i] is
// Before + i.
type Window[K comparable, V any] struct {
	Before int
	After  int
	Rows   []Row[K, V]
}

// Len returns the number of materialized rows.
func (w Window[K, V]) Len() int { return len(w.Rows) }

// Triple is a fully resolved identity of one row at one point in time:
// key, window-local id, and logical index. Triples are never stored long
// term by callers — the state machine recomputes them on every transition.
// Two triples refer to the same row exactly when their keys are equal;
// index and id only break ties during a search.
type Triple[K comparable] struct {
	Key   K
	ID    RowID
	Index int
}

// Range is an inclusive range of logical indices, normally the rows the
// host's viewport currently shows.
type Range struct {
	Start int
	End   int
}

// Contains reports whether idx falls inside the range.
func (r Range) Contains(idx int) bool { return idx >= r.Start && idx <= r.End }

// Valid reports whether the range is well formed. An inverted range is a
// caller contract violation and short-circuits resolution to Indeterminate
// rather than feeding undefined arithmetic downstream.
func (r Range) Valid() bool { return r.End >= r.Start }
