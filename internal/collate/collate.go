// Package collate maintains the collated view of a row set: the full
// collection filtered, sorted, and sliced into the window snapshots the
// focus engine consumes. The collator owns the logical ordering; callers own
// the items and ask for a materialized window when their viewport moves.
package collate

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	textcollate "golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sgeisenh/bonsai/internal/focus"
)

// Item is one logical row before collation. Key must be unique across the
// whole collection; Filter is the text the fuzzy filter matches against.
type Item[V any] struct {
	Key    string
	Filter string
	Value  V
}

// Collator filters, sorts, and windows a row set. It is not safe for
// concurrent use: like the focus engine, it belongs to the host's event
// loop, which mutates and materializes it one step at a time.
type Collator[V any] struct {
	coll   *textcollate.Collator
	items  []Item[V]
	less   func(a, b Item[V]) bool
	filter string

	view    []int // indices into items, display order
	present map[string]struct{}
	stale   bool
	gen     int64 // window materialization generation, tags RowIDs
}

// New creates a collator that orders string keys according to the given
// language's collation rules, with numeric runs compared by value so
// "entry9" sorts before "entry10".
func New[V any](tag language.Tag) *Collator[V] {
	return &Collator[V]{
		coll:  textcollate.New(tag, textcollate.Numeric),
		stale: true,
	}
}

// SetItems replaces the full row set.
func (c *Collator[V]) SetItems(items []Item[V]) {
	c.items = items
	c.stale = true
}

// SetLess installs a column comparator that overrides the default key
// collation. Ties still break by collated key so the order stays total
// and re-collation is stable.
func (c *Collator[V]) SetLess(less func(a, b Item[V]) bool) {
	c.less = less
	c.stale = true
}

// SetFilter replaces the fuzzy filter query. An empty query matches
// everything.
func (c *Collator[V]) SetFilter(query string) {
	if query == c.filter {
		return
	}
	c.filter = query
	c.stale = true
}

// Filter returns the current filter query.
func (c *Collator[V]) Filter() string { return c.filter }

// Len returns the number of rows in the collated (filtered) view.
func (c *Collator[V]) Len() int {
	c.rebuild()
	return len(c.view)
}

// Total returns the size of the unfiltered collection.
func (c *Collator[V]) Total() int { return len(c.items) }

// Contains reports whether the key survives the current filter. This is
// the presence check the host projects the focused key through.
func (c *Collator[V]) Contains(key string) bool {
	c.rebuild()
	_, ok := c.present[key]
	return ok
}

// Materialize slices the collated view into a window of at most length rows
// starting at logical index start, clamped to the view. Every call is a
// fresh materialization: rows get new ids, so ids captured from an earlier
// window never alias rows of this one.
func (c *Collator[V]) Materialize(start, length int) focus.Window[string, V] {
	c.rebuild()
	if start < 0 {
		start = 0
	}
	if start > len(c.view) {
		start = len(c.view)
	}
	if length < 0 {
		length = 0
	}
	end := start + length
	if end > len(c.view) {
		end = len(c.view)
	}

	c.gen++
	rows := make([]focus.Row[string, V], 0, end-start)
	for rank, vi := range c.view[start:end] {
		it := c.items[vi]
		rows = append(rows, focus.Row[string, V]{
			ID:   focus.RowID(c.gen<<20 | int64(rank)),
			Key:  it.Key,
			Data: it.Value,
		})
	}
	return focus.Window[string, V]{
		Before: start,
		After:  len(c.view) - end,
		Rows:   rows,
	}
}

// rebuild recomputes the filtered, sorted view when something changed.
func (c *Collator[V]) rebuild() {
	if !c.stale {
		return
	}
	c.stale = false

	if c.filter == "" {
		c.view = make([]int, len(c.items))
		for i := range c.items {
			c.view[i] = i
		}
	} else {
		matches := fuzzy.FindFrom(c.filter, filterSource[V](c.items))
		c.view = make([]int, 0, len(matches))
		for _, m := range matches {
			c.view = append(c.view, m.Index)
		}
	}

	sort.SliceStable(c.view, func(a, b int) bool {
		ia, ib := c.items[c.view[a]], c.items[c.view[b]]
		if c.less != nil {
			if c.less(ia, ib) {
				return true
			}
			if c.less(ib, ia) {
				return false
			}
		}
		if cmp := c.coll.CompareString(ia.Key, ib.Key); cmp != 0 {
			return cmp < 0
		}
		// Collation-equal but distinct keys: fall back to a bytewise
		// compare so the order stays deterministic.
		return strings.Compare(ia.Key, ib.Key) < 0
	})

	c.present = make(map[string]struct{}, len(c.view))
	for _, vi := range c.view {
		c.present[c.items[vi].Key] = struct{}{}
	}
}

// filterSource adapts the item slice to the fuzzy matcher.
type filterSource[V any] []Item[V]

func (s filterSource[V]) String(i int) string { return s[i].Filter }
func (s filterSource[V]) Len() int            { return len(s) }
