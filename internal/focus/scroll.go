package focus

// Anchor names the viewport edge a scroll intent aligns the row against.
type Anchor int

const (
	// AnchorTop aligns the row's top edge just below the table header.
	AnchorTop Anchor = iota
	// AnchorBottom aligns the row's bottom edge with the viewport bottom.
	AnchorBottom
)

// ScrollIntent asks the host viewport to move so one row becomes visible.
// It is a directive, not an action: the engine never scrolls anything
// itself, and intents are idempotent "go to this row" values that are safe
// to supersede or reissue when the visible range changes again before the
// host applies them.
type ScrollIntent struct {
	Index  int    // logical index of the row to reveal
	Anchor Anchor // which edge to pin the row against
	Offset int    // target pixel offset for the viewport
}

// Geometry carries the fixed row metrics needed to turn a logical index
// into a pixel offset. A terminal host uses RowHeight/HeaderHeight of one
// cell; a pixel-based host supplies real heights.
type Geometry struct {
	RowHeight    int
	HeaderHeight int
}

// intent decides whether the row at index needs scrolling into view given
// the visible range. A forced anchor (the page actions) is honored
// unconditionally. Otherwise rows at or beyond the range edges produce an
// intent and rows strictly inside produce nil.
func (g Geometry) intent(index int, vr Range, forced *Anchor) *ScrollIntent {
	if forced != nil {
		return g.anchored(index, *forced)
	}
	switch {
	case index <= vr.Start:
		return g.anchored(index, AnchorTop)
	case index >= vr.End:
		return g.anchored(index, AnchorBottom)
	default:
		return nil
	}
}

// anchored builds the intent for pinning index against the given edge.
// Top alignment lands the row just below the header; bottom alignment puts
// the row's bottom edge at the viewport's bottom edge.
func (g Geometry) anchored(index int, a Anchor) *ScrollIntent {
	var offset int
	switch a {
	case AnchorTop:
		offset = index*g.RowHeight - g.HeaderHeight
	case AnchorBottom:
		offset = (index + 1) * g.RowHeight
	}
	return &ScrollIntent{Index: index, Anchor: a, Offset: offset}
}
