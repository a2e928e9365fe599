package components

import (
	"strings"

	"github.com/sgeisenh/bonsai/internal/ui"
)

// TableRow is one rendered line of the directory table.
type TableRow struct {
	Name     string
	Size     string
	Modified string
	IsDir    bool
	Focused  bool
	Stale    bool // focused row that no longer matches the live collection
}

const (
	sizeColWidth = 10
	modColWidth  = 12
	colGap       = 2
)

// RenderTableHeader renders the column header line for the given width.
func RenderTableHeader(styles ui.Styles, width int) string {
	nameW := nameColumnWidth(width)
	line := ui.PadRight("Name", nameW) +
		strings.Repeat(" ", colGap) +
		ui.PadLeft("Size", sizeColWidth) +
		strings.Repeat(" ", colGap) +
		ui.PadRight("Modified", modColWidth)
	return styles.Header.Render(ui.Truncate(line, width))
}

// RenderTableRows renders the visible slice of rows, one line each.
func RenderTableRows(styles ui.Styles, width int, rows []TableRow) string {
	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(renderRow(styles, width, r))
	}
	return b.String()
}

func renderRow(styles ui.Styles, width int, r TableRow) string {
	nameW := nameColumnWidth(width)

	name := r.Name
	if r.IsDir {
		name += "/"
	}
	name = ui.Truncate(name, nameW)

	line := ui.PadRight(name, nameW) +
		strings.Repeat(" ", colGap) +
		ui.PadLeft(r.Size, sizeColWidth) +
		strings.Repeat(" ", colGap) +
		ui.PadRight(r.Modified, modColWidth)
	line = ui.Truncate(line, width)
	line = ui.PadRight(line, width)

	switch {
	case r.Focused && r.Stale:
		return styles.RowDimmed.Render(line)
	case r.Focused:
		return styles.RowFocused.Render(line)
	case r.IsDir:
		return styles.Directory.Render(line)
	default:
		return styles.Row.Render(line)
	}
}

func nameColumnWidth(width int) int {
	w := width - sizeColWidth - modColWidth - 2*colGap
	if w < 8 {
		w = 8
	}
	return w
}
