package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/sgeisenh/bonsai/internal/ui"
)

// StatusBarData carries the info displayed in the bottom status bar.
type StatusBarData struct {
	Path       string // directory being browsed
	Shown      int    // rows surviving the filter
	Total      int    // rows before filtering
	Filter     string // active filter query, if any
	FocusedKey string // key the engine considers focused, if any
	Present    bool   // presence projection of the focused key
	SortColumn string
	Message    string // transient info/error message
	IsError    bool
}

// RenderStatusBar renders the bottom status bar with sections separated by
// dim vertical bars.
//
// Wide (>= 60):   12/40 rows │ name ▾ │ ◉ main.go             ~/src/demo
// Narrow (< 60):  12/40 rows │ ◉ main.go
func RenderStatusBar(styles ui.Styles, data StatusBarData, width int) string {
	t := styles.Theme

	sepStyle := lipgloss.NewStyle().Foreground(t.Border).Faint(true)
	sep := sepStyle.Render(" │ ")

	// ── Left sections ────────────────────────────────────────────

	countStyle := lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	left := " " + countStyle.Render(fmt.Sprintf("%d/%d rows", data.Shown, data.Total))
	if data.Filter != "" {
		left += " " + lipgloss.NewStyle().Foreground(t.Accent).Render("/"+data.Filter)
	}

	if width >= 60 && data.SortColumn != "" {
		left += sep + lipgloss.NewStyle().Foreground(t.Secondary).Render(data.SortColumn+" ▾")
	}

	switch {
	case data.FocusedKey == "":
		left += sep + lipgloss.NewStyle().Foreground(t.TextSubtle).Render("○ no focus")
	case data.Present:
		left += sep + lipgloss.NewStyle().Foreground(t.Success).Render("◉ "+data.FocusedKey)
	default:
		// Visually focused but no longer present in the collated view.
		left += sep + lipgloss.NewStyle().Foreground(t.Warning).Render("◌ "+data.FocusedKey)
	}

	// ── Right section ────────────────────────────────────────────

	var right string
	if data.Message != "" {
		fg := t.Info
		if data.IsError {
			fg = t.Error
		}
		right = lipgloss.NewStyle().Foreground(fg).Render(data.Message) + " "
	} else if width >= 60 && data.Path != "" {
		right = lipgloss.NewStyle().Foreground(t.TextSubtle).Render(data.Path) + " "
	}

	// ── Assemble ─────────────────────────────────────────────────

	leftW := lipgloss.Width(left)
	rightW := lipgloss.Width(right)
	gap := width - leftW - rightW
	if gap < 1 {
		right = ""
		gap = width - leftW
		if gap < 0 {
			gap = 0
		}
	}

	bar := left + lipgloss.NewStyle().Width(gap).Render("") + right
	return styles.StatusBar.Width(width).Render(bar)
}
