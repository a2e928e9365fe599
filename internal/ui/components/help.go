package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sgeisenh/bonsai/internal/ui"
)

// HelpEntry is a single keybinding line in the help overlay.
type HelpEntry struct {
	Key  string
	Desc string
}

// HelpSection groups related bindings under a heading.
type HelpSection struct {
	Title   string
	Entries []HelpEntry
}

// RenderHelp renders the full-screen help overlay, centred in the given
// dimensions.
func RenderHelp(styles ui.Styles, width, height int, sections []HelpSection) string {
	t := styles.Theme

	titleStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Secondary).Bold(true).MarginTop(1)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Width(12)
	descStyle := lipgloss.NewStyle().Foreground(t.Text)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Help"))
	b.WriteString("\n")

	for _, sec := range sections {
		b.WriteString(sectionStyle.Render(sec.Title))
		b.WriteString("\n")
		for _, e := range sec.Entries {
			b.WriteString("  ")
			b.WriteString(keyStyle.Render(e.Key))
			b.WriteString(descStyle.Render(e.Desc))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("press ? or esc to close"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocused).
		Padding(1, 3).
		Render(b.String())

	return ui.PlaceCentre(width, height, box)
}
