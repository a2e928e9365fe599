package common

import tea "github.com/charmbracelet/bubbletea"

// ── Custom messages ─────────────────────────────────────────────────────────

// RefreshMsg signals that the directory changed and rows must be rescanned.
type RefreshMsg struct{}

// ErrMsg carries an error to be displayed in the status bar.
type ErrMsg struct{ Err error }

// InfoMsg carries an informational message.
type InfoMsg struct{ Text string }

// CmdInfo creates a tea.Cmd that sends an InfoMsg.
func CmdInfo(text string) tea.Cmd {
	return func() tea.Msg { return InfoMsg{Text: text} }
}
