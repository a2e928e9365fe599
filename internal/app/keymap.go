package app

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/sgeisenh/bonsai/internal/config"
)

// KeyMap holds the application keybindings, built from the configured keys
// with arrow/navigation aliases layered on top.
type KeyMap struct {
	Quit     key.Binding
	Help     key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Unfocus  key.Binding
	Filter   key.Binding
	Refresh  key.Binding
	Sort     key.Binding
	Hidden   key.Binding
}

// NewKeyMap builds the keymap from configured bindings.
func NewKeyMap(kb config.KeyBindings) KeyMap {
	return KeyMap{
		Quit:     key.NewBinding(key.WithKeys(kb.Quit, "ctrl+c"), key.WithHelp(kb.Quit, "quit")),
		Help:     key.NewBinding(key.WithKeys(kb.Help), key.WithHelp(kb.Help, "help")),
		Up:       key.NewBinding(key.WithKeys(kb.Up, "up"), key.WithHelp(kb.Up+"/↑", "focus up")),
		Down:     key.NewBinding(key.WithKeys(kb.Down, "down"), key.WithHelp(kb.Down+"/↓", "focus down")),
		PageUp:   key.NewBinding(key.WithKeys(kb.PageUp, "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys(kb.PageDown, "ctrl+d"), key.WithHelp("pgdn", "page down")),
		Unfocus:  key.NewBinding(key.WithKeys(kb.Unfocus), key.WithHelp(kb.Unfocus, "unfocus")),
		Filter:   key.NewBinding(key.WithKeys(kb.Filter), key.WithHelp(kb.Filter, "filter")),
		Refresh:  key.NewBinding(key.WithKeys(kb.Refresh, "ctrl+r"), key.WithHelp(kb.Refresh, "refresh")),
		Sort:     key.NewBinding(key.WithKeys(kb.Sort), key.WithHelp(kb.Sort, "cycle sort")),
		Hidden:   key.NewBinding(key.WithKeys(kb.Hidden), key.WithHelp(kb.Hidden, "toggle hidden")),
	}
}
