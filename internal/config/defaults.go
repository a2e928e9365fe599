package config

// KeyBindings maps actions to keys. Kept as plain strings so the config
// file can override any of them; the app turns them into bubbles bindings.
type KeyBindings struct {
	Quit     string `mapstructure:"quit"`
	Help     string `mapstructure:"help"`
	Up       string `mapstructure:"up"`
	Down     string `mapstructure:"down"`
	PageUp   string `mapstructure:"page_up"`
	PageDown string `mapstructure:"page_down"`
	Unfocus  string `mapstructure:"unfocus"`
	Filter   string `mapstructure:"filter"`
	Refresh  string `mapstructure:"refresh"`
	Sort     string `mapstructure:"sort"`
	Hidden   string `mapstructure:"hidden"`
}

// DefaultKeyBindings returns the default key bindings.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Quit:     "q",
		Help:     "?",
		Up:       "k",
		Down:     "j",
		PageUp:   "pgup",
		PageDown: "pgdown",
		Unfocus:  "esc",
		Filter:   "/",
		Refresh:  "r",
		Sort:     "s",
		Hidden:   ".",
	}
}
