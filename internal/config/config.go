package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// Config holds the resolved application configuration.
type Config struct {
	// Theme name: "dark" (default) or "light".
	Theme string `mapstructure:"theme"`
	// Locale is the BCP 47 tag used for collation-aware sorting.
	Locale string `mapstructure:"locale"`
	// RowHeight and HeaderHeight feed the scroll geometry. Terminal cells
	// are the unit, so both default to 1.
	RowHeight    int `mapstructure:"row_height"`
	HeaderHeight int `mapstructure:"header_height"`
	// Overscan is how many rows beyond the viewport to materialize on each
	// side, so single-step navigation resolves without waiting for a
	// re-collation.
	Overscan int `mapstructure:"overscan"`
	// WatchDebounceMS coalesces filesystem event bursts before a rescan.
	WatchDebounceMS int `mapstructure:"watch_debounce_ms"`
	// ShowHidden includes dotfiles in the table.
	ShowHidden bool `mapstructure:"show_hidden"`
	// DefaultSort is the startup sort column: "name", "size", or "modified".
	DefaultSort string `mapstructure:"default_sort"`
	// LogFile enables diagnostics to a file when non-empty (a TUI cannot
	// log to stdout).
	LogFile string `mapstructure:"log_file"`
	// Keys holds the key bindings.
	Keys KeyBindings `mapstructure:"keys"`
}

// LanguageTag parses the configured locale, falling back to English when
// the tag is malformed rather than failing startup over a sort preference.
func (c *Config) LanguageTag() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// Load reads configuration from ~/.config/bonsai/config.yaml (or TOML/JSON).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	configDir := configDirectory()
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	setDefaults(v)

	v.SetEnvPrefix("BONSAI")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is fine — use defaults.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("theme", "dark")
	v.SetDefault("locale", "en")
	v.SetDefault("row_height", 1)
	v.SetDefault("header_height", 1)
	v.SetDefault("overscan", 20)
	v.SetDefault("watch_debounce_ms", 500)
	v.SetDefault("show_hidden", false)
	v.SetDefault("default_sort", "name")
	v.SetDefault("log_file", "")

	kb := DefaultKeyBindings()
	v.SetDefault("keys.quit", kb.Quit)
	v.SetDefault("keys.help", kb.Help)
	v.SetDefault("keys.up", kb.Up)
	v.SetDefault("keys.down", kb.Down)
	v.SetDefault("keys.page_up", kb.PageUp)
	v.SetDefault("keys.page_down", kb.PageDown)
	v.SetDefault("keys.unfocus", kb.Unfocus)
	v.SetDefault("keys.filter", kb.Filter)
	v.SetDefault("keys.refresh", kb.Refresh)
	v.SetDefault("keys.sort", kb.Sort)
	v.SetDefault("keys.hidden", kb.Hidden)
}

func configDirectory() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bonsai")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "bonsai")
}
