package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds the resolved application configuration.
type Config struct {
	// Theme name: "dark" (default) or "light".
	Theme string `mapstructure:"theme"`
	// DefaultColumnWidth is used for columns without a stored width.
	DefaultColumnWidth int `mapstructure:"default_column_width"`
	// IndexColumnWidth is the width of the row number gutter.
	IndexColumnWidth int `mapstructure:"index_column_width"`
	// AddColumnWidth is the width of the trailing add-column slot.
	AddColumnWidth int `mapstructure:"add_column_width"`
	// MinColumnWidth bounds interactive resizing.
	MinColumnWidth int `mapstructure:"min_column_width"`
	// RowHeight is the most lines a row may grow to. Rows with shorter
	// content shrink to fit.
	RowHeight int `mapstructure:"row_height"`
	// Overscan is the number of rows rendered beyond each viewport edge.
	Overscan int `mapstructure:"overscan"`
	// HistoryLimit caps the undo stack. Zero disables undo.
	HistoryLimit int `mapstructure:"history_limit"`
	// Autosave writes the table after every change.
	Autosave bool `mapstructure:"autosave"`
	// Watch reloads the table when the file changes on disk.
	Watch bool `mapstructure:"watch"`
	// CacheTTL bounds how long the file's modification time is reused.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	// DebugLog is a file receiving log output. Empty discards it.
	DebugLog string `mapstructure:"debug_log"`
	// Keys overrides individual key bindings.
	Keys KeyBindings `mapstructure:"keys"`
}

// MaxRowHeight bounds RowHeight.
const MaxRowHeight = 8

// Load reads configuration from ~/.config/zgrid/config.yaml (or TOML/JSON).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	configDir := configDirectory()
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	setDefaults(v)

	v.SetEnvPrefix("ZGRID")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file means defaults.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.clamp()
	return cfg, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	_ = v.Unmarshal(cfg)
	return cfg
}

func (c *Config) clamp() {
	c.MinColumnWidth = max(c.MinColumnWidth, 2)
	c.DefaultColumnWidth = max(c.DefaultColumnWidth, c.MinColumnWidth)
	c.IndexColumnWidth = max(c.IndexColumnWidth, 0)
	c.AddColumnWidth = max(c.AddColumnWidth, 0)
	c.RowHeight = min(max(c.RowHeight, 1), MaxRowHeight)
	c.Overscan = max(c.Overscan, 0)
	c.HistoryLimit = max(c.HistoryLimit, 0)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("theme", "dark")
	v.SetDefault("default_column_width", 16)
	v.SetDefault("index_column_width", 6)
	v.SetDefault("add_column_width", 4)
	v.SetDefault("min_column_width", 4)
	v.SetDefault("row_height", 1)
	v.SetDefault("overscan", 3)
	v.SetDefault("history_limit", 100)
	v.SetDefault("autosave", false)
	v.SetDefault("watch", true)
	v.SetDefault("cache_ttl", 2*time.Second)
	v.SetDefault("debug_log", "")

	kb := DefaultKeyBindings()
	for name, keys := range kb.byName() {
		v.SetDefault("keys."+name, keys)
	}
}

func configDirectory() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "zgrid")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "zgrid")
}
