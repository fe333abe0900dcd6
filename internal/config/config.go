package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Viewer   ViewerConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// ViewerConfig holds chip plan viewer settings.
type ViewerConfig struct {
	Width     int
	Height    int
	AutoScale bool
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Units     string // display unit for lengths: um or mm
	Precision int    // decimals when converting lengths for display
}

// Load reads configuration from file and env. Env var overrides use prefix CHIPSMITH_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "chipsmith", "chipsmith.db"))
	v.SetDefault("viewer.width", 72)
	v.SetDefault("viewer.height", 24)
	v.SetDefault("viewer.auto_scale", true)
	v.SetDefault("ui.units", "um")
	v.SetDefault("ui.precision", 1)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("CHIPSMITH_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "chipsmith"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("CHIPSMITH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Used by the TUI settings view.
func Save(cfg Config) error {
	path := os.Getenv("CHIPSMITH_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "chipsmith", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("viewer.width", cfg.Viewer.Width)
	v.Set("viewer.height", cfg.Viewer.Height)
	v.Set("viewer.auto_scale", cfg.Viewer.AutoScale)
	v.Set("ui.units", cfg.UI.Units)
	v.Set("ui.precision", cfg.UI.Precision)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
