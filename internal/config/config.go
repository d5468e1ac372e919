package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
)

type Config struct {
	LogLevel      string         `json:"log_level"` // "debug", "info", "warn", "error"
	WatchBindings bool           `json:"watch_bindings"`
	RunAtLogin    bool           `json:"run_at_login"`
	Feedback      FeedbackConfig `json:"feedback"`
}

type FeedbackConfig struct {
	Enabled bool `json:"enabled"`
}

// Load reads the config from disk or returns defaults
func Load() (*Config, error) {
	path := configPath()

	// Default config
	cfg := &Config{
		LogLevel:      "info",
		WatchBindings: true,
		RunAtLogin:    false,
		Feedback: FeedbackConfig{
			Enabled: true,
		},
	}

	// Load existing config if it exists
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path := configPath()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// configDir returns the platform-specific directory holding the config
// and bindings files
func configDir() string {
	var base string

	switch runtime.GOOS {
	case "darwin":
		base = os.Getenv("HOME") + "/Library/Application Support"
	case "windows":
		base = os.Getenv("APPDATA")
	default: // linux
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = xdg
		} else {
			base = os.Getenv("HOME") + "/.config"
		}
	}

	return filepath.Join(base, "volume-control")
}

// configPath returns the platform-specific config file path
func configPath() string {
	return filepath.Join(configDir(), "config.json")
}

// BindingsPath returns the platform-specific hotkey bindings file path
func BindingsPath() string {
	return filepath.Join(configDir(), "bindings.json")
}
