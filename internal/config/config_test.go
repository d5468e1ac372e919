package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// sandboxEnv points every platform's config base at a temp directory so
// the tests never touch the real user config.
func sandboxEnv(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("APPDATA", tmp)
	t.Setenv("XDG_CONFIG_HOME", tmp)
	return tmp
}

func TestLoadDefaultsWhenAbsent(t *testing.T) {
	sandboxEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error loading absent config: %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %q", cfg.LogLevel)
	}
	if !cfg.WatchBindings {
		t.Error("expected bindings watching on by default")
	}
	if cfg.RunAtLogin {
		t.Error("expected run at login off by default")
	}
	if !cfg.Feedback.Enabled {
		t.Error("expected feedback tone on by default")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	sandboxEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}
	cfg.LogLevel = "debug"
	cfg.RunAtLogin = true
	cfg.Feedback.Enabled = false

	if err := cfg.Save(); err != nil {
		t.Fatalf("unexpected error saving config: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("unexpected error reloading config: %v", err)
	}
	if loaded.LogLevel != "debug" {
		t.Errorf("expected log level debug after reload, got %q", loaded.LogLevel)
	}
	if !loaded.RunAtLogin {
		t.Error("expected run at login to survive the round trip")
	}
	if loaded.Feedback.Enabled {
		t.Error("expected feedback tone to stay off after reload")
	}
}

// TestLoadMergesPartialFile verifies that a config file carrying only
// some keys overrides those keys and leaves the rest at defaults.
func TestLoadMergesPartialFile(t *testing.T) {
	sandboxEnv(t)

	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("unexpected error creating config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(`{"log_level": "warn"}`), 0644); err != nil {
		t.Fatalf("unexpected error writing config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error loading partial config: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected log level warn from file, got %q", cfg.LogLevel)
	}
	if !cfg.WatchBindings {
		t.Error("expected bindings watching to keep its default")
	}
	if !cfg.Feedback.Enabled {
		t.Error("expected feedback tone to keep its default")
	}
}

func TestLoadCorruptFile(t *testing.T) {
	sandboxEnv(t)

	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("unexpected error creating config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("unexpected error writing config: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected an error loading a corrupt config file")
	}
}

func TestBindingsPathInConfigDir(t *testing.T) {
	tmp := sandboxEnv(t)

	path := BindingsPath()
	if filepath.Base(path) != "bindings.json" {
		t.Errorf("expected bindings.json file name, got %q", path)
	}
	if filepath.Base(filepath.Dir(path)) != "volume-control" {
		t.Errorf("expected volume-control config directory, got %q", path)
	}
	if !strings.HasPrefix(path, tmp) {
		t.Errorf("expected path under the sandbox, got %q", path)
	}
}
