//go:build linux

package autostart

import (
	"fmt"
	"os"
	"path/filepath"
)

const desktopFileName = "volume-control.desktop"

type linuxAutostart struct{}

// New creates the autostart handler for Linux
func New() Autostart {
	return &linuxAutostart{}
}

func autostartDir() string {
	config := os.Getenv("XDG_CONFIG_HOME")
	if config == "" {
		home, _ := os.UserHomeDir()
		config = filepath.Join(home, ".config")
	}
	return filepath.Join(config, "autostart")
}

func desktopFilePath() string {
	return filepath.Join(autostartDir(), desktopFileName)
}

func (a *linuxAutostart) IsEnabled() bool {
	_, err := os.Stat(desktopFilePath())
	return err == nil
}

func (a *linuxAutostart) Enable() error {
	if err := os.MkdirAll(autostartDir(), 0755); err != nil {
		return fmt.Errorf("failed to create autostart dir: %w", err)
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to resolve executable path: %w", err)
	}

	entry := fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=Volume Control
Comment=Global volume hotkeys
Exec=%s
Icon=audio-volume-high
Terminal=false
Categories=Utility;Audio;
X-GNOME-Autostart-enabled=true
`, exe)

	return os.WriteFile(desktopFilePath(), []byte(entry), 0644)
}

func (a *linuxAutostart) Disable() error {
	if err := os.Remove(desktopFilePath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
