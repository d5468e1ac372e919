//go:build darwin

package autostart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	launchAgentLabel = "com.volume-control.app"
	launchAgentName  = "com.volume-control.app.plist"
)

type darwinAutostart struct{}

// New creates the autostart handler for macOS
func New() Autostart {
	return &darwinAutostart{}
}

func launchAgentPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "Library", "LaunchAgents", launchAgentName)
}

// appPath returns the .app bundle when running from one, otherwise the
// bare executable. exe looks like
// /Applications/VolumeControl.app/Contents/MacOS/volume-control.
func appPath() string {
	exe, _ := os.Executable()
	if idx := strings.Index(exe, ".app/"); idx != -1 {
		return exe[:idx+4]
	}
	return exe
}

func (a *darwinAutostart) IsEnabled() bool {
	_, err := os.Stat(launchAgentPath())
	return err == nil
}

func (a *darwinAutostart) Enable() error {
	target := appPath()

	// Bundles go through open so macOS treats it as an app launch
	args := []string{target}
	if strings.HasSuffix(target, ".app") {
		args = []string{"/usr/bin/open", "-a", target}
	}

	var xmlArgs strings.Builder
	for _, arg := range args {
		fmt.Fprintf(&xmlArgs, "        <string>%s</string>\n", arg)
	}

	plist := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>%s</string>
    <key>ProgramArguments</key>
    <array>
%s    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>KeepAlive</key>
    <false/>
</dict>
</plist>`, launchAgentLabel, xmlArgs.String())

	return os.WriteFile(launchAgentPath(), []byte(plist), 0644)
}

func (a *darwinAutostart) Disable() error {
	if err := os.Remove(launchAgentPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
