// Package autostart registers the app to launch at login. Each
// platform has its own mechanism: a registry Run value on Windows, an
// XDG autostart entry on Linux, and a LaunchAgent on macOS.
package autostart

// Autostart manages the login launch entry for the current user.
type Autostart interface {
	IsEnabled() bool
	Enable() error
	Disable() error
}
