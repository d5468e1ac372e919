// Package volume controls per-device output volume. Levels and mute
// flags are held in-process behind the Controller interface; system
// mixer backends can replace the PortAudio implementation without
// touching callers.
package volume

import "fmt"

// Controller is the volume collaborator actions talk to. A target of
// "" means the default output device; any other target must match a
// device name from Devices.
type Controller interface {
	Devices() ([]Device, error)
	Level(target string) (int, error)
	SetLevel(target string, pct int) (int, error)
	Adjust(target string, delta int) (int, error)
	ToggleMute(target string) (bool, error)
	Close() error
}

// Device describes one output-capable device.
type Device struct {
	Name    string
	Default bool
}

func unknownDevice(target string) error {
	return fmt.Errorf("unknown device %q", target)
}
