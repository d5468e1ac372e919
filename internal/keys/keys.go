// Package keys defines the portable key and modifier model used for
// hotkey combinations. Key codes are platform-neutral; the registrar
// translates them to OS codes at claim time.
package keys

import (
	"fmt"
	"strconv"
	"strings"
)

// Key identifies a primary key independent of platform key codes.
type Key uint8

const (
	KeyNone Key = iota

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeySpace
	KeyTab
	KeyReturn
	KeyEscape
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
)

var namedKeys = map[Key]string{
	KeySpace:  "Space",
	KeyTab:    "Tab",
	KeyReturn: "Return",
	KeyEscape: "Escape",
	KeyDelete: "Delete",
	KeyUp:     "Up",
	KeyDown:   "Down",
	KeyLeft:   "Left",
	KeyRight:  "Right",
}

// String returns the canonical display name, e.g. "A", "7", "F5", "Up".
func (k Key) String() string {
	switch {
	case k >= KeyA && k <= KeyZ:
		return string(rune('A' + k - KeyA))
	case k >= Key0 && k <= Key9:
		return string(rune('0' + k - Key0))
	case k >= KeyF1 && k <= KeyF20:
		return "F" + strconv.Itoa(int(k-KeyF1)+1)
	}
	if name, ok := namedKeys[k]; ok {
		return name
	}
	return "None"
}

// ParseKey resolves a key name. Matching is case-insensitive.
func ParseKey(s string) (Key, error) {
	name := strings.TrimSpace(s)
	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'a' && c <= 'z':
			return KeyA + Key(c-'a'), nil
		case c >= 'A' && c <= 'Z':
			return KeyA + Key(c-'A'), nil
		case c >= '0' && c <= '9':
			return Key0 + Key(c-'0'), nil
		}
	}
	lower := strings.ToLower(name)
	if strings.HasPrefix(lower, "f") {
		if n, err := strconv.Atoi(lower[1:]); err == nil && n >= 1 && n <= 20 {
			return KeyF1 + Key(n-1), nil
		}
	}
	for k, n := range namedKeys {
		if strings.ToLower(n) == lower {
			return k, nil
		}
	}
	return KeyNone, fmt.Errorf("unknown key %q", s)
}

// Modifiers is a bitset of modifier keys held together with the primary key.
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModAlt
	ModShift
	ModSuper
	// ModNoRepeat suppresses auto-repeated trigger delivery while the
	// combination is held, on backends that support it. It is not part
	// of the claim identity.
	ModNoRepeat
)

// modifierNames is in canonical display order.
var modifierNames = []struct {
	mod  Modifiers
	name string
}{
	{ModCtrl, "Ctrl"},
	{ModAlt, "Alt"},
	{ModShift, "Shift"},
	{ModSuper, "Super"},
	{ModNoRepeat, "NoRepeat"},
}

// Has reports whether every bit of flag is set.
func (m Modifiers) Has(flag Modifiers) bool {
	return m&flag == flag
}

// Names returns the set modifiers in canonical order.
func (m Modifiers) Names() []string {
	var names []string
	for _, e := range modifierNames {
		if m.Has(e.mod) {
			names = append(names, e.name)
		}
	}
	return names
}

func (m Modifiers) String() string {
	return strings.Join(m.Names(), "+")
}

// ParseModifier resolves a single modifier name. Aliases: Control,
// Option, Win, Cmd.
func ParseModifier(s string) (Modifiers, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ctrl", "control":
		return ModCtrl, nil
	case "alt", "option":
		return ModAlt, nil
	case "shift":
		return ModShift, nil
	case "super", "win", "cmd":
		return ModSuper, nil
	case "norepeat":
		return ModNoRepeat, nil
	}
	return 0, fmt.Errorf("unknown modifier %q", s)
}

// Combination is a primary key plus held modifiers. The zero value is
// not a valid combination.
type Combination struct {
	Key  Key
	Mods Modifiers
}

// IsValid reports whether the combination names a primary key.
func (c Combination) IsValid() bool {
	return c.Key != KeyNone
}

// String renders the combination as "Ctrl+Alt+Up".
func (c Combination) String() string {
	if !c.IsValid() {
		return "None"
	}
	parts := append(c.Mods.Names(), c.Key.String())
	return strings.Join(parts, "+")
}

// Normalized strips modifiers that do not participate in claim identity.
// Two combinations that normalize equal contend for the same OS claim.
func (c Combination) Normalized() Combination {
	c.Mods &^= ModNoRepeat
	return c
}

// Parse reads a combination like "Ctrl+Alt+V". The last segment is the
// primary key, everything before it a modifier.
func Parse(s string) (Combination, error) {
	parts := strings.Split(s, "+")
	if len(parts) == 0 || strings.TrimSpace(parts[len(parts)-1]) == "" {
		return Combination{}, fmt.Errorf("empty combination %q", s)
	}
	key, err := ParseKey(parts[len(parts)-1])
	if err != nil {
		return Combination{}, err
	}
	var mods Modifiers
	for _, part := range parts[:len(parts)-1] {
		mod, err := ParseModifier(part)
		if err != nil {
			return Combination{}, err
		}
		mods |= mod
	}
	return Combination{Key: key, Mods: mods}, nil
}
