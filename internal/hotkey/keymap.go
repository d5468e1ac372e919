package hotkey

import (
	xhotkey "golang.design/x/hotkey"

	"github.com/Dregu/volume-control/internal/keys"
)

// osKeyMap covers the key set golang.design/x/hotkey exports on every
// supported platform. The constant values differ per OS, so the table
// is explicit rather than computed from ranges.
var osKeyMap = map[keys.Key]xhotkey.Key{
	keys.KeyA: xhotkey.KeyA,
	keys.KeyB: xhotkey.KeyB,
	keys.KeyC: xhotkey.KeyC,
	keys.KeyD: xhotkey.KeyD,
	keys.KeyE: xhotkey.KeyE,
	keys.KeyF: xhotkey.KeyF,
	keys.KeyG: xhotkey.KeyG,
	keys.KeyH: xhotkey.KeyH,
	keys.KeyI: xhotkey.KeyI,
	keys.KeyJ: xhotkey.KeyJ,
	keys.KeyK: xhotkey.KeyK,
	keys.KeyL: xhotkey.KeyL,
	keys.KeyM: xhotkey.KeyM,
	keys.KeyN: xhotkey.KeyN,
	keys.KeyO: xhotkey.KeyO,
	keys.KeyP: xhotkey.KeyP,
	keys.KeyQ: xhotkey.KeyQ,
	keys.KeyR: xhotkey.KeyR,
	keys.KeyS: xhotkey.KeyS,
	keys.KeyT: xhotkey.KeyT,
	keys.KeyU: xhotkey.KeyU,
	keys.KeyV: xhotkey.KeyV,
	keys.KeyW: xhotkey.KeyW,
	keys.KeyX: xhotkey.KeyX,
	keys.KeyY: xhotkey.KeyY,
	keys.KeyZ: xhotkey.KeyZ,

	keys.Key0: xhotkey.Key0,
	keys.Key1: xhotkey.Key1,
	keys.Key2: xhotkey.Key2,
	keys.Key3: xhotkey.Key3,
	keys.Key4: xhotkey.Key4,
	keys.Key5: xhotkey.Key5,
	keys.Key6: xhotkey.Key6,
	keys.Key7: xhotkey.Key7,
	keys.Key8: xhotkey.Key8,
	keys.Key9: xhotkey.Key9,

	keys.KeySpace:  xhotkey.KeySpace,
	keys.KeyTab:    xhotkey.KeyTab,
	keys.KeyReturn: xhotkey.KeyReturn,
	keys.KeyEscape: xhotkey.KeyEscape,
	keys.KeyDelete: xhotkey.KeyDelete,

	keys.KeyUp:    xhotkey.KeyUp,
	keys.KeyDown:  xhotkey.KeyDown,
	keys.KeyLeft:  xhotkey.KeyLeft,
	keys.KeyRight: xhotkey.KeyRight,

	keys.KeyF1:  xhotkey.KeyF1,
	keys.KeyF2:  xhotkey.KeyF2,
	keys.KeyF3:  xhotkey.KeyF3,
	keys.KeyF4:  xhotkey.KeyF4,
	keys.KeyF5:  xhotkey.KeyF5,
	keys.KeyF6:  xhotkey.KeyF6,
	keys.KeyF7:  xhotkey.KeyF7,
	keys.KeyF8:  xhotkey.KeyF8,
	keys.KeyF9:  xhotkey.KeyF9,
	keys.KeyF10: xhotkey.KeyF10,
	keys.KeyF11: xhotkey.KeyF11,
	keys.KeyF12: xhotkey.KeyF12,
	keys.KeyF13: xhotkey.KeyF13,
	keys.KeyF14: xhotkey.KeyF14,
	keys.KeyF15: xhotkey.KeyF15,
	keys.KeyF16: xhotkey.KeyF16,
	keys.KeyF17: xhotkey.KeyF17,
	keys.KeyF18: xhotkey.KeyF18,
	keys.KeyF19: xhotkey.KeyF19,
	keys.KeyF20: xhotkey.KeyF20,
}

func osKey(k keys.Key) (xhotkey.Key, bool) {
	mapped, ok := osKeyMap[k]
	return mapped, ok
}

// osModifiers translates the portable modifier mask into the platform
// modifier list. NoRepeat is a local behavior flag and never reaches
// the OS claim.
func osModifiers(mods keys.Modifiers) []xhotkey.Modifier {
	var out []xhotkey.Modifier
	for _, flag := range []keys.Modifiers{keys.ModCtrl, keys.ModAlt, keys.ModShift, keys.ModSuper} {
		if mods.Has(flag) {
			out = append(out, osModifierMap[flag])
		}
	}
	return out
}
