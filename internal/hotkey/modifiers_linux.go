//go:build linux

package hotkey

import (
	xhotkey "golang.design/x/hotkey"

	"github.com/Dregu/volume-control/internal/keys"
)

// Alt is Mod1 and Super/Win is Mod4 under X11.
var osModifierMap = map[keys.Modifiers]xhotkey.Modifier{
	keys.ModCtrl:  xhotkey.ModCtrl,
	keys.ModShift: xhotkey.ModShift,
	keys.ModAlt:   xhotkey.Mod1,
	keys.ModSuper: xhotkey.Mod4,
}
