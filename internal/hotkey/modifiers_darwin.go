//go:build darwin

package hotkey

import (
	xhotkey "golang.design/x/hotkey"

	"github.com/Dregu/volume-control/internal/keys"
)

var osModifierMap = map[keys.Modifiers]xhotkey.Modifier{
	keys.ModCtrl:  xhotkey.ModCtrl,
	keys.ModShift: xhotkey.ModShift,
	keys.ModAlt:   xhotkey.ModOption,
	keys.ModSuper: xhotkey.ModCmd,
}
