package hotkey

import (
	"github.com/Dregu/volume-control/internal/action"
)

// DefaultRecords is the built-in binding set used on first run and by
// ResetToDefaults.
func DefaultRecords() []Record {
	ctrlAlt := []string{"Ctrl", "Alt"}
	return []Record{
		{
			Name:       "Volume Up",
			Key:        "Up",
			Modifiers:  ctrlAlt,
			Registered: true,
			Action: &ActionRecord{
				Identifier: "Volume:Increase",
				Settings:   []action.Setting{{Name: "step", Value: action.Number(2)}},
			},
		},
		{
			Name:       "Volume Down",
			Key:        "Down",
			Modifiers:  ctrlAlt,
			Registered: true,
			Action: &ActionRecord{
				Identifier: "Volume:Decrease",
				Settings:   []action.Setting{{Name: "step", Value: action.Number(2)}},
			},
		},
		{
			Name:       "Mute",
			Key:        "M",
			Modifiers:  ctrlAlt,
			Registered: true,
			Action: &ActionRecord{
				Identifier: "Volume:Mute",
			},
		},
		{
			Name:       "Copy Snippet",
			Key:        "C",
			Modifiers:  ctrlAlt,
			Registered: true,
			Action: &ActionRecord{
				Identifier: "Clipboard:CopyText",
				Settings:   []action.Setting{{Name: "text", Value: action.Text("Hello from volume-control")}},
			},
		},
	}
}
