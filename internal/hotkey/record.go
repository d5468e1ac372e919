package hotkey

import (
	"github.com/Dregu/volume-control/internal/action"
	"github.com/Dregu/volume-control/internal/keys"
)

// Record is the persistence form of one hotkey. Ids are runtime-only
// and deliberately absent.
type Record struct {
	Name       string        `json:"name"`
	Key        string        `json:"key"`
	Modifiers  []string      `json:"modifiers,omitempty"`
	Registered bool          `json:"registered"`
	Action     *ActionRecord `json:"action,omitempty"`
}

// ActionRecord persists a binding to a cataloged action. Settings may
// be partial or stale; they are merged against the schema on load.
type ActionRecord struct {
	Identifier string           `json:"identifier"`
	Settings   []action.Setting `json:"settings,omitempty"`
}

func (r Record) combination() (keys.Combination, error) {
	key, err := keys.ParseKey(r.Key)
	if err != nil {
		return keys.Combination{}, err
	}
	var mods keys.Modifiers
	for _, name := range r.Modifiers {
		mod, err := keys.ParseModifier(name)
		if err != nil {
			return keys.Combination{}, err
		}
		mods |= mod
	}
	return keys.Combination{Key: key, Mods: mods}, nil
}
