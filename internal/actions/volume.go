// Package actions ships the built-in action groups the catalog
// discovers at startup.
package actions

import (
	"context"
	"math"

	"github.com/Dregu/volume-control/internal/action"
	"github.com/Dregu/volume-control/internal/volume"
)

// VolumeGroup exposes the volume Controller as cataloged actions.
type VolumeGroup struct {
	ctrl volume.Controller
}

func NewVolumeGroup(ctrl volume.Controller) *VolumeGroup {
	return &VolumeGroup{ctrl: ctrl}
}

func (g *VolumeGroup) Name() string { return "Volume" }

func (g *VolumeGroup) Definitions() []action.Definition {
	device := action.Field{Name: "device", Kind: action.KindText, Default: action.Text("")}
	return []action.Definition{
		{
			Name:        "Increase",
			Description: "Raise the output level by step percent",
			Schema: action.Schema{
				{Name: "step", Kind: action.KindNumber, Default: action.Number(2)},
				device,
			},
			Invoke: g.increase,
		},
		{
			Name:        "Decrease",
			Description: "Lower the output level by step percent",
			Schema: action.Schema{
				{Name: "step", Kind: action.KindNumber, Default: action.Number(2)},
				device,
			},
			Invoke: g.decrease,
		},
		{
			Name:        "Mute",
			Description: "Toggle mute",
			Schema:      action.Schema{device},
			Invoke:      g.mute,
		},
		{
			Name:        "Set",
			Description: "Set the output level to an absolute percent",
			Schema: action.Schema{
				{Name: "level", Kind: action.KindNumber, Default: action.Number(50)},
				device,
			},
			Invoke: g.set,
		},
	}
}

func (g *VolumeGroup) increase(ctx context.Context, trig action.Trigger, settings []action.Setting) error {
	_, err := g.ctrl.Adjust(deviceOf(settings), stepOf(settings))
	return err
}

func (g *VolumeGroup) decrease(ctx context.Context, trig action.Trigger, settings []action.Setting) error {
	_, err := g.ctrl.Adjust(deviceOf(settings), -stepOf(settings))
	return err
}

func (g *VolumeGroup) mute(ctx context.Context, trig action.Trigger, settings []action.Setting) error {
	_, err := g.ctrl.ToggleMute(deviceOf(settings))
	return err
}

func (g *VolumeGroup) set(ctx context.Context, trig action.Trigger, settings []action.Setting) error {
	level := int(math.Round(settingValue(settings, "level").Num()))
	_, err := g.ctrl.SetLevel(deviceOf(settings), level)
	return err
}

func stepOf(settings []action.Setting) int {
	return int(math.Round(settingValue(settings, "step").Num()))
}

func deviceOf(settings []action.Setting) string {
	return settingValue(settings, "device").Text()
}

// settingValue returns the value stored under name, or the invalid
// Value when absent. Settings arrive merged against the schema, so a
// schema-declared name is always present.
func settingValue(settings []action.Setting, name string) action.Value {
	for _, s := range settings {
		if s.Name == name {
			return s.Value
		}
	}
	return action.Value{}
}
