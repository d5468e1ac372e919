package actions

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/Dregu/volume-control/internal/action"
)

// ClipboardGroup ships the clipboard actions.
type ClipboardGroup struct{}

func NewClipboardGroup() *ClipboardGroup { return &ClipboardGroup{} }

func (g *ClipboardGroup) Name() string { return "Clipboard" }

func (g *ClipboardGroup) Definitions() []action.Definition {
	return []action.Definition{
		{
			Name:        "CopyText",
			Description: "Copy the configured snippet to the clipboard",
			Schema: action.Schema{
				{Name: "text", Kind: action.KindText, Default: action.Text("")},
			},
			Invoke: copyText,
		},
		{
			Name:        "Clear",
			Description: "Clear the clipboard",
			Invoke:      clearClipboard,
		},
	}
}

func copyText(ctx context.Context, trig action.Trigger, settings []action.Setting) error {
	if err := clipboard.WriteAll(settingValue(settings, "text").Text()); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

func clearClipboard(ctx context.Context, trig action.Trigger, settings []action.Setting) error {
	if err := clipboard.WriteAll(""); err != nil {
		return fmt.Errorf("failed to clear clipboard: %w", err)
	}
	return nil
}
