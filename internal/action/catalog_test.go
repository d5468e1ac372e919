package action

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type testGroup struct {
	name string
	defs []Definition
}

func (g testGroup) Name() string              { return g.name }
func (g testGroup) Definitions() []Definition { return g.defs }

func nopInvoke(ctx context.Context, trig Trigger, settings []Setting) error {
	return nil
}

func numericSchema() Schema {
	return Schema{
		{Name: "a", Kind: KindNumber, Default: Number(1)},
		{Name: "b", Kind: KindNumber, Default: Number(2)},
	}
}

func TestCatalogIndexesGroups(t *testing.T) {
	cat := NewCatalog(zerolog.Nop(),
		testGroup{name: "Volume", defs: []Definition{
			{Name: "Increase", Description: "Raise volume", Invoke: nopInvoke},
			{Name: "Decrease", Description: "Lower volume", Invoke: nopInvoke},
		}},
		testGroup{name: "", defs: []Definition{
			{Name: "Reload", Invoke: nopInvoke},
		}},
	)

	if _, ok := cat.Definition("Volume:Increase"); !ok {
		t.Error("expected Volume:Increase to be indexed")
	}
	if _, ok := cat.Definition("Reload"); !ok {
		t.Error("expected unqualified identifier for an unnamed group")
	}
	if _, ok := cat.Definition("volume:increase"); ok {
		t.Error("lookup must be case-sensitive")
	}
	if got := len(cat.Definitions()); got != 3 {
		t.Errorf("expected 3 definitions, got %d", got)
	}
}

func TestCatalogDuplicateIdentifierKeepsFirst(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	first := func(ctx context.Context, trig Trigger, settings []Setting) error { return nil }
	cat := NewCatalog(log,
		testGroup{name: "Volume", defs: []Definition{
			{Name: "Mute", Description: "first", Invoke: first},
		}},
		testGroup{name: "Volume", defs: []Definition{
			{Name: "Mute", Description: "second", Invoke: nopInvoke},
		}},
	)

	def, ok := cat.Definition("Volume:Mute")
	if !ok {
		t.Fatal("expected Volume:Mute to be indexed")
	}
	if def.Description != "first" {
		t.Errorf("expected first-discovered definition to win, got %q", def.Description)
	}
	if len(cat.Definitions()) != 1 {
		t.Errorf("expected duplicate to be rejected, have %d definitions", len(cat.Definitions()))
	}
	if !strings.Contains(buf.String(), "Duplicate action identifier") {
		t.Error("expected a logged warning for the duplicate identifier")
	}
}

func TestNewInstanceUsesSchemaDefaults(t *testing.T) {
	cat := NewCatalog(zerolog.Nop(), testGroup{name: "Test", defs: []Definition{
		{Name: "Op", Schema: numericSchema(), Invoke: nopInvoke},
	}})
	def, _ := cat.Definition("Test:Op")

	inst := cat.NewInstance(def)
	settings := inst.Settings()
	if len(settings) != 2 {
		t.Fatalf("expected 2 settings, got %d", len(settings))
	}
	if settings[0].Name != "a" || !settings[0].Value.Equal(Number(1)) {
		t.Errorf("expected a=1, got %s=%s", settings[0].Name, settings[0].Value)
	}
	if settings[1].Name != "b" || !settings[1].Value.Equal(Number(2)) {
		t.Errorf("expected b=2, got %s=%s", settings[1].Name, settings[1].Value)
	}
}

func TestMergeSuppliedOverridesDefault(t *testing.T) {
	cat := NewCatalog(zerolog.Nop(), testGroup{name: "Test", defs: []Definition{
		{Name: "Op", Schema: numericSchema(), Invoke: nopInvoke},
	}})
	def, _ := cat.Definition("Test:Op")

	inst := cat.MergeInstance(def, []Setting{{Name: "a", Value: Number(5)}})
	settings := inst.Settings()
	if !settings[0].Value.Equal(Number(5)) {
		t.Errorf("expected supplied a=5 to win, got %s", settings[0].Value)
	}
	if !settings[1].Value.Equal(Number(2)) {
		t.Errorf("expected b to keep its default 2, got %s", settings[1].Value)
	}
}

func TestMergeTypeMismatchFallsBackWithWarning(t *testing.T) {
	var buf bytes.Buffer
	cat := NewCatalog(zerolog.New(&buf), testGroup{name: "Test", defs: []Definition{
		{Name: "Op", Schema: numericSchema(), Invoke: nopInvoke},
	}})
	def, _ := cat.Definition("Test:Op")

	inst := cat.MergeInstance(def, []Setting{{Name: "a", Value: Text("x")}})
	settings := inst.Settings()
	if !settings[0].Value.Equal(Number(1)) {
		t.Errorf("expected mismatched a to fall back to default 1, got %s", settings[0].Value)
	}
	if !settings[1].Value.Equal(Number(2)) {
		t.Errorf("expected b=2, got %s", settings[1].Value)
	}
	if !strings.Contains(buf.String(), "type mismatch") {
		t.Error("expected a logged warning for the type mismatch")
	}
}

func TestMergeDropsUnknownSupplied(t *testing.T) {
	cat := NewCatalog(zerolog.Nop(), testGroup{name: "Test", defs: []Definition{
		{Name: "Op", Schema: numericSchema(), Invoke: nopInvoke},
	}})
	def, _ := cat.Definition("Test:Op")

	inst := cat.MergeInstance(def, []Setting{
		{Name: "zz", Value: Number(9)},
		{Name: "A", Value: Number(9)}, // wrong case, must not match "a"
	})
	settings := inst.Settings()
	if len(settings) != 2 {
		t.Fatalf("result must stay schema-shaped, got %d settings", len(settings))
	}
	if !settings[0].Value.Equal(Number(1)) || !settings[1].Value.Equal(Number(2)) {
		t.Error("unknown supplied settings must not disturb defaults")
	}
}

func TestMergeFirstSuppliedOccurrenceWins(t *testing.T) {
	cat := NewCatalog(zerolog.Nop(), testGroup{name: "Test", defs: []Definition{
		{Name: "Op", Schema: numericSchema(), Invoke: nopInvoke},
	}})
	def, _ := cat.Definition("Test:Op")

	inst := cat.MergeInstance(def, []Setting{
		{Name: "a", Value: Number(7)},
		{Name: "a", Value: Number(8)},
	})
	if v, _ := inst.Setting("a"); !v.Equal(Number(7)) {
		t.Errorf("expected first supplied occurrence to win, got %s", v)
	}
}

func TestMergeChoiceField(t *testing.T) {
	schema := Schema{
		{
			Name:    "device",
			Kind:    KindChoice,
			Default: Choice("default"),
			Options: []string{"default", "speakers", "headset"},
		},
	}
	cat := NewCatalog(zerolog.Nop(), testGroup{name: "Test", defs: []Definition{
		{Name: "Op", Schema: schema, Invoke: nopInvoke},
	}})
	def, _ := cat.Definition("Test:Op")

	// Persisted choices come back as plain text; a valid option is accepted.
	inst := cat.MergeInstance(def, []Setting{{Name: "device", Value: Text("headset")}})
	if v, _ := inst.Setting("device"); !v.Equal(Choice("headset")) {
		t.Errorf("expected text naming a valid option to be accepted, got %v", v)
	}

	// An unknown option falls back to the default.
	inst = cat.MergeInstance(def, []Setting{{Name: "device", Value: Text("toaster")}})
	if v, _ := inst.Setting("device"); !v.Equal(Choice("default")) {
		t.Errorf("expected unknown option to fall back to default, got %v", v)
	}
}

func TestInstanceSettingsAreSnapshots(t *testing.T) {
	cat := NewCatalog(zerolog.Nop(), testGroup{name: "Test", defs: []Definition{
		{Name: "Op", Schema: numericSchema(), Invoke: nopInvoke},
	}})
	def, _ := cat.Definition("Test:Op")
	inst := cat.NewInstance(def)

	snap := inst.Settings()
	snap[0].Value = Number(99)

	if v, _ := inst.Setting("a"); !v.Equal(Number(1)) {
		t.Error("mutating a settings snapshot must not affect the instance")
	}
}
