package actions

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Dregu/volume-control/internal/action"
	"github.com/Dregu/volume-control/internal/keys"
	"github.com/Dregu/volume-control/internal/volume"
)

// mockController records the calls the actions make.
type mockController struct {
	calls   []string
	muted   bool
	failErr error
}

func (m *mockController) Devices() ([]volume.Device, error) {
	return []volume.Device{{Name: "Speakers", Default: true}}, nil
}

func (m *mockController) Level(target string) (int, error) {
	return 50, nil
}

func (m *mockController) SetLevel(target string, pct int) (int, error) {
	if m.failErr != nil {
		return 0, m.failErr
	}
	m.calls = append(m.calls, fmt.Sprintf("SetLevel(%q, %d)", target, pct))
	return pct, nil
}

func (m *mockController) Adjust(target string, delta int) (int, error) {
	if m.failErr != nil {
		return 0, m.failErr
	}
	m.calls = append(m.calls, fmt.Sprintf("Adjust(%q, %d)", target, delta))
	return 50 + delta, nil
}

func (m *mockController) ToggleMute(target string) (bool, error) {
	if m.failErr != nil {
		return false, m.failErr
	}
	m.muted = !m.muted
	m.calls = append(m.calls, fmt.Sprintf("ToggleMute(%q)", target))
	return m.muted, nil
}

func (m *mockController) Close() error { return nil }

func testTrigger() action.Trigger {
	return action.Trigger{
		Hotkey:      "test",
		Combination: keys.Combination{Key: keys.KeyUp, Mods: keys.ModCtrl | keys.ModAlt},
		When:        time.Now(),
	}
}

func volumeEnv() (*mockController, *action.Catalog) {
	ctrl := &mockController{}
	catalog := action.NewCatalog(zerolog.Nop(), NewVolumeGroup(ctrl))
	return ctrl, catalog
}

func invokeMerged(t *testing.T, catalog *action.Catalog, identifier string, supplied []action.Setting) error {
	t.Helper()
	def, ok := catalog.Definition(identifier)
	if !ok {
		t.Fatalf("Action %s not cataloged", identifier)
	}
	inst := catalog.MergeInstance(def, supplied)
	return inst.Invoke(context.Background(), testTrigger())
}

func TestVolumeGroupCatalogs(t *testing.T) {
	_, catalog := volumeEnv()
	for _, identifier := range []string{"Volume:Increase", "Volume:Decrease", "Volume:Mute", "Volume:Set"} {
		if _, ok := catalog.Definition(identifier); !ok {
			t.Errorf("Expected %s in the catalog", identifier)
		}
	}
}

func TestIncreaseUsesStepAndDevice(t *testing.T) {
	ctrl, catalog := volumeEnv()
	err := invokeMerged(t, catalog, "Volume:Increase", []action.Setting{
		{Name: "step", Value: action.Number(5)},
		{Name: "device", Value: action.Text("Speakers")},
	})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if len(ctrl.calls) != 1 || ctrl.calls[0] != `Adjust("Speakers", 5)` {
		t.Errorf("Unexpected calls %v", ctrl.calls)
	}
}

func TestIncreaseDefaults(t *testing.T) {
	ctrl, catalog := volumeEnv()
	if err := invokeMerged(t, catalog, "Volume:Increase", nil); err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if len(ctrl.calls) != 1 || ctrl.calls[0] != `Adjust("", 2)` {
		t.Errorf("Default invocation should adjust the default device by 2, got %v", ctrl.calls)
	}
}

func TestDecreaseNegatesStep(t *testing.T) {
	ctrl, catalog := volumeEnv()
	err := invokeMerged(t, catalog, "Volume:Decrease", []action.Setting{
		{Name: "step", Value: action.Number(4)},
	})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if len(ctrl.calls) != 1 || ctrl.calls[0] != `Adjust("", -4)` {
		t.Errorf("Decrease should adjust downward, got %v", ctrl.calls)
	}
}

func TestFractionalStepRounds(t *testing.T) {
	ctrl, catalog := volumeEnv()
	err := invokeMerged(t, catalog, "Volume:Increase", []action.Setting{
		{Name: "step", Value: action.Number(2.6)},
	})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if ctrl.calls[0] != `Adjust("", 3)` {
		t.Errorf("Fractional steps should round, got %v", ctrl.calls)
	}
}

func TestSetPassesLevelThrough(t *testing.T) {
	ctrl, catalog := volumeEnv()
	err := invokeMerged(t, catalog, "Volume:Set", []action.Setting{
		{Name: "level", Value: action.Number(250)},
	})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	// Clamping is the Controller's job; the action passes the request on.
	if ctrl.calls[0] != `SetLevel("", 250)` {
		t.Errorf("Set should pass the raw level, got %v", ctrl.calls)
	}
}

func TestMuteTargetsDevice(t *testing.T) {
	ctrl, catalog := volumeEnv()
	err := invokeMerged(t, catalog, "Volume:Mute", []action.Setting{
		{Name: "device", Value: action.Text("Speakers")},
	})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if ctrl.calls[0] != `ToggleMute("Speakers")` {
		t.Errorf("Mute should toggle the named device, got %v", ctrl.calls)
	}
}

func TestControllerErrorPassesThrough(t *testing.T) {
	ctrl, catalog := volumeEnv()
	ctrl.failErr = errors.New("device gone")

	err := invokeMerged(t, catalog, "Volume:Increase", nil)
	if !errors.Is(err, ctrl.failErr) {
		t.Errorf("Controller error should pass through unchanged, got %v", err)
	}
}

func TestClipboardGroupCatalogs(t *testing.T) {
	catalog := action.NewCatalog(zerolog.Nop(), NewClipboardGroup())

	def, ok := catalog.Definition("Clipboard:CopyText")
	if !ok {
		t.Fatal("Expected Clipboard:CopyText in the catalog")
	}
	if _, ok := def.Schema.Field("text"); !ok {
		t.Error("CopyText should declare a text setting")
	}
	if _, ok := catalog.Definition("Clipboard:Clear"); !ok {
		t.Error("Expected Clipboard:Clear in the catalog")
	}
}
