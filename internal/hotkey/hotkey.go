package hotkey

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Dregu/volume-control/internal/action"
	"github.com/Dregu/volume-control/internal/keys"
)

// Hotkey is one binding: a name, a key combination, an optional bound
// action instance, and whether the combination is currently claimed.
// All state transitions are package-internal and made through the
// Manager, which serializes them on a single owning goroutine.
type Hotkey struct {
	id         ID
	name       string
	combo      keys.Combination
	registered bool
	action     *action.Instance

	reg Registrar
	log zerolog.Logger
}

func newHotkey(reg Registrar, log zerolog.Logger, name string, combo keys.Combination) *Hotkey {
	return &Hotkey{
		id:    reg.Allocate(),
		name:  name,
		combo: combo,
		reg:   reg,
		log:   log,
	}
}

func (h *Hotkey) ID() ID                        { return h.id }
func (h *Hotkey) Name() string                  { return h.name }
func (h *Hotkey) Combination() keys.Combination { return h.combo }
func (h *Hotkey) Registered() bool              { return h.registered }

// Action returns the bound instance, or nil when the hotkey is unbound.
func (h *Hotkey) Action() *action.Instance { return h.action }

func (h *Hotkey) rename(name string) { h.name = name }

// bind replaces the bound instance wholesale. Settings changes go
// through a fresh merge, never through mutation of a live instance.
func (h *Hotkey) bind(inst *action.Instance) { h.action = inst }

// setRegistered moves the hotkey between its two states. Entering the
// current state is a no-op success. A denied claim leaves the hotkey
// unregistered and returns false; that is an expected outcome for a
// contended combination.
func (h *Hotkey) setRegistered(registered bool) bool {
	if registered == h.registered {
		return true
	}
	if registered {
		if !h.reg.Register(h.id, h.combo) {
			h.log.Info().
				Str("hotkey", h.name).
				Str("combination", h.combo.String()).
				Msg("Combination unavailable, hotkey stays inactive")
			return false
		}
		h.registered = true
		return true
	}
	if !h.reg.Unregister(h.id) {
		h.log.Warn().
			Str("hotkey", h.name).
			Msg("No claim held for registered hotkey")
	}
	h.registered = false
	return true
}

// setCombination swaps the combination. A registered hotkey releases
// its old claim first and then attempts to claim the new combination;
// if that claim is denied the hotkey ends up unregistered with the new
// combination in place. The old claim is not restored.
func (h *Hotkey) setCombination(combo keys.Combination) bool {
	wasRegistered := h.registered
	if wasRegistered {
		h.setRegistered(false)
	}
	h.combo = combo
	if !wasRegistered {
		return true
	}
	return h.setRegistered(true)
}

// dispatch runs the bound action for one trigger and reports what
// happened. Action errors and panics are captured in the event rather
// than propagated, so one misbehaving action cannot stall trigger
// processing.
func (h *Hotkey) dispatch(ctx context.Context) TriggerEvent {
	evt := TriggerEvent{
		ID:          h.id,
		Name:        h.name,
		Combination: h.combo,
		When:        time.Now(),
	}
	if h.action == nil {
		return evt
	}
	evt.Action = h.action.Identifier()
	evt.Settings = h.action.Settings()
	if err := h.invoke(ctx, evt.When); err != nil {
		evt.Err = err
		h.log.Error().
			Err(err).
			Str("hotkey", h.name).
			Str("action", evt.Action).
			Msg("Action invocation failed")
	}
	return evt
}

func (h *Hotkey) invoke(ctx context.Context, when time.Time) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("action panicked: %v", r)
		}
	}()
	return h.action.Invoke(ctx, action.Trigger{
		Hotkey:      h.name,
		Combination: h.combo,
		When:        when,
	})
}

// record captures the hotkey as its persistence form.
func (h *Hotkey) record() Record {
	rec := Record{
		Name:       h.name,
		Key:        h.combo.Key.String(),
		Modifiers:  h.combo.Mods.Names(),
		Registered: h.registered,
	}
	if h.action != nil {
		rec.Action = &ActionRecord{
			Identifier: h.action.Identifier(),
			Settings:   h.action.Settings(),
		}
	}
	return rec
}
