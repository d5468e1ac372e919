package hotkey

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Dregu/volume-control/internal/action"
	"github.com/Dregu/volume-control/internal/keys"
)

// TriState summarizes the registered flags of the whole collection.
type TriState uint8

const (
	TriOff TriState = iota
	TriOn
	TriMixed
)

func (t TriState) String() string {
	switch t {
	case TriOn:
		return "all"
	case TriMixed:
		return "some"
	default:
		return "none"
	}
}

// ChangeOp names the operation behind a change notification.
type ChangeOp uint8

const (
	OpAdd ChangeOp = iota + 1
	OpRemove
	OpUpdate
	OpSelect
	OpRebind
	OpLoad
	OpReload
	OpSave
	OpReset
)

func (op ChangeOp) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpRemove:
		return "remove"
	case OpUpdate:
		return "update"
	case OpSelect:
		return "select"
	case OpRebind:
		return "rebind"
	case OpLoad:
		return "load"
	case OpReload:
		return "reload"
	case OpSave:
		return "save"
	case OpReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Change describes one completed mutating operation. Every mutating
// Manager method emits exactly one Change; ID is zero for operations
// that touch the whole collection.
type Change struct {
	Op          ChangeOp
	ID          ID
	Count       int
	AllSelected TriState
}

// TriggerEvent reports one dispatched hotkey press. Action is empty
// for an unbound hotkey. Err carries the invocation failure, if any;
// the failure has already been logged and contained.
type TriggerEvent struct {
	ID          ID
	Name        string
	Combination keys.Combination
	Action      string
	Settings    []action.Setting
	When        time.Time
	Err         error
}

// ManagerConfig carries the Manager's collaborators.
type ManagerConfig struct {
	Logger    zerolog.Logger
	Registrar Registrar
	Catalog   *action.Catalog

	// Defaults is the binding set installed by ResetToDefaults.
	Defaults []Record

	// OnChange observes every mutating operation. Called synchronously
	// on the owning goroutine; keep it quick.
	OnChange func(Change)

	// OnTrigger observes every dispatched press.
	OnTrigger func(TriggerEvent)
}

// Manager owns the ordered hotkey collection. It is not safe for
// concurrent use: exactly one goroutine, the dispatch loop, may call
// its methods. Other goroutines hand it work through app.Post.
type Manager struct {
	log       zerolog.Logger
	reg       Registrar
	catalog   *action.Catalog
	defaults  []Record
	onChange  func(Change)
	onTrigger func(TriggerEvent)

	hotkeys     []*Hotkey
	allSelected TriState
}

// NewManager returns an empty manager. Registrar and Catalog are
// required; the notification hooks may be nil.
func NewManager(cfg ManagerConfig) *Manager {
	return &Manager{
		log:       cfg.Logger.With().Str("component", "hotkeys").Logger(),
		reg:       cfg.Registrar,
		catalog:   cfg.Catalog,
		defaults:  cfg.Defaults,
		onChange:  cfg.OnChange,
		onTrigger: cfg.OnTrigger,
	}
}

// finish recomputes the collection summary and emits the single change
// notification for a completed operation. Every mutating method ends
// here exactly once, so bulk operations cost one recompute regardless
// of size.
func (m *Manager) finish(op ChangeOp, id ID) {
	m.allSelected = m.computeAllSelected()
	if m.onChange != nil {
		m.onChange(Change{
			Op:          op,
			ID:          id,
			Count:       len(m.hotkeys),
			AllSelected: m.allSelected,
		})
	}
}

func (m *Manager) computeAllSelected() TriState {
	if len(m.hotkeys) == 0 {
		return TriOff
	}
	first := m.hotkeys[0].registered
	for _, hk := range m.hotkeys[1:] {
		if hk.registered != first {
			return TriMixed
		}
	}
	if first {
		return TriOn
	}
	return TriOff
}

// AllSelected reports the summary computed by the last operation.
func (m *Manager) AllSelected() TriState { return m.allSelected }

func (m *Manager) Len() int { return len(m.hotkeys) }

// Hotkeys returns the collection in order. The slice is a snapshot;
// the pointed-to hotkeys are live.
func (m *Manager) Hotkeys() []*Hotkey {
	out := make([]*Hotkey, len(m.hotkeys))
	copy(out, m.hotkeys)
	return out
}

func (m *Manager) Get(id ID) (*Hotkey, bool) {
	for _, hk := range m.hotkeys {
		if hk.id == id {
			return hk, true
		}
	}
	return nil, false
}

func (m *Manager) indexOf(id ID) int {
	for i, hk := range m.hotkeys {
		if hk.id == id {
			return i
		}
	}
	return -1
}

// Add appends a new unregistered, unbound hotkey and returns it.
func (m *Manager) Add(name string, combo keys.Combination) *Hotkey {
	hk := newHotkey(m.reg, m.log, name, combo)
	m.hotkeys = append(m.hotkeys, hk)
	m.log.Info().
		Str("hotkey", name).
		Str("combination", combo.String()).
		Msg("Hotkey added")
	m.finish(OpAdd, hk.id)
	return hk
}

// Remove releases the hotkey's claim, if any, and drops it from the
// collection. Unknown ids are a no-op and emit nothing.
func (m *Manager) Remove(id ID) bool {
	idx := m.indexOf(id)
	if idx < 0 {
		return false
	}
	hk := m.hotkeys[idx]
	hk.setRegistered(false)
	m.hotkeys = append(m.hotkeys[:idx], m.hotkeys[idx+1:]...)
	m.log.Info().Str("hotkey", hk.name).Msg("Hotkey removed")
	m.finish(OpRemove, id)
	return true
}

// SetRegistered requests the hotkey's registered state. The result
// reports whether the hotkey ended up in the requested state; a denied
// claim reports false with the hotkey left unregistered.
func (m *Manager) SetRegistered(id ID, registered bool) bool {
	hk, found := m.Get(id)
	if !found {
		return false
	}
	ok := hk.setRegistered(registered)
	m.finish(OpSelect, id)
	return ok
}

// SetCombination rebinds the hotkey to a new combination, re-claiming
// it when it was registered. See Hotkey.setCombination for the failure
// behavior.
func (m *Manager) SetCombination(id ID, combo keys.Combination) bool {
	hk, found := m.Get(id)
	if !found {
		return false
	}
	ok := hk.setCombination(combo)
	m.finish(OpUpdate, id)
	return ok
}

// Rename changes the hotkey's display name.
func (m *Manager) Rename(id ID, name string) bool {
	hk, found := m.Get(id)
	if !found {
		return false
	}
	hk.rename(name)
	m.finish(OpUpdate, id)
	return true
}

// Rebind binds the hotkey to the named action with the supplied
// settings merged over the action's schema. An empty identifier
// unbinds. An unknown identifier leaves the hotkey unbound and reports
// false; the hotkey itself stays in the collection.
func (m *Manager) Rebind(id ID, identifier string, supplied []action.Setting) bool {
	hk, found := m.Get(id)
	if !found {
		return false
	}
	ok := m.bind(hk, identifier, supplied)
	m.finish(OpRebind, id)
	return ok
}

func (m *Manager) bind(hk *Hotkey, identifier string, supplied []action.Setting) bool {
	if identifier == "" {
		hk.bind(nil)
		return true
	}
	def, found := m.catalog.Definition(identifier)
	if !found {
		m.log.Warn().
			Str("identifier", identifier).
			Str("hotkey", hk.name).
			Msg("Unknown action identifier, hotkey left unbound")
		hk.bind(nil)
		return false
	}
	hk.bind(m.catalog.MergeInstance(def, supplied))
	return true
}

// SetAllSelected drives every hotkey toward the given state in one
// operation. TriMixed is not a target and is ignored. Hotkeys whose
// claim is denied simply stay unregistered; the final summary reflects
// whatever was achieved.
func (m *Manager) SetAllSelected(state TriState) {
	if state == TriMixed {
		return
	}
	target := state == TriOn
	for _, hk := range m.hotkeys {
		hk.setRegistered(target)
	}
	m.log.Info().
		Bool("registered", target).
		Int("count", len(m.hotkeys)).
		Msg("Applied registered state to all hotkeys")
	m.finish(OpSelect, 0)
}

// LoadAll appends hotkeys built from records to the collection and
// reports how many loaded. Records that cannot be realized are skipped
// with a warning; a record whose action is unknown still loads, as an
// unbound hotkey. Persisted registered flags are applied only after
// the hotkey exists, so a denied claim costs the registration, not the
// binding.
func (m *Manager) LoadAll(records []Record) int {
	n := m.load(records)
	m.finish(OpLoad, 0)
	return n
}

func (m *Manager) load(records []Record) int {
	loaded := 0
	for _, rec := range records {
		combo, err := rec.combination()
		if err != nil {
			m.log.Warn().
				Err(err).
				Str("hotkey", rec.Name).
				Msg("Skipping binding with unusable combination")
			continue
		}
		hk := newHotkey(m.reg, m.log, rec.Name, combo)
		if rec.Action != nil {
			m.bind(hk, rec.Action.Identifier, rec.Action.Settings)
		}
		m.hotkeys = append(m.hotkeys, hk)
		if rec.Registered {
			hk.setRegistered(true)
		}
		loaded++
	}
	return loaded
}

// ReloadAll replaces the collection with one built from records,
// releasing every existing claim first.
func (m *Manager) ReloadAll(records []Record) int {
	m.discardAll()
	n := m.load(records)
	m.log.Info().Int("count", n).Msg("Bindings reloaded")
	m.finish(OpReload, 0)
	return n
}

// SaveAll captures the collection as records in order.
func (m *Manager) SaveAll() []Record {
	records := make([]Record, 0, len(m.hotkeys))
	for _, hk := range m.hotkeys {
		records = append(records, hk.record())
	}
	m.finish(OpSave, 0)
	return records
}

// ResetToDefaults replaces the collection with the configured default
// binding set.
func (m *Manager) ResetToDefaults() int {
	m.discardAll()
	n := m.load(m.defaults)
	m.log.Info().Int("count", n).Msg("Bindings reset to defaults")
	m.finish(OpReset, 0)
	return n
}

func (m *Manager) discardAll() {
	for _, hk := range m.hotkeys {
		hk.setRegistered(false)
	}
	m.hotkeys = nil
}

// Dispatch runs the action bound to a triggered hotkey id and emits
// one trigger event. Ids with no hotkey, possible when a trigger races
// a removal, are dropped.
func (m *Manager) Dispatch(ctx context.Context, id ID) {
	hk, found := m.Get(id)
	if !found {
		m.log.Debug().Int("id", int(id)).Msg("Trigger for unknown hotkey dropped")
		return
	}
	evt := hk.dispatch(ctx)
	if m.onTrigger != nil {
		m.onTrigger(evt)
	}
}

// Close releases every claim. The collection empties without a change
// notification; this is teardown, not a user-visible mutation.
func (m *Manager) Close() {
	m.discardAll()
}
