// Package tray renders the system tray menu: a tri-state summary of
// the hotkey collection, one checkbox per binding, and the maintenance
// items. Every mutation is posted to the hotkey loop and persisted
// through the bindings store.
package tray

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/getlantern/systray"
	"github.com/rs/zerolog"

	"github.com/Dregu/volume-control/internal/app"
	"github.com/Dregu/volume-control/internal/autostart"
	"github.com/Dregu/volume-control/internal/config"
	"github.com/Dregu/volume-control/internal/hotkey"
	"github.com/Dregu/volume-control/internal/logging"
	"github.com/Dregu/volume-control/internal/store"
)

const (
	// systray can only add menu items, never remove them, so the
	// per-binding rows come from a fixed pool of hidden items.
	maxBindingSlots = 16

	flashDuration = 400 * time.Millisecond
)

type UI struct {
	app     *app.App
	cfg     *config.Config
	store   *store.Store
	auto    autostart.Autostart
	version string
	commit  string
	log     zerolog.Logger

	// Menu items
	mSummary    *systray.MenuItem
	mRunAtLogin *systray.MenuItem

	mu    sync.Mutex
	slots []*bindingSlot

	refresh chan struct{}
	flashes chan string
}

// bindingSlot is one pooled menu item. Its fields mirror the binding it
// currently shows and are guarded by UI.mu.
type bindingSlot struct {
	item       *systray.MenuItem
	id         hotkey.ID
	bound      bool
	registered bool
}

// bindingRow is a loop-side snapshot of one hotkey, enough to render
// its menu item without touching the manager again.
type bindingRow struct {
	id         hotkey.ID
	title      string
	registered bool
}

func New(application *app.App, cfg *config.Config, st *store.Store, auto autostart.Autostart,
	version, commit string, log zerolog.Logger) *UI {
	return &UI{
		app:     application,
		cfg:     cfg,
		store:   st,
		auto:    auto,
		version: version,
		commit:  commit,
		log:     log.With().Str("component", "tray").Logger(),
		refresh: make(chan struct{}, 1),
		flashes: make(chan string, 8),
	}
}

// SetApp sets the app reference (for circular dependency resolution)
func (u *UI) SetApp(application *app.App) {
	u.app = application
}

func (u *UI) Run(ctx context.Context) error {
	systray.Run(u.onReady, u.onExit)
	return nil
}

// OnChange is invoked on the hotkey loop after every collection change,
// so it must not block and must not post back to the loop. It only
// schedules a menu refresh.
func (u *UI) OnChange(ch hotkey.Change) {
	u.log.Debug().
		Str("op", ch.Op.String()).
		Int("count", ch.Count).
		Str("selected", ch.AllSelected.String()).
		Msg("Hotkey collection changed")
	u.requestRefresh()
}

// OnTrigger is invoked on the hotkey loop after every dispatch. Same
// rules as OnChange: hand the event off and return.
func (u *UI) OnTrigger(ev hotkey.TriggerEvent) {
	status := "fired"
	if ev.Err != nil {
		status = "error"
	}
	select {
	case u.flashes <- status:
	default:
	}
}

func (u *UI) onReady() {
	u.updateStatus("idle")
	systray.SetTooltip("Global volume hotkeys")

	// Build menu
	u.mSummary = systray.AddMenuItemCheckbox("Hotkeys", "Toggle all hotkeys", false)
	systray.AddSeparator()

	u.slots = make([]*bindingSlot, maxBindingSlots)
	for i := range u.slots {
		item := systray.AddMenuItemCheckbox("", "Toggle this hotkey", false)
		item.Hide()
		slot := &bindingSlot{item: item}
		u.slots[i] = slot
		go u.watchSlot(slot)
	}

	systray.AddSeparator()
	mReload := systray.AddMenuItem("Reload Bindings", "Re-read the bindings file")
	mReset := systray.AddMenuItem("Reset to Defaults", "Restore the default bindings")

	systray.AddSeparator()
	u.mRunAtLogin = systray.AddMenuItemCheckbox("Run at Login", "Start on system boot", u.cfg.RunAtLogin)

	systray.AddSeparator()
	mLogs := systray.AddMenuItem("Open Logs", "View application logs")
	mAbout := systray.AddMenuItem("About", "About Volume Control")
	mQuit := systray.AddMenuItem("Quit", "Exit application")

	// Event loop
	go u.handleEvents(mReload, mReset, mLogs, mAbout, mQuit)
	go u.applyRefreshes()
	go u.applyFlashes()

	u.requestRefresh()
}

func (u *UI) handleEvents(mReload, mReset, mLogs, mAbout, mQuit *systray.MenuItem) {
	for {
		select {
		case <-u.mSummary.ClickedCh:
			u.toggleAll()
		case <-u.mRunAtLogin.ClickedCh:
			u.toggleRunAtLogin()
		case <-mReload.ClickedCh:
			u.reloadBindings()
		case <-mReset.ClickedCh:
			u.resetDefaults()
		case <-mLogs.ClickedCh:
			u.openLogs()
		case <-mAbout.ClickedCh:
			u.showAbout()
		case <-mQuit.ClickedCh:
			systray.Quit()
			return
		}
	}
}

// watchSlot toggles the binding a slot currently shows. A click on an
// unbound slot can race a refresh that just hid it and is dropped.
func (u *UI) watchSlot(s *bindingSlot) {
	for range s.item.ClickedCh {
		u.mu.Lock()
		id, bound, registered := s.id, s.bound, s.registered
		u.mu.Unlock()
		if !bound {
			continue
		}
		u.postAndSave(func(m *hotkey.Manager) {
			m.SetRegistered(id, !registered)
		})
	}
}

func (u *UI) toggleAll() {
	u.postAndSave(func(m *hotkey.Manager) {
		if m.AllSelected() == hotkey.TriOn {
			m.SetAllSelected(hotkey.TriOff)
		} else {
			m.SetAllSelected(hotkey.TriOn)
		}
	})
}

func (u *UI) reloadBindings() {
	records, err := u.store.Load()
	if err != nil {
		u.log.Error().Err(err).Msg("Failed to reload bindings")
		return
	}
	if records == nil {
		u.log.Info().Str("path", u.store.Path()).Msg("No bindings file to reload")
		return
	}
	u.app.Post(func(m *hotkey.Manager) {
		n := m.ReloadAll(records)
		u.log.Info().Int("loaded", n).Msg("Reloaded bindings")
	})
}

func (u *UI) resetDefaults() {
	u.postAndSave(func(m *hotkey.Manager) {
		n := m.ResetToDefaults()
		u.log.Info().Int("count", n).Msg("Restored default bindings")
	})
}

func (u *UI) toggleRunAtLogin() {
	enable := !u.cfg.RunAtLogin
	var err error
	if enable {
		err = u.auto.Enable()
	} else {
		err = u.auto.Disable()
	}
	if err != nil {
		u.log.Error().Err(err).Msg("Failed to change login item")
		return
	}
	u.cfg.RunAtLogin = enable
	if enable {
		u.mRunAtLogin.Check()
		u.log.Info().Msg("Enabled run at login")
	} else {
		u.mRunAtLogin.Uncheck()
		u.log.Info().Msg("Disabled run at login")
	}
	if err := u.cfg.Save(); err != nil {
		u.log.Error().Err(err).Msg("Failed to save config")
	}
}

func (u *UI) openLogs() {
	u.log.Info().Str("path", logging.FilePath()).Msg("Log file location")
}

func (u *UI) showAbout() {
	u.log.Info().
		Str("version", u.version).
		Str("commit", u.commit).
		Msg("Volume Control, global volume hotkeys")
}

func (u *UI) onExit() {
}

// postAndSave runs a mutation on the hotkey loop and persists the
// resulting collection in the same posted closure.
func (u *UI) postAndSave(mutate func(m *hotkey.Manager)) {
	u.app.Post(func(m *hotkey.Manager) {
		mutate(m)
		if err := u.store.Save(m.SaveAll()); err != nil {
			u.log.Error().Err(err).Msg("Failed to save bindings")
		}
	})
}

func (u *UI) requestRefresh() {
	select {
	case u.refresh <- struct{}{}:
	default:
	}
}

// applyRefreshes serializes menu updates. Each pass fetches a fresh
// snapshot from the loop, so a burst of changes collapses into at most
// one stale render followed by a current one.
func (u *UI) applyRefreshes() {
	for range u.refresh {
		u.renderBindings()
	}
}

func (u *UI) renderBindings() {
	rows := make(chan []bindingRow, 1)
	u.app.Post(func(m *hotkey.Manager) {
		rows <- snapshotRows(m)
	})
	var snapshot []bindingRow
	select {
	case snapshot = <-rows:
	case <-u.app.Done():
		return
	}
	u.apply(snapshot)
}

func (u *UI) apply(rows []bindingRow) {
	if len(rows) > len(u.slots) {
		u.log.Warn().
			Int("shown", len(u.slots)).
			Int("total", len(rows)).
			Msg("Too many bindings for the menu")
		rows = rows[:len(u.slots)]
	}

	active := 0
	for _, r := range rows {
		if r.registered {
			active++
		}
	}

	u.mu.Lock()
	for i, s := range u.slots {
		if i < len(rows) {
			r := rows[i]
			s.id, s.bound, s.registered = r.id, true, r.registered
			s.item.SetTitle(r.title)
			if r.registered {
				s.item.Check()
			} else {
				s.item.Uncheck()
			}
			s.item.Show()
		} else {
			s.bound = false
			s.item.Hide()
		}
	}
	u.mu.Unlock()

	u.mSummary.SetTitle(summaryTitle(active, len(rows)))
	if len(rows) > 0 && active == len(rows) {
		u.mSummary.Check()
	} else {
		u.mSummary.Uncheck()
	}
}

// snapshotRows runs on the hotkey loop.
func snapshotRows(m *hotkey.Manager) []bindingRow {
	hks := m.Hotkeys()
	rows := make([]bindingRow, 0, len(hks))
	for _, hk := range hks {
		rows = append(rows, bindingRow{
			id:         hk.ID(),
			title:      fmt.Sprintf("%s — %s", hk.Name(), hk.Combination()),
			registered: hk.Registered(),
		})
	}
	return rows
}

func summaryTitle(active, total int) string {
	switch {
	case total == 0:
		return "Hotkeys: None configured"
	case active == 0:
		return "Hotkeys: None active"
	case active == total:
		return "Hotkeys: All active"
	default:
		return fmt.Sprintf("Hotkeys: %d of %d active", active, total)
	}
}

// applyFlashes blinks the tray title after each trigger.
func (u *UI) applyFlashes() {
	for status := range u.flashes {
		u.updateStatus(status)
		time.Sleep(flashDuration)
		u.updateStatus("idle")
	}
}

// updateStatus sets the tray title with speaker emoji and status indicator
func (u *UI) updateStatus(status string) {
	systray.SetTitle(fmt.Sprintf("🔊 %s", emojiForStatus(status)))
}

// emojiForStatus returns the appropriate status emoji
func emojiForStatus(status string) string {
	switch status {
	case "fired":
		return "🟡" // Yellow - a hotkey just ran
	case "error":
		return "🔴" // Red - last action failed
	default:
		return "🟢" // Green - ready/idle
	}
}
