package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/getlantern/systray"

	"github.com/Dregu/volume-control/internal/action"
	"github.com/Dregu/volume-control/internal/actions"
	"github.com/Dregu/volume-control/internal/app"
	"github.com/Dregu/volume-control/internal/autostart"
	"github.com/Dregu/volume-control/internal/config"
	"github.com/Dregu/volume-control/internal/hotkey"
	"github.com/Dregu/volume-control/internal/logging"
	"github.com/Dregu/volume-control/internal/permissions"
	"github.com/Dregu/volume-control/internal/store"
	"github.com/Dregu/volume-control/internal/tray"
	"github.com/Dregu/volume-control/internal/volume"
)

var (
	// Version is set via ldflags at build time
	Version = "dev"
	// Commit is set via ldflags at build time
	Commit = "unknown"
)

func main() {
	// Load config from XDG/Library/AppData
	cfg, err := config.Load()
	if err != nil {
		// Use default logger if config fails to load
		log := logging.New()
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	// Initialize logger with configured level
	log := logging.NewWithLevel(cfg.LogLevel)

	// macOS requires explicit accessibility approval before global hotkeys work
	if err := permissions.EnsurePermissions(); err != nil {
		log.Fatal().Err(err).Msg("Required permissions not granted")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the volume controller
	ctrl, err := volume.New(log, cfg.Feedback.Enabled)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize volume control")
	}

	// Discover the action catalog
	catalog := action.NewCatalog(log,
		actions.NewVolumeGroup(ctrl),
		actions.NewClipboardGroup(),
	)

	// OS hotkey claims
	registrar := hotkey.NewRegistrar(log)

	// Bindings persistence
	st := store.New(log, config.BindingsPath())

	// Create tray UI first (we'll pass it to the manager callbacks)
	trayUI := tray.New(nil, cfg, st, autostart.New(), Version, Commit, log) // App reference set below

	mgr := hotkey.NewManager(hotkey.ManagerConfig{
		Logger:    log,
		Registrar: registrar,
		Catalog:   catalog,
		Defaults:  hotkey.DefaultRecords(),
		OnChange:  trayUI.OnChange,
		OnTrigger: trayUI.OnTrigger,
	})

	// Bindings from disk, or the defaults on first run
	records, err := st.Load()
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("Failed to load bindings, using defaults")
		mgr.ResetToDefaults()
	case records == nil:
		n := mgr.ResetToDefaults()
		log.Info().Int("count", n).Msg("No bindings file, loaded defaults")
		if err := st.Save(mgr.SaveAll()); err != nil {
			log.Warn().Err(err).Msg("Failed to write initial bindings")
		}
	default:
		n := mgr.LoadAll(records)
		log.Info().Int("count", n).Str("path", st.Path()).Msg("Loaded bindings")
	}

	application := app.New(app.Config{
		Manager:   mgr,
		Registrar: registrar,
		Logger:    log,
	})

	// Set app reference in tray
	trayUI.SetApp(application)

	go application.Run(ctx)

	// Push outside edits of the bindings file into the loop
	if cfg.WatchBindings {
		go func() {
			err := st.Watch(ctx, func(records []hotkey.Record) {
				application.Post(func(m *hotkey.Manager) {
					n := m.ReloadAll(records)
					log.Info().Int("count", n).Msg("Bindings file changed, reloaded")
				})
			})
			if err != nil {
				log.Warn().Err(err).Msg("Bindings watcher unavailable")
			}
		}()
	}

	log.Info().Str("version", Version).Str("commit", Commit).Msg("Volume Control starting...")

	// Setup shutdown signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("Shutting down...")
		systray.Quit()
	}()

	// Start tray UI - MUST run on main thread
	if err := trayUI.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Tray error")
	}

	// Quit clicked or signal received. Stop the loop first so the
	// manager releases its claims, then close the OS resources.
	cancel()
	<-application.Done()
	if err := registrar.Close(); err != nil {
		log.Warn().Err(err).Msg("Registrar close failed")
	}
	if err := ctrl.Close(); err != nil {
		log.Warn().Err(err).Msg("Volume controller close failed")
	}
	log.Info().Msg("Volume Control stopped")
}
