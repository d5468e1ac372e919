// Package app runs the engine's owning loop. Exactly one goroutine,
// the one inside Run, touches the hotkey Manager: it applies posted
// work and dispatches registrar triggers. Everything else in the
// process reaches the Manager through Post.
package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Dregu/volume-control/internal/hotkey"
)

type Config struct {
	Manager   *hotkey.Manager
	Registrar hotkey.Registrar
	Logger    zerolog.Logger

	// QueueSize bounds the Post backlog. Zero picks a default.
	QueueSize int
}

type App struct {
	mgr *hotkey.Manager
	reg hotkey.Registrar
	log zerolog.Logger

	posts chan func(*hotkey.Manager)
	done  chan struct{}
}

func New(cfg Config) *App {
	size := cfg.QueueSize
	if size <= 0 {
		size = 32
	}
	return &App{
		mgr:   cfg.Manager,
		reg:   cfg.Registrar,
		log:   cfg.Logger.With().Str("component", "app").Logger(),
		posts: make(chan func(*hotkey.Manager), size),
		done:  make(chan struct{}),
	}
}

// Post hands fn to the owning loop, which runs posted work in arrival
// order. After the loop has exited the function is dropped; a posted
// closure must not assume it will run.
func (a *App) Post(fn func(mgr *hotkey.Manager)) {
	select {
	case <-a.done:
		return
	default:
	}
	select {
	case a.posts <- fn:
	case <-a.done:
	}
}

// Done closes once the loop has exited and the Manager is closed. The
// caller shuts the Registrar down only after this.
func (a *App) Done() <-chan struct{} {
	return a.done
}

// Run owns the Manager until ctx is canceled, then closes it and
// returns. Triggers arriving for hotkeys removed in the same turn are
// dropped by Dispatch.
func (a *App) Run(ctx context.Context) {
	defer close(a.done)
	a.log.Info().Msg("Hotkey loop started")
	triggers := a.reg.Triggers()
	for {
		select {
		case <-ctx.Done():
			a.mgr.Close()
			a.log.Info().Msg("Hotkey loop stopped")
			return
		case id, ok := <-triggers:
			if !ok {
				triggers = nil
				continue
			}
			a.mgr.Dispatch(ctx, id)
		case fn := <-a.posts:
			fn(a.mgr)
		}
	}
}
