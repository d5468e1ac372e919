package hotkey

import (
	"sync/atomic"

	"github.com/rs/zerolog"
	xhotkey "golang.design/x/hotkey"

	"github.com/Dregu/volume-control/internal/keys"
)

// osRegistrar claims combinations through golang.design/x/hotkey and
// forwards keydown events onto a single trigger channel. It keeps its
// own claim table keyed by normalized combination so duplicate claims
// from this process are rejected deterministically instead of relying
// on platform-specific error codes.
type osRegistrar struct {
	log      zerolog.Logger
	next     atomic.Int64
	triggers chan ID
	claims   map[keys.Combination]ID
	active   map[ID]*osClaim
}

type osClaim struct {
	hk       *xhotkey.Hotkey
	combo    keys.Combination
	noRepeat bool
	stop     chan struct{}
}

// NewRegistrar returns a Registrar backed by the operating system's
// global hotkey facility.
func NewRegistrar(log zerolog.Logger) Registrar {
	return &osRegistrar{
		log:      log.With().Str("component", "registrar").Logger(),
		triggers: make(chan ID, 16),
		claims:   make(map[keys.Combination]ID),
		active:   make(map[ID]*osClaim),
	}
}

func (r *osRegistrar) Allocate() ID {
	return ID(r.next.Add(1))
}

func (r *osRegistrar) Register(id ID, combo keys.Combination) bool {
	if !combo.IsValid() {
		return false
	}
	if _, held := r.active[id]; held {
		// One claim per id. Callers re-register by unregistering first.
		return false
	}
	norm := combo.Normalized()
	if owner, taken := r.claims[norm]; taken {
		r.log.Debug().
			Int("id", int(id)).
			Int("owner", int(owner)).
			Str("combination", combo.String()).
			Msg("Combination already claimed in this process")
		return false
	}
	key, ok := osKey(combo.Key)
	if !ok {
		r.log.Warn().
			Str("key", combo.Key.String()).
			Msg("Key has no platform mapping")
		return false
	}
	hk := xhotkey.New(osModifiers(combo.Mods), key)
	if err := hk.Register(); err != nil {
		r.log.Debug().
			Err(err).
			Str("combination", combo.String()).
			Msg("OS rejected hotkey claim")
		return false
	}
	cl := &osClaim{
		hk:       hk,
		combo:    norm,
		noRepeat: combo.Mods.Has(keys.ModNoRepeat),
		stop:     make(chan struct{}),
	}
	r.claims[norm] = id
	r.active[id] = cl
	go r.forward(id, cl)
	r.log.Debug().
		Int("id", int(id)).
		Str("combination", combo.String()).
		Msg("Hotkey claimed")
	return true
}

// forward pumps keydown events for one claim onto the shared trigger
// channel until the claim is released. With NoRepeat set, keydowns
// arriving before the matching keyup are dropped so holding the key
// fires once.
func (r *osRegistrar) forward(id ID, cl *osClaim) {
	for {
		select {
		case <-cl.stop:
			return
		case <-cl.hk.Keydown():
			select {
			case r.triggers <- id:
			case <-cl.stop:
				return
			}
			if !cl.noRepeat {
				continue
			}
			for held := true; held; {
				select {
				case <-cl.stop:
					return
				case <-cl.hk.Keydown():
				case <-cl.hk.Keyup():
					held = false
				}
			}
		}
	}
}

func (r *osRegistrar) Unregister(id ID) bool {
	cl, held := r.active[id]
	if !held {
		return false
	}
	close(cl.stop)
	if err := cl.hk.Unregister(); err != nil {
		r.log.Warn().
			Err(err).
			Int("id", int(id)).
			Msg("OS unregister failed, releasing claim anyway")
	}
	delete(r.active, id)
	delete(r.claims, cl.combo)
	r.log.Debug().Int("id", int(id)).Msg("Hotkey claim released")
	return true
}

func (r *osRegistrar) Triggers() <-chan ID {
	return r.triggers
}

func (r *osRegistrar) Close() error {
	for id := range r.active {
		r.Unregister(id)
	}
	close(r.triggers)
	return nil
}
