// Package store persists the hotkey binding collection as JSON and
// watches the file for outside edits.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/Dregu/volume-control/internal/hotkey"
)

const (
	debounce = 200 * time.Millisecond

	// Events this close after a Save are treated as our own write.
	ownWriteWindow = 500 * time.Millisecond
)

// Store reads and writes the binding collection at a fixed path.
type Store struct {
	log  zerolog.Logger
	path string

	mu       sync.Mutex
	ownWrite time.Time
}

func New(log zerolog.Logger, path string) *Store {
	return &Store{
		log:  log.With().Str("component", "store").Logger(),
		path: path,
	}
}

func (s *Store) Path() string { return s.path }

// Load reads the persisted records. A missing file is not an error: it
// returns (nil, nil) and the caller falls back to the default set.
func (s *Store) Load() ([]hotkey.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read bindings: %w", err)
	}
	var records []hotkey.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse bindings: %w", err)
	}
	return records, nil
}

// Save writes the records as indented JSON, creating the directory as
// needed. A watcher started from this Store ignores the resulting
// event.
func (s *Store) Save(records []hotkey.Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create bindings directory: %w", err)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.ownWrite = time.Now()
	s.mu.Unlock()
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write bindings: %w", err)
	}
	s.log.Debug().Int("count", len(records)).Str("path", s.path).Msg("Bindings saved")
	return nil
}

func (s *Store) recentOwnWrite() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.ownWrite) < ownWriteWindow
}

// Watch reloads the file after outside edits and hands the records to
// onReload, debouncing write bursts. It blocks until ctx is canceled.
// onReload runs on the watcher goroutine; callers marshal onto their
// own loop.
func (s *Store) Watch(ctx context.Context, onReload func([]hotkey.Record)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace the file,
	// which would orphan a watch on the old inode.
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create bindings directory: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	s.log.Info().Str("path", s.path).Msg("Watching bindings file")

	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(evt.Name) != filepath.Base(s.path) {
				continue
			}
			if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timerC:
					default:
					}
				}
				timer.Reset(debounce)
			}
		case <-timerC:
			timer = nil
			timerC = nil
			if s.recentOwnWrite() {
				continue
			}
			records, err := s.Load()
			if err != nil {
				s.log.Warn().Err(err).Msg("Reload failed, keeping current bindings")
				continue
			}
			if records == nil {
				// File removed; keep the live collection.
				continue
			}
			s.log.Info().Int("count", len(records)).Msg("Bindings file changed, reloading")
			onReload(records)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warn().Err(err).Msg("Watcher error")
		}
	}
}
