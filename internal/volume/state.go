package volume

import "sync"

const initialLevel = 50

// levelState tracks level and mute per target. Targets appear on
// first use at the initial level, unmuted.
type levelState struct {
	mu      sync.Mutex
	targets map[string]*targetState
}

type targetState struct {
	level int
	muted bool
}

func newLevelState() *levelState {
	return &levelState{targets: make(map[string]*targetState)}
}

func (s *levelState) get(target string) *targetState {
	ts, ok := s.targets[target]
	if !ok {
		ts = &targetState{level: initialLevel}
		s.targets[target] = ts
	}
	return ts
}

func (s *levelState) level(target string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(target).level
}

// setLevel clamps pct to 0..100 and returns the applied level.
func (s *levelState) setLevel(target string, pct int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts := s.get(target)
	ts.level = clampLevel(pct)
	return ts.level
}

func (s *levelState) adjust(target string, delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts := s.get(target)
	ts.level = clampLevel(ts.level + delta)
	return ts.level
}

func (s *levelState) toggleMute(target string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts := s.get(target)
	ts.muted = !ts.muted
	return ts.muted
}

func (s *levelState) muted(target string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(target).muted
}

func clampLevel(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
