// Package bot runs the two loops of the shooter: perception, which looks at
// the screen and decides what to shoot, and actuation, which shoots it.
package bot

import (
	"sync"
	"sync/atomic"

	"github.com/lkarlslund/stormbot/internal/target"
)

// Snapshot is what perception publishes each cycle. The Ranked slice is
// never modified once published.
type Snapshot struct {
	Target *target.Detection
	Ranked []target.Detection
}

// State is shared by both loops. The snapshot slot is replaced whole under
// a lock; the flags are written by perception only and read independently.
type State struct {
	mu   sync.Mutex
	snap Snapshot

	Shooting  atomic.Bool
	Hold      atomic.Bool
	Reloading atomic.Bool
}

// Publish replaces the current snapshot.
func (s *State) Publish(snap Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// Snapshot returns the latest published snapshot.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}
