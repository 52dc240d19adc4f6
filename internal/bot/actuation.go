package bot

import (
	"context"
	"time"

	"github.com/lkarlslund/stormbot/internal/actuate"
)

const (
	DefaultIdle = 5 * time.Millisecond
	DefaultPace = time.Millisecond
)

// Actuation shoots at whatever perception last published.
type Actuation struct {
	State    *State
	Actuator *actuate.Actuator

	// Spray fires at every ranked target each cycle instead of the
	// selected one, without rate limiting.
	Spray bool

	// Idle is the wait while there is nothing to do, Pace the wait after
	// each attempt.
	Idle time.Duration
	Pace time.Duration
}

// Run polls until ctx is cancelled.
func (a *Actuation) Run(ctx context.Context) {
	for ctx.Err() == nil {
		time.Sleep(a.Step())
	}
}

// Step makes one attempt and returns how long to wait before the next.
func (a *Actuation) Step() time.Duration {
	if !a.State.Shooting.Load() {
		return a.Idle
	}
	snap := a.State.Snapshot()
	if snap.Target == nil {
		return a.Idle
	}

	hold, reloading := a.State.Hold.Load(), a.State.Reloading.Load()
	if a.Spray {
		a.Actuator.Spray(snap.Ranked, hold, reloading)
	} else {
		a.Actuator.TryFire(*snap.Target, hold, reloading)
	}
	return a.Pace
}
