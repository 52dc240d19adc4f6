// Package actuate turns chosen targets into pointer input.
package actuate

import (
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lkarlslund/stormbot/internal/target"
)

// Pointer injects mouse input at absolute screen coordinates.
type Pointer interface {
	Click(p image.Point)
	PressAndHold(p image.Point)
	MoveTo(p image.Point)
	Release()
}

type Config struct {
	// Origin is the screen position of the game window's top-left.
	Origin image.Point

	// Delay is the minimum time between clicks outside hold mode.
	Delay time.Duration

	// Now defaults to time.Now.
	Now func() time.Time

	// Disabled starts the actuator with shooting off.
	Disabled bool
}

// Actuator shoots at targets, either one click per shot or by holding the
// button down and dragging it from target to target.
type Actuator struct {
	pointer Pointer
	origin  image.Point
	delay   time.Duration
	now     func() time.Time

	mu       sync.Mutex
	disabled bool
	holding  bool
	lastShot time.Time

	shots atomic.Int64
}

func New(p Pointer, cfg Config) *Actuator {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Actuator{
		pointer:  p,
		origin:   cfg.Origin,
		delay:    cfg.Delay,
		now:      cfg.Now,
		disabled: cfg.Disabled,
	}
}

// Screen converts a target to the screen point to shoot at.
func (a *Actuator) Screen(t target.Detection) image.Point {
	return a.origin.Add(t.Aim())
}

// Fire shoots once at t, ignoring the rate limit. It does nothing while
// disabled.
//
// Shots taken while reloading still click, they are only left out of the
// shot count.
func (a *Actuator) Fire(t target.Detection, hold, reloading bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.disabled {
		return
	}
	a.fire(t, hold, reloading)
}

func (a *Actuator) fire(t target.Detection, hold, reloading bool) {
	if !reloading {
		a.shots.Add(1)
	}
	p := a.Screen(t)
	if !hold {
		a.pointer.Click(p)
		return
	}
	if !a.holding {
		a.pointer.PressAndHold(p)
		a.holding = true
		return
	}
	a.pointer.MoveTo(p)
}

// TryFire shoots at t unless the last click was less than the configured
// delay ago. Hold mode is never rate limited. It reports whether a shot was
// taken.
func (a *Actuator) TryFire(t target.Detection, hold, reloading bool) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.disabled {
		return false
	}
	if !hold {
		now := a.now()
		if now.Sub(a.lastShot) < a.delay {
			return false
		}
		a.lastShot = now
	}
	a.fire(t, hold, reloading)
	return true
}

// Spray shoots once at every target, without any rate limit.
func (a *Actuator) Spray(ts []target.Detection, hold, reloading bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.disabled {
		return
	}
	for _, t := range ts {
		a.fire(t, hold, reloading)
	}
}

// Release lets go of the button.
func (a *Actuator) Release() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.release()
}

func (a *Actuator) release() {
	a.pointer.Release()
	a.holding = false
}

// Enable releases the button and lets shots through again.
func (a *Actuator) Enable() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.release()
	a.disabled = false
}

// Disable releases the button and drops every shot until Enable. A shot
// decided on before the call can no longer press the button again.
func (a *Actuator) Disable() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.release()
	a.disabled = true
}

// Enabled reports whether shots go through.
func (a *Actuator) Enabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return !a.disabled
}

// Holding reports whether the button is held down.
func (a *Actuator) Holding() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.holding
}

// Shots returns the number of shots fired while not reloading.
func (a *Actuator) Shots() int64 {
	return a.shots.Load()
}
