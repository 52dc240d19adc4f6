package gamestate

import "image"

// AmmoTracker follows the ammo bar at the top of the window. Two probes
// give it hysteresis: the start of the bar going dark means the clip is
// empty, and only the far end of the bar lighting up again means it is full.
type AmmoTracker struct {
	EmptyProbe image.Point
	ReadyProbe image.Point
	Full       BGR
	Tolerance  uint8

	reloading bool
}

// Update reads both probes from f and reports the resulting state and
// whether it changed during this call.
func (a *AmmoTracker) Update(f Frame) (reloading, changed bool) {
	if !a.reloading {
		if !Matches(sample(f, a.EmptyProbe), a.Full, a.Tolerance) {
			a.reloading = true
			return true, true
		}
		return false, false
	}
	if Matches(sample(f, a.ReadyProbe), a.Full, a.Tolerance) {
		a.reloading = false
		return false, true
	}
	return true, false
}

// Reloading returns the last state computed by Update.
func (a *AmmoTracker) Reloading() bool {
	return a.reloading
}
