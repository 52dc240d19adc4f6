package gamestate

import "image"

// Screen is what the menu probe pixel currently shows.
type Screen int

const (
	ScreenGameplay Screen = iota
	ScreenHUD
	ScreenPause
	ScreenDeath
	ScreenShop
)

func (s Screen) String() string {
	switch s {
	case ScreenHUD:
		return "hud"
	case ScreenPause:
		return "pause"
	case ScreenDeath:
		return "death"
	case ScreenShop:
		return "shop"
	}
	return "gameplay"
}

// MenuTracker detects menus drawn over the field. Explosions can flash a
// menu color for a frame, so pause, death and shop colors must be seen on
// more than Frames consecutive frames. The HUD color disables at once.
//
// The checks run in a fixed order (HUD, pause, death, shop) and the first
// debounce color that matches wins.
type MenuTracker struct {
	Probe     image.Point
	HUD       BGR
	Pause     BGR
	Death     BGR
	Shop      BGR
	Frames    int
	Tolerance uint8

	count int
}

// Update samples the probe and reports what was seen and whether shooting
// must be disabled.
func (m *MenuTracker) Update(f Frame) (Screen, bool) {
	px := sample(f, m.Probe)

	seen, disable := ScreenGameplay, false
	if Matches(px, m.HUD, m.Tolerance) {
		seen, disable = ScreenHUD, true
	}

	for _, menu := range [...]struct {
		screen Screen
		color  BGR
	}{
		{ScreenPause, m.Pause},
		{ScreenDeath, m.Death},
		{ScreenShop, m.Shop},
	} {
		if !Matches(px, menu.color, m.Tolerance) {
			continue
		}
		m.count++
		if m.count > m.Frames {
			m.count = 0
			return menu.screen, true
		}
		return menu.screen, disable
	}

	m.count = 0
	return seen, disable
}

// Pending returns the current number of consecutive menu frames.
func (m *MenuTracker) Pending() int {
	return m.count
}
