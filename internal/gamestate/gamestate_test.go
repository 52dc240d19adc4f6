package gamestate

import (
	"image"
	"testing"
)

type pixels map[image.Point]BGR

func (p pixels) BGR(x, y int) BGR {
	return p[image.Pt(x, y)]
}

var (
	full       = BGR{38, 34, 46}
	emptyProbe = image.Pt(8, 10)
	readyProbe = image.Pt(208, 10)
)

func newAmmo() *AmmoTracker {
	return &AmmoTracker{EmptyProbe: emptyProbe, ReadyProbe: readyProbe, Full: full, Tolerance: 20}
}

func TestMatchesTolerance(t *testing.T) {
	tests := []struct {
		c    BGR
		tol  uint8
		want bool
	}{
		{BGR{38, 34, 46}, 0, true},
		{BGR{58, 14, 66}, 20, true},
		{BGR{59, 34, 46}, 20, false},
		{BGR{0, 0, 0}, 20, false},
		{BGR{39, 34, 46}, 0, false},
	}
	for _, tt := range tests {
		if got := Matches(tt.c, full, tt.tol); got != tt.want {
			t.Fatalf("Matches(%v, %v, %d) = %v, want %v", tt.c, full, tt.tol, got, tt.want)
		}
	}
}

func TestAmmoHysteresis(t *testing.T) {
	a := newAmmo()

	loaded := pixels{emptyProbe: full, readyProbe: full}
	if reloading, changed := a.Update(loaded); reloading || changed {
		t.Fatalf("expected loaded with no change, got reloading=%v changed=%v", reloading, changed)
	}

	// Start of the bar drained; the ready probe still shows the full color
	// but must not be consulted in the same frame.
	drained := pixels{emptyProbe: {200, 200, 200}, readyProbe: full}
	if reloading, changed := a.Update(drained); !reloading || !changed {
		t.Fatalf("expected to enter reloading, got reloading=%v changed=%v", reloading, changed)
	}

	// Bar start refilled but the far end is still dark: keep reloading.
	partial := pixels{emptyProbe: full, readyProbe: {0, 0, 0}}
	for i := 0; i < 3; i++ {
		if reloading, changed := a.Update(partial); !reloading || changed {
			t.Fatalf("expected to stay reloading, got reloading=%v changed=%v", reloading, changed)
		}
	}

	// Entering again while reloading is a no-op.
	drainedDark := pixels{emptyProbe: {200, 200, 200}, readyProbe: {0, 0, 0}}
	for i := 0; i < 2; i++ {
		if reloading, changed := a.Update(drainedDark); !reloading || changed {
			t.Fatalf("expected no-op while reloading, got reloading=%v changed=%v", reloading, changed)
		}
	}

	if reloading, changed := a.Update(loaded); reloading || !changed {
		t.Fatalf("expected to leave reloading, got reloading=%v changed=%v", reloading, changed)
	}
	if a.Reloading() {
		t.Fatalf("expected tracker to report loaded")
	}
}

func TestAmmoReadyProbeClearsOnNextFrame(t *testing.T) {
	a := newAmmo()
	drained := pixels{emptyProbe: {200, 200, 200}, readyProbe: full}

	if reloading, changed := a.Update(drained); !reloading || !changed {
		t.Fatalf("expected to enter reloading, got reloading=%v changed=%v", reloading, changed)
	}
	// Same frame again: the ready probe is consulted now and matches.
	if reloading, changed := a.Update(drained); reloading || !changed {
		t.Fatalf("expected ready probe to clear reloading, got reloading=%v changed=%v", reloading, changed)
	}
}

var (
	menuProbe = image.Pt(5, 220)
	hudColor  = BGR{175, 178, 182}
	pause     = BGR{120, 126, 132}
	death     = BGR{58, 64, 108}
	shop      = BGR{101, 102, 104}
	field     = BGR{90, 140, 60}
)

func newMenu() *MenuTracker {
	return &MenuTracker{Probe: menuProbe, HUD: hudColor, Pause: pause, Death: death, Shop: shop, Frames: 2}
}

func frame(c BGR) pixels {
	return pixels{menuProbe: c}
}

func TestMenuDebounce(t *testing.T) {
	m := newMenu()
	for i := 0; i < 2; i++ {
		if screen, disable := m.Update(frame(pause)); disable || screen != ScreenPause {
			t.Fatalf("frame %d: expected pending pause, got %v disable=%v", i, screen, disable)
		}
	}
	if _, disable := m.Update(frame(pause)); !disable {
		t.Fatalf("expected third consecutive pause frame to disable")
	}
	if m.Pending() != 0 {
		t.Fatalf("expected counter reset after disable, got %d", m.Pending())
	}
}

func TestMenuDebounceResetsOnMiss(t *testing.T) {
	m := newMenu()
	seq := []BGR{death, shop, field, pause, death}
	for i, c := range seq {
		if _, disable := m.Update(frame(c)); disable {
			t.Fatalf("frame %d: unexpected disable", i)
		}
	}
	if m.Pending() != 2 {
		t.Fatalf("expected two pending frames, got %d", m.Pending())
	}
}

func TestMenuMixedColorsCount(t *testing.T) {
	m := newMenu()
	m.Update(frame(pause))
	m.Update(frame(death))
	screen, disable := m.Update(frame(shop))
	if !disable || screen != ScreenShop {
		t.Fatalf("expected shop frame to complete the debounce, got %v disable=%v", screen, disable)
	}
}

func TestMenuHUDDisablesImmediately(t *testing.T) {
	m := newMenu()
	m.Update(frame(pause))
	screen, disable := m.Update(frame(hudColor))
	if !disable || screen != ScreenHUD {
		t.Fatalf("expected immediate HUD disable, got %v disable=%v", screen, disable)
	}
	if m.Pending() != 0 {
		t.Fatalf("expected HUD frame to reset the menu counter, got %d", m.Pending())
	}
}

func TestMenuGameplayIsQuiet(t *testing.T) {
	m := newMenu()
	for i := 0; i < 10; i++ {
		if screen, disable := m.Update(frame(field)); disable || screen != ScreenGameplay {
			t.Fatalf("expected gameplay, got %v disable=%v", screen, disable)
		}
	}
}
