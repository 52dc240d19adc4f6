package actuate

import (
	"fmt"
	"image"
	"testing"
	"time"

	"github.com/lkarlslund/stormbot/internal/target"
)

type recorder struct {
	calls []string
}

func (r *recorder) Click(p image.Point) {
	r.calls = append(r.calls, fmt.Sprintf("click %d,%d", p.X, p.Y))
}
func (r *recorder) PressAndHold(p image.Point) {
	r.calls = append(r.calls, fmt.Sprintf("press %d,%d", p.X, p.Y))
}
func (r *recorder) MoveTo(p image.Point) {
	r.calls = append(r.calls, fmt.Sprintf("move %d,%d", p.X, p.Y))
}
func (r *recorder) Release() { r.calls = append(r.calls, "release") }

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func soldierAt(x, y int) target.Detection {
	return target.Detection{Class: target.Soldier, Box: image.Rect(x, y, x+10, y+28)}
}

func newActuator(r *recorder, c *clock) *Actuator {
	return New(r, Config{Origin: image.Pt(10, 130), Delay: 200 * time.Millisecond, Now: c.now})
}

func expectCalls(t *testing.T, r *recorder, want ...string) {
	t.Helper()
	if len(r.calls) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, r.calls)
	}
	for i := range want {
		if r.calls[i] != want[i] {
			t.Fatalf("expected calls %v, got %v", want, r.calls)
		}
	}
}

func TestClickAtBoxCenter(t *testing.T) {
	r := &recorder{}
	a := newActuator(r, &clock{t: time.Unix(1000, 0)})

	a.Fire(soldierAt(100, 50), false, false)

	expectCalls(t, r, "click 115,194")
	if a.Shots() != 1 {
		t.Fatalf("expected one shot, got %d", a.Shots())
	}
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		gap  time.Duration
		want int
	}{
		{0, 1},
		{199 * time.Millisecond, 1},
		{200 * time.Millisecond, 2},
		{time.Second, 2},
	}
	for _, tt := range tests {
		r := &recorder{}
		c := &clock{t: time.Unix(1000, 0)}
		a := newActuator(r, c)

		a.TryFire(soldierAt(0, 0), false, false)
		c.advance(tt.gap)
		a.TryFire(soldierAt(0, 0), false, false)

		if len(r.calls) != tt.want {
			t.Fatalf("gap %v: expected %d clicks, got %v", tt.gap, tt.want, r.calls)
		}
	}
}

func TestHoldPressesThenMoves(t *testing.T) {
	r := &recorder{}
	c := &clock{t: time.Unix(1000, 0)}
	a := newActuator(r, c)

	for i := 0; i < 3; i++ {
		if !a.TryFire(soldierAt(i*20, 0), true, false) {
			t.Fatalf("hold mode must not be rate limited")
		}
	}
	if !a.Holding() {
		t.Fatalf("expected button to be held")
	}
	a.Release()
	a.TryFire(soldierAt(0, 0), true, false)

	expectCalls(t, r, "press 15,144", "move 35,144", "move 55,144", "release", "press 15,144")
}

func TestReloadingShotsClickButDoNotCount(t *testing.T) {
	r := &recorder{}
	a := newActuator(r, &clock{t: time.Unix(1000, 0)})

	a.Fire(soldierAt(0, 0), false, true)
	a.Fire(soldierAt(0, 0), false, false)

	if len(r.calls) != 2 {
		t.Fatalf("expected both shots to click, got %v", r.calls)
	}
	if a.Shots() != 1 {
		t.Fatalf("expected one counted shot, got %d", a.Shots())
	}
}

func TestSprayFiresEveryTargetEveryCall(t *testing.T) {
	r := &recorder{}
	a := newActuator(r, &clock{t: time.Unix(1000, 0)})
	ts := []target.Detection{soldierAt(0, 0), soldierAt(50, 0), soldierAt(100, 0)}

	a.Spray(ts, false, false)
	a.Spray(ts, false, false)

	if len(r.calls) != 6 {
		t.Fatalf("expected six clicks, got %v", r.calls)
	}
	if a.Shots() != 6 {
		t.Fatalf("expected six shots, got %d", a.Shots())
	}
}

func TestDisableDropsPendingHold(t *testing.T) {
	r := &recorder{}
	a := newActuator(r, &clock{t: time.Unix(1000, 0)})

	a.TryFire(soldierAt(0, 0), true, false)
	a.Disable()
	// A shot decided on before Disable arrives late.
	if a.TryFire(soldierAt(0, 0), true, false) {
		t.Fatalf("expected no shot while disabled")
	}
	a.Fire(soldierAt(0, 0), false, false)
	a.Spray([]target.Detection{soldierAt(0, 0)}, true, false)

	expectCalls(t, r, "press 15,144", "release")
	if a.Holding() || a.Enabled() {
		t.Fatalf("expected released and disabled, got holding=%v enabled=%v", a.Holding(), a.Enabled())
	}

	a.Enable()
	a.TryFire(soldierAt(0, 0), true, false)
	expectCalls(t, r, "press 15,144", "release", "release", "press 15,144")
	if a.Shots() != 2 {
		t.Fatalf("expected two counted shots, got %d", a.Shots())
	}
}

func TestStartDisabled(t *testing.T) {
	r := &recorder{}
	a := New(r, Config{Disabled: true})
	a.Fire(soldierAt(0, 0), false, false)
	if len(r.calls) != 0 || a.Enabled() {
		t.Fatalf("expected a disabled actuator to stay quiet, got %v", r.calls)
	}
}
