package bot

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/lkarlslund/stormbot/internal/actuate"
	"github.com/lkarlslund/stormbot/internal/gamestate"
	"github.com/lkarlslund/stormbot/internal/target"
	"github.com/lkarlslund/stormbot/internal/vision"
	"gocv.io/x/gocv"
)

// Input is a control event polled once per perception cycle.
type Input int

const (
	InputNone Input = iota
	InputToggleShooting
	InputToggleHold
	InputQuit
)

// FrameSource captures the game window as a BGR Mat owned by the caller.
type FrameSource interface {
	Capture() (gocv.Mat, error)
}

type Detector interface {
	Detect(frame gocv.Mat) []target.Detection
}

// View is everything a Renderer may show about one cycle.
type View struct {
	Snapshot
	Shots     int64
	Shooting  bool
	Hold      bool
	Reloading bool
}

// Renderer draws debug output. It may draw on the frame.
type Renderer interface {
	Render(frame gocv.Mat, v View)
}

type Controls interface {
	Poll() Input
}

// Perception captures, detects, ranks and publishes a target every cycle.
type Perception struct {
	State      *State
	Source     FrameSource
	Detector   Detector
	Objective  image.Point
	Priorities target.Priorities
	Selector   *target.Selector
	Ammo       *gamestate.AmmoTracker
	Menu       *gamestate.MenuTracker
	Actuator   *actuate.Actuator

	// Renderer and Controls are optional.
	Renderer Renderer
	Controls Controls

	Logger *slog.Logger
}

// Run loops until the quit input arrives, ctx is cancelled or a frame
// cannot be captured.
func (p *Perception) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		quit, err := p.Step()
		if err != nil {
			return err
		}
		if quit {
			p.Logger.Info("Quit requested")
			return nil
		}
	}
	return nil
}

// Step runs a single perception cycle and reports whether to quit.
func (p *Perception) Step() (bool, error) {
	frame, err := p.Source.Capture()
	if err != nil {
		return false, fmt.Errorf("capture: %w", err)
	}
	defer frame.Close()

	ranked := target.Rank(p.Detector.Detect(frame), p.Objective, p.Priorities)

	pixels := vision.MatPixels{Mat: frame}
	if reloading, changed := p.Ammo.Update(pixels); changed {
		p.State.Reloading.Store(reloading)
		p.Logger.Debug("Ammo changed", "reloading", reloading)
	}
	if p.State.Shooting.Load() {
		if screen, disable := p.Menu.Update(pixels); disable {
			p.disableShooting("screen", screen)
		}
	}

	snap := Snapshot{Ranked: ranked}
	if t, ok := p.Selector.Select(ranked); ok {
		snap.Target = &t
	}
	p.State.Publish(snap)

	if p.Renderer != nil {
		p.Renderer.Render(frame, View{
			Snapshot:  snap,
			Shots:     p.Actuator.Shots(),
			Shooting:  p.State.Shooting.Load(),
			Hold:      p.State.Hold.Load(),
			Reloading: p.State.Reloading.Load(),
		})
	}

	if p.Controls == nil {
		return false, nil
	}
	return p.handle(p.Controls.Poll()), nil
}

func (p *Perception) handle(in Input) bool {
	switch in {
	case InputToggleShooting:
		on := !p.State.Shooting.Load()
		p.State.Shooting.Store(on)
		if on {
			p.Actuator.Enable()
		} else {
			p.Actuator.Disable()
		}
		p.Logger.Info("Shooting toggled", "enabled", on)
	case InputToggleHold:
		on := !p.State.Hold.Load()
		p.State.Hold.Store(on)
		if !on && p.Actuator.Holding() {
			p.Actuator.Release()
		}
		p.Logger.Info("Hold mode toggled", "enabled", on)
	case InputQuit:
		return true
	}
	return false
}

func (p *Perception) disableShooting(args ...any) {
	p.State.Shooting.Store(false)
	p.Actuator.Disable()
	p.Logger.Info("Menu detected, shooting disabled", args...)
}
