// Package overlay shows the bot's view of the game in a debug window and
// reads the hotkeys typed into it.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"github.com/lkarlslund/stormbot/internal/bot"
	"github.com/lkarlslund/stormbot/internal/target"
	"gocv.io/x/gocv"
	"golang.org/x/image/colornames"
)

const (
	KeyShooting = '1'
	KeyHold     = '2'
	KeyEscape   = 27
)

const (
	fontScale = 0.8
	lineStep  = 12
)

// Window draws regions, detections and a HUD over each frame. The hotkeys
// only register while the window has focus.
type Window struct {
	win      *gocv.Window
	enemy    image.Rectangle
	critical image.Rectangle
	classes  []target.Descriptor
}

func NewWindow(title string, enemy, critical image.Rectangle, classes []target.Descriptor) *Window {
	return &Window{
		win:      gocv.NewWindow(title),
		enemy:    enemy,
		critical: critical,
		classes:  classes,
	}
}

func (w *Window) Close() error {
	return w.win.Close()
}

// Render draws on frame and shows it.
func (w *Window) Render(frame gocv.Mat, v bot.View) {
	gocv.Rectangle(&frame, w.enemy, colornames.Lime, 1)
	gocv.Rectangle(&frame, w.critical, colornames.Yellow, 1)

	colors := make(map[target.Class]color.RGBA, len(w.classes))
	for _, d := range w.classes {
		colors[d.Class] = d.Color
	}
	counts := make(map[target.Class]int)
	for _, d := range v.Ranked {
		counts[d.Class]++
		col, ok := colors[d.Class]
		if !ok {
			col = colornames.White
		}
		gocv.Rectangle(&frame, d.Box, col, 1)
	}
	if v.Target != nil {
		gocv.Circle(&frame, v.Target.Aim(), 3, colornames.Red, -1)
	}

	w.drawHUD(&frame, v, counts)
	w.win.IMShow(frame)
}

func (w *Window) drawHUD(frame *gocv.Mat, v bot.View, counts map[target.Class]int) {
	top := frame.Rows() - 120
	gocv.Rectangle(frame, image.Rect(0, top, frame.Cols(), frame.Rows()), color.RGBA{200, 200, 200, 0}, -1)

	y := top + 20
	for _, d := range w.classes {
		text := fmt.Sprintf("%s: %d", d.Class, counts[d.Class])
		gocv.PutText(frame, text, image.Pt(10, y), gocv.FontHersheyPlain, fontScale, d.Color, 1)
		y += lineStep
	}

	y = top + 20
	for _, line := range []string{
		fmt.Sprintf("Shots fired: %d", v.Shots),
		fmt.Sprintf("Shooting (1): %s", onOff(v.Shooting)),
		fmt.Sprintf("Hold mouse button (2): %s", onOff(v.Hold)),
	} {
		gocv.PutText(frame, line, image.Pt(150, y), gocv.FontHersheyPlain, fontScale, colornames.Black, 1)
		y += lineStep
	}

	if v.Reloading {
		gocv.PutText(frame, "Reloading", image.Pt(310, top+20), gocv.FontHersheyPlain, fontScale, colornames.Darkred, 1)
	}
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

// Poll pumps the window's events and maps the pressed key to an input.
func (w *Window) Poll() bot.Input {
	return KeyInput(w.win.WaitKey(1))
}

// KeyInput maps a key code returned by WaitKey.
func KeyInput(key int) bot.Input {
	switch key & 0xFF {
	case KeyEscape:
		return bot.InputQuit
	case KeyShooting:
		return bot.InputToggleShooting
	case KeyHold:
		return bot.InputToggleHold
	}
	return bot.InputNone
}

// Headless renders nothing and never reports input.
type Headless struct{}

func (Headless) Render(gocv.Mat, bot.View) {}

func (Headless) Poll() bot.Input { return bot.InputNone }
