package main

import (
	"errors"
	"image"
	"log/slog"
	"unsafe"

	"github.com/lkarlslund/stormbot/internal/actuate"
	"github.com/lkarlslund/stormbot/internal/config"
	"github.com/lxn/win"
)

func newPointer(cfg *config.Config, src source, logger *slog.Logger) (actuate.Pointer, error) {
	if cfg.Capture.Pointer == "message" {
		w, ok := src.(*windowSource)
		if !ok {
			return nil, errors.New("message pointer needs a window source")
		}
		logger.Debug("Posting mouse messages to the game window", "hwnd", w.hwnd)
		return &messagePointer{hwnd: w.hwnd, origin: w.origin.Sub(w.rect.Min)}, nil
	}
	logger.Debug("Injecting mouse input through the cursor")
	return inputPointer{}, nil
}

// inputPointer moves the real cursor and synthesizes button events.
type inputPointer struct{}

func (inputPointer) Click(p image.Point) {
	win.SetCursorPos(int32(p.X), int32(p.Y))
	sendMouse(win.MOUSEEVENTF_LEFTDOWN, win.MOUSEEVENTF_LEFTUP)
}

func (inputPointer) PressAndHold(p image.Point) {
	win.SetCursorPos(int32(p.X), int32(p.Y))
	sendMouse(win.MOUSEEVENTF_LEFTDOWN)
}

func (inputPointer) MoveTo(p image.Point) {
	win.SetCursorPos(int32(p.X), int32(p.Y))
}

func (inputPointer) Release() {
	sendMouse(win.MOUSEEVENTF_LEFTUP)
}

func sendMouse(flags ...uint32) {
	inputs := make([]win.MOUSE_INPUT, len(flags))
	for i, f := range flags {
		inputs[i] = win.MOUSE_INPUT{
			Type: win.INPUT_MOUSE,
			Mi:   win.MOUSEINPUT{DwFlags: f},
		}
	}
	win.SendInput(uint32(len(inputs)), unsafe.Pointer(&inputs[0]), int32(unsafe.Sizeof(inputs[0])))
}

// messagePointer posts mouse messages straight to the game window, so the
// real cursor stays free. Not every game accepts synthesized messages.
type messagePointer struct {
	hwnd win.HWND

	// origin is the screen position of the client area's top-left.
	origin image.Point

	last image.Point
}

func (m *messagePointer) pos(p image.Point) uintptr {
	c := p.Sub(m.origin)
	m.last = c
	return lParam(c)
}

func (m *messagePointer) Click(p image.Point) {
	pos := m.pos(p)
	win.SendMessage(m.hwnd, win.WM_LBUTTONDOWN, win.VK_LBUTTON, pos)
	win.SendMessage(m.hwnd, win.WM_LBUTTONUP, 0, pos)
}

func (m *messagePointer) PressAndHold(p image.Point) {
	win.SendMessage(m.hwnd, win.WM_LBUTTONDOWN, win.VK_LBUTTON, m.pos(p))
}

func (m *messagePointer) MoveTo(p image.Point) {
	win.SendMessage(m.hwnd, win.WM_MOUSEMOVE, win.VK_LBUTTON, m.pos(p))
}

func (m *messagePointer) Release() {
	win.SendMessage(m.hwnd, win.WM_LBUTTONUP, 0, lParam(m.last))
}
