package main

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
	"github.com/lkarlslund/stormbot/internal/config"
	"gocv.io/x/gocv"
)

// source is a frame source that also knows where the game window sits on
// screen.
type source interface {
	Capture() (gocv.Mat, error)
	Origin() image.Point
}

func openSource(cfg *config.Config) (source, error) {
	if cfg.Capture.Source == "window" {
		w, err := openWindow(cfg.Capture.WindowTitle, cfg.Window.Rectangle())
		if err != nil {
			return nil, err
		}
		return w, nil
	}
	s, err := openScreen(cfg.Capture.Monitor, cfg.Window.Rectangle())
	if err != nil {
		return nil, err
	}
	return s, nil
}

// screenSource grabs a fixed rectangle of the desktop.
type screenSource struct {
	rect image.Rectangle
}

func openScreen(monitor int, window image.Rectangle) (*screenSource, error) {
	n := screenshot.NumActiveDisplays()
	if monitor < 0 || monitor >= n {
		return nil, fmt.Errorf("monitor %d not found, %d active", monitor, n)
	}
	bounds := screenshot.GetDisplayBounds(monitor)
	return &screenSource{rect: window.Add(bounds.Min)}, nil
}

func (s *screenSource) Capture() (gocv.Mat, error) {
	img, err := screenshot.CaptureRect(s.rect)
	if err != nil {
		return gocv.Mat{}, err
	}
	return gocv.ImageToMatRGB(img)
}

func (s *screenSource) Origin() image.Point {
	return s.rect.Min
}
