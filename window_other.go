//go:build !windows

package main

import (
	"errors"
	"image"
)

func openWindow(title string, game image.Rectangle) (source, error) {
	return nil, errors.New("window capture is only supported on Windows")
}
