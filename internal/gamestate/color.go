// Package gamestate reads the game's own HUD from fixed probe pixels to
// know when the gun is reloading and when a menu covers the field.
package gamestate

import "image"

// BGR is a pixel in frame channel order.
type BGR [3]uint8

// Frame gives access to pixels of a captured frame. Coordinates are
// relative to the game window.
type Frame interface {
	BGR(x, y int) BGR
}

// Matches reports whether every channel of c is within tol of ref.
func Matches(c, ref BGR, tol uint8) bool {
	for i := range c {
		d := int(c[i]) - int(ref[i])
		if d < 0 {
			d = -d
		}
		if d > int(tol) {
			return false
		}
	}
	return true
}

func sample(f Frame, p image.Point) BGR {
	return f.BGR(p.X, p.Y)
}
