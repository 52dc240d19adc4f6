package target

import "image"

// Detection is one object found in one frame. Coordinates are relative to
// the game window. Detections carry no identity between frames.
type Detection struct {
	Class Class
	Box   image.Rectangle
}

// Center returns the exact center of the hit box.
func (d Detection) Center() (x, y float64) {
	return float64(d.Box.Min.X) + float64(d.Box.Dx())/2,
		float64(d.Box.Min.Y) + float64(d.Box.Dy())/2
}

// Aim returns the integer point to shoot at, the box center rounded down.
func (d Detection) Aim() image.Point {
	return image.Pt(d.Box.Min.X+d.Box.Dx()/2, d.Box.Min.Y+d.Box.Dy()/2)
}
