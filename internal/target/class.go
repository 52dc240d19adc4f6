// Package target holds the closed set of enemy classes the bot knows about,
// the per-frame detections produced for them, and the ranking and selection
// rules that turn a frame's detections into one target.
package target

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/colornames"
)

// Class is one of the enemy types that can appear on the field.
type Class int

const (
	Soldier Class = iota
	Gunner
	Jeep
	FlyingSoldier
	FlameThrower
	Apache
	Tank
	Robot

	numClasses
)

var classNames = [numClasses]string{
	Soldier:       "soldier",
	Gunner:        "gunner",
	Jeep:          "jeep",
	FlyingSoldier: "flying_soldier",
	FlameThrower:  "flame_thrower",
	Apache:        "apache",
	Tank:          "tank",
	Robot:         "robot",
}

func (c Class) String() string {
	if c < 0 || c >= numClasses {
		return fmt.Sprintf("class(%d)", int(c))
	}
	return classNames[c]
}

// Valid reports whether c is one of the known classes.
func (c Class) Valid() bool {
	return c >= 0 && c < numClasses
}

// ParseClass maps a configuration name back to its class.
func ParseClass(name string) (Class, error) {
	for i, n := range classNames {
		if n == name {
			return Class(i), nil
		}
	}
	return 0, fmt.Errorf("unknown enemy class %q", name)
}

// Classes returns every class in declaration order.
func Classes() []Class {
	cs := make([]Class, numClasses)
	for i := range cs {
		cs[i] = Class(i)
	}
	return cs
}

// Descriptor is the immutable appearance and geometry of one class.
type Descriptor struct {
	Class Class
	Color color.RGBA

	// Template is the file name of the reference image, relative to the
	// template directory.
	Template string

	// Size is the hit box width and height.
	Size image.Point

	// Anchor is subtracted from a template hit to get the hit box top-left.
	Anchor image.Point

	Threshold float32
}

// Box returns the hit box for a template hit at p.
func (d Descriptor) Box(p image.Point) image.Rectangle {
	tl := p.Sub(d.Anchor)
	return image.Rectangle{Min: tl, Max: tl.Add(d.Size)}
}

// Descriptors returns the built-in descriptor of every class, in class order.
func Descriptors() []Descriptor {
	return []Descriptor{
		{Class: Soldier, Color: colornames.Limegreen, Template: "soldier_template.png", Size: image.Pt(10, 28), Threshold: 0.85},
		{Class: Gunner, Color: colornames.Yellow, Template: "gunner_template.png", Size: image.Pt(12, 28), Anchor: image.Pt(2, 0), Threshold: 0.85},
		{Class: Jeep, Color: colornames.Orange, Template: "jeep_template.png", Size: image.Pt(77, 35), Anchor: image.Pt(52, 12), Threshold: 0.8},
		{Class: FlyingSoldier, Color: colornames.Cyan, Template: "flyer_template.png", Size: image.Pt(14, 38), Threshold: 0.8},
		{Class: FlameThrower, Color: colornames.Darkorange, Template: "flame_thrower_template.png", Size: image.Pt(22, 42), Anchor: image.Pt(10, 0), Threshold: 0.75},
		{Class: Apache, Color: colornames.Blue, Template: "apache_template.png", Size: image.Pt(120, 30), Anchor: image.Pt(80, 15), Threshold: 0.96},
		{Class: Tank, Color: colornames.Red, Template: "tank_template.png", Size: image.Pt(145, 55), Anchor: image.Pt(75, 2), Threshold: 0.86},
		{Class: Robot, Color: colornames.Magenta, Template: "robot_template.png", Size: image.Pt(85, 130), Anchor: image.Pt(20, 8), Threshold: 0.98},
	}
}
