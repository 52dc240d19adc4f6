package main

import "image"

// lParam packs a client point the way mouse messages carry it: x in the low
// word and y in the high word, both truncated to 16 bits.
func lParam(p image.Point) uintptr {
	return uintptr(uint32(uint16(p.Y))<<16 | uint32(uint16(p.X)))
}
