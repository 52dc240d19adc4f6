package vision

import "image"

// Suppress collapses clustered hits into one per object. Points are taken in
// order and a point is dropped when an already kept point lies closer than
// half of size on both axes.
//
// This is not real non-max suppression: scores are never compared, so the
// first hit of a cluster survives rather than the best one. The correlation
// peak of one enemy is narrow enough at the thresholds in use that the
// difference does not matter.
func Suppress(points []image.Point, size image.Point) []image.Point {
	hw, hh := size.X/2, size.Y/2
	var kept []image.Point
next:
	for _, p := range points {
		for _, k := range kept {
			if abs(p.X-k.X) < hw && abs(p.Y-k.Y) < hh {
				continue next
			}
		}
		kept = append(kept, p)
	}
	return kept
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
