package target

import (
	"image"
	"math"
	"sort"
)

// Unranked is the priority of classes missing from a priority table. It
// sorts after every ranked class.
const Unranked = 99

// Priorities maps a class to its rank; lower ranks are shot first.
type Priorities map[Class]int

// Of returns the rank of c, or Unranked.
func (p Priorities) Of(c Class) int {
	if r, ok := p[c]; ok {
		return r
	}
	return Unranked
}

// DefaultPriorities ranks the heavy units first. Soldiers are left unranked.
func DefaultPriorities() Priorities {
	return Priorities{
		Robot:         0,
		Tank:          1,
		Apache:        2,
		FlyingSoldier: 3,
		FlameThrower:  4,
		Jeep:          5,
		Gunner:        6,
	}
}

// Distance is the manhattan distance from the center of d to objective.
func Distance(d Detection, objective image.Point) float64 {
	x, y := d.Center()
	return math.Abs(x-float64(objective.X)) + math.Abs(y-float64(objective.Y))
}

// Rank returns a copy of ds ordered by class priority, then by distance to
// objective. Ties keep their detection order.
func Rank(ds []Detection, objective image.Point, p Priorities) []Detection {
	ranked := make([]Detection, len(ds))
	copy(ranked, ds)
	sort.SliceStable(ranked, func(i, j int) bool {
		pi, pj := p.Of(ranked[i].Class), p.Of(ranked[j].Class)
		if pi != pj {
			return pi < pj
		}
		return Distance(ranked[i], objective) < Distance(ranked[j], objective)
	})
	return ranked
}
