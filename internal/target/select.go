package target

import "math/rand"

// DefaultPool is the number of top ranked targets a Selector picks from.
const DefaultPool = 4

// Selector picks a random target among the best ranked ones. Spreading
// shots over a small pool keeps a single false positive from soaking up
// every shot. A Selector is not safe for concurrent use.
type Selector struct {
	pool int
	rnd  *rand.Rand
}

// NewSelector returns a selector drawing from the top pool entries. A pool
// below one is treated as one.
func NewSelector(pool int, src rand.Source) *Selector {
	if pool < 1 {
		pool = 1
	}
	return &Selector{pool: pool, rnd: rand.New(src)}
}

// Pool returns the pool size.
func (s *Selector) Pool() int {
	return s.pool
}

// Select returns one of the first Pool entries of ranked, chosen uniformly.
func (s *Selector) Select(ranked []Detection) (Detection, bool) {
	if len(ranked) == 0 {
		return Detection{}, false
	}
	n := min(s.pool, len(ranked))
	if n == 1 {
		return ranked[0], true
	}
	return ranked[s.rnd.Intn(n)], true
}
