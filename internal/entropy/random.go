// Package entropy provides the simulation's random source. Every
// stochastic decision flows through one seeded Source so a fixed seed
// reproduces the same sequence of ticks.
package entropy

import "math/rand"

// Source is a seeded pseudo-random generator owned by one simulation
// context. It is not safe for concurrent use; the engine is single-threaded.
type Source struct {
	rng *rand.Rand
}

// NewSource creates a source from a seed.
func NewSource(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Float returns a random float64 in [0, 1).
func (s *Source) Float() float64 {
	return s.rng.Float64()
}

// Intn returns a random int in [0, n).
func (s *Source) Intn(n int) int {
	return s.rng.Intn(n)
}

// Between returns a uniform random float64 in [lo, hi).
func (s *Source) Between(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// Chance returns true with probability p.
func (s *Source) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.rng.Float64() < p
}
