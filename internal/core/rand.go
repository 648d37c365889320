package core

import "math/rand"

// RNG is the single random source of a simulation.
// Every stochastic decision draws from it so a run is reproducible from its seed.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a generator seeded with seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// Float64 returns a value in [0, 1).
func (g *RNG) Float64() float64 {
	return g.r.Float64()
}

// Uniform returns a value drawn uniformly from [min, max].
// When max < min the bounds are used as given, yielding a value in [max, min].
func (g *RNG) Uniform(min, max float64) float64 {
	return g.r.Float64()*(max-min) + min
}

// Chance reports true with probability p. Chance(0) is never true and
// Chance(1) always is.
func (g *RNG) Chance(p float64) bool {
	return g.r.Float64() < p
}
