package core

import "math/rand/v2"

// BoolSource supplies random booleans to simulation steps.
type BoolSource interface {
	Bool() bool
}

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Bool returns a random boolean value.
func (r *RNG) Bool() bool {
	return r.r.IntN(2) == 1
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }

// FillRandom sets each cell of g independently with probability density.
// Cells not chosen are left untouched.
func FillRandom(g *BitGrid, r *rand.Rand, density float64) {
	if density <= 0 {
		return
	}
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			if density >= 1 || r.Float64() < density {
				g.Set(x, y, true)
			}
		}
	}
}
