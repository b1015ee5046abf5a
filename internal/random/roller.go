package random

import (
	"math/rand/v2"
)

// RngAlgo names the generator behind Roller for replay metadata.
const RngAlgo = "pcg64"

// pcgIncrement is the fixed second PCG word; only the seed varies.
const pcgIncrement = 0xda3e39cb94b95bdb

// Roller samples die faces from a seeded PCG source. It is not safe for
// concurrent use; create one per request.
type Roller struct {
	rng   *rand.Rand
	seed  int64
	rolls int
}

// NewRoller returns a roller seeded with seed.
func NewRoller(seed int64) *Roller {
	return &Roller{
		rng:  rand.New(rand.NewPCG(uint64(seed), pcgIncrement)),
		seed: seed,
	}
}

// Roll returns a face in [1, sides]. Sides below 1 yield 1.
func (r *Roller) Roll(sides int64) int64 {
	r.rolls++
	if sides <= 1 {
		return 1
	}
	return r.rng.Int64N(sides) + 1
}

// Seed returns the seed the roller was created with.
func (r *Roller) Seed() int64 {
	return r.seed
}

// Rolls returns how many faces have been sampled.
func (r *Roller) Rolls() int {
	return r.rolls
}
