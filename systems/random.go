package systems

import "math/rand/v2"

// RandomSource draws uniform integers in [0, n)
// *rand.Rand satisfies it; tests inject scripted sources
type RandomSource interface {
	IntN(n int) int
}

// NewRandom returns a PCG-backed source; equal seeds replay equal runs
func NewRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
