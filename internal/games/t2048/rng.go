package t2048

import (
	"math/rand/v2"
	"time"
)

// Source is the randomness a Board draws from when spawning tiles.
// *rand.Rand from math/rand/v2 satisfies it; tests can substitute a stub.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// NewSource returns a seeded PCG generator.
// A zero seed is replaced with the current time.
func NewSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}
