package game

import (
	"math/rand"
	"time"
)

// Rand is the engine's single source of randomness (shuffles, medic picks,
// AI choices). *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a seeded source. A zero seed uses the current time.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
