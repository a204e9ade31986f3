package util

import (
	"math/rand"
	"time"
)

// Random is the subset of *rand.Rand the run depends on. Tests pass a seeded source.
type Random interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRandom returns a source seeded from the wall clock.
func NewRandom() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// GetRandomInt returns a random integer in range [min, max].
func GetRandomInt(r Random, min int, max int) int {
	return r.Intn(max-min+1) + min
}
