package engine

import "math/rand"

// RandSource is the randomness boundary for read-replica selection (spec.md §9
// design note), injectable so tests can make selection deterministic.
type RandSource interface {
	Intn(n int) int
}

// DefaultRandSource wraps the top-level math/rand functions.
type DefaultRandSource struct{}

func (DefaultRandSource) Intn(n int) int { return rand.Intn(n) }
