package reorder

import (
	"math/rand/v2"
	"sync"
)

// Rand is the randomness the Mock policy draws from. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// globalRand draws from the process-wide math/rand/v2 source, which is safe
// for concurrent use.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

// lockedRand serializes access to a caller-supplied source so one seeded
// generator can back concurrent batches.
type lockedRand struct {
	mu  sync.Mutex
	src Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}

const (
	mockOrderChance = 0.7 // draws above this place an order
	mockMaxSteps    = 41  // quantities 0, 10, ..., 400
	mockStep        = 10
)

// mockOrders gives each period a 30% chance of an order of a random
// multiple of 10 in [0, 400]. It ignores everything but the horizon.
func mockOrders(_ Scenario, horizon int, rng Rand) []int {
	orders := make([]int, horizon+1)
	for w := range orders {
		if rng.Float64() > mockOrderChance {
			orders[w] = rng.IntN(mockMaxSteps) * mockStep
		}
	}
	return orders
}
