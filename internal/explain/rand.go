package explain

import (
	"math/rand/v2"
	"sync"
)

// Rand is the random source used for hint and literacy selection.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// LockedRand is a Rand safe for concurrent use.
type LockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewLockedRand returns a seeded LockedRand. Equal seeds give equal
// sequences.
func NewLockedRand(seed uint64) *LockedRand {
	return &LockedRand{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *LockedRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}

func (r *LockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

func pick(r Rand, pool []string) string {
	return pool[r.IntN(len(pool))]
}
