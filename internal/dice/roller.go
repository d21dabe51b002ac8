package dice

import (
	"math/rand/v2"
	"sync"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

// Roller draws uniform dice from a non-cryptographic source. It is safe for
// concurrent use.
type Roller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

var _ toolkitdice.Roller = (*Roller)(nil)

// NewRoller returns a roller seeded from the runtime's random source.
func NewRoller() *Roller {
	return NewSeededRoller(rand.Uint64(), rand.Uint64())
}

// NewSeededRoller returns a roller whose draws are reproducible for a given seed.
func NewSeededRoller(seed1, seed2 uint64) *Roller {
	return &Roller{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// RollDie returns a value in [1, sides].
//
// Precondition: sides > 0. Panics otherwise.
func (r *Roller) RollDie(sides int) int {
	if sides <= 0 {
		panic("dice: RollDie called with sides <= 0")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(sides) + 1
}

// Roll returns a value in [1, size].
func (r *Roller) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, errors.InvalidArgumentf("die size must be positive: %d", size)
	}
	return r.RollDie(size), nil
}

// RollN returns count draws in draw order.
func (r *Roller) RollN(count, size int) ([]int, error) {
	if count <= 0 {
		return nil, errors.InvalidArgumentf("dice count must be positive: %d", count)
	}
	if size <= 0 {
		return nil, errors.InvalidArgumentf("die size must be positive: %d", size)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	results := make([]int, count)
	for i := range results {
		results[i] = r.rng.IntN(size) + 1
	}
	return results, nil
}
