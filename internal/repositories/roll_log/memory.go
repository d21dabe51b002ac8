package rolllog

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
)

type memoryRepository struct {
	mu    sync.RWMutex
	rolls []dnd5e.SharedRollResult
}

// NewMemoryRepository creates a process-local roll log
func NewMemoryRepository() Repository {
	return &memoryRepository{
		rolls: make([]dnd5e.SharedRollResult, 0, MaxRolls),
	}
}

var _ Repository = (*memoryRepository)(nil)

func (r *memoryRepository) Append(_ context.Context, input AppendInput) error {
	if err := validateRoll(input.Roll); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.rolls = append([]dnd5e.SharedRollResult{input.Roll}, r.rolls...)
	if len(r.rolls) > MaxRolls {
		r.rolls = r.rolls[:MaxRolls]
	}
	return nil
}

func (r *memoryRepository) Query(_ context.Context, input QueryInput) (*QueryOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]dnd5e.SharedRollResult, 0, len(r.rolls))
	for _, roll := range r.rolls {
		if matches(roll, input.Since) {
			out = append(out, roll)
		}
	}
	return &QueryOutput{Rolls: out}, nil
}
