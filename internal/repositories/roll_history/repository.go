// Package rollhistory provides repository interface and types for each
// character's recent rolls
package rollhistory

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=rollhistorymock github.com/KirkDiggler/rpg-sheet/internal/repositories/roll_history Repository

// MaxRolls is how many rolls a character's history keeps
const MaxRolls = 50

// AppendInput contains parameters for recording a roll
type AppendInput struct {
	CharacterName string
	Roll          dnd5e.RollResult
	TTL           time.Duration // How long the history lives after this roll
}

// AppendOutput contains the history after the roll was added
type AppendOutput struct {
	History *dnd5e.RollHistory
}

// GetInput contains parameters for retrieving a history
type GetInput struct {
	CharacterName string
}

// GetOutput contains the result of retrieving a history
type GetOutput struct {
	History *dnd5e.RollHistory
}

// ClearInput contains parameters for clearing a history
type ClearInput struct {
	CharacterName string
}

// ClearOutput contains the result of clearing a history
type ClearOutput struct {
	RollsCleared int32
}

// Repository defines the interface for roll history storage operations
type Repository interface {
	// Append records a roll, keeping the newest MaxRolls
	Append(ctx context.Context, input AppendInput) (*AppendOutput, error)

	// Get retrieves a character's history
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Clear removes a character's history
	Clear(ctx context.Context, input ClearInput) (*ClearOutput, error)
}
