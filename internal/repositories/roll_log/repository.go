// Package rolllog stores the shared table log of recent rolls that every
// sheet client polls.
package rolllog

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=rolllogmock github.com/KirkDiggler/rpg-sheet/internal/repositories/roll_log Repository

// MaxRolls is how many rolls the log keeps; older rolls are evicted first
const MaxRolls = 100

// AppendInput contains the roll to add to the log
type AppendInput struct {
	Roll dnd5e.SharedRollResult
}

// QueryInput filters the log. A zero Since returns every retained roll.
type QueryInput struct {
	Since time.Time
}

// QueryOutput holds matching rolls, newest first
type QueryOutput struct {
	Rolls []dnd5e.SharedRollResult
}

// Repository is the shared roll log
type Repository interface {
	// Append adds a roll to the front of the log, evicting beyond MaxRolls
	Append(ctx context.Context, input AppendInput) error

	// Query returns rolls strictly newer than input.Since
	Query(ctx context.Context, input QueryInput) (*QueryOutput, error)
}

func validateRoll(roll dnd5e.SharedRollResult) error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("id", roll.ID, vb)
	if roll.Timestamp.IsZero() {
		vb.RequiredField("timestamp")
	}

	return vb.Build()
}

func matches(roll dnd5e.SharedRollResult, since time.Time) bool {
	return since.IsZero() || roll.Timestamp.After(since)
}
