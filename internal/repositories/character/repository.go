// Package character provides the interface for saved character sheets
package character

//go:generate mockgen -destination=mock/mock_repository.go -package=charactermock github.com/KirkDiggler/rpg-sheet/internal/repositories/character Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
)

// Repository defines the interface for character sheet persistence.
// Sheets are keyed by name, matched case-insensitively.
type Repository interface {
	// Save creates or replaces a sheet
	// Returns errors.InvalidArgument for a nil sheet or empty name
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Get retrieves a sheet by name
	// Returns errors.InvalidArgument for an empty name
	// Returns errors.NotFound if no sheet is saved under the name
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes a sheet by name
	// Returns errors.InvalidArgument for an empty name
	// Returns errors.NotFound if no sheet is saved under the name
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// List returns the saved sheet names, sorted
	// Returns errors.Internal for storage failures
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}

// SaveInput defines the input for saving a sheet
type SaveInput struct {
	Character *dnd5e.Character
}

// SaveOutput defines the output for saving a sheet
type SaveOutput struct {
	Character *dnd5e.Character
	// Created is false when an existing sheet was replaced
	Created bool
}

// GetInput defines the input for getting a sheet
type GetInput struct {
	Name string
}

// GetOutput defines the output for getting a sheet
type GetOutput struct {
	Character *dnd5e.Character
}

// DeleteInput defines the input for deleting a sheet
type DeleteInput struct {
	Name string
}

// DeleteOutput defines the output for deleting a sheet
type DeleteOutput struct {
	// Empty for now, can be extended later
}

// ListInput defines the input for listing sheets
type ListInput struct{}

// ListOutput defines the output for listing sheets
type ListOutput struct {
	Names []string
}
