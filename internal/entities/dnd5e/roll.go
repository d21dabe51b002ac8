package dnd5e

import (
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// RollType identifies what a roll was made for
type RollType string

// Roll types
const (
	RollTypeAbilityCheck RollType = "ability-check"
	RollTypeSavingThrow  RollType = "saving-throw"
	RollTypeSkillCheck   RollType = "skill-check"
	RollTypeAttack       RollType = "attack"
	RollTypeDamage       RollType = "damage"
	RollTypeHealing      RollType = "healing"
	RollTypeCustom       RollType = "custom"
)

// RollTypes lists every roll type in display order
var RollTypes = []RollType{
	RollTypeAbilityCheck,
	RollTypeSavingThrow,
	RollTypeSkillCheck,
	RollTypeAttack,
	RollTypeDamage,
	RollTypeHealing,
	RollTypeCustom,
}

// Valid reports whether t is one of the known roll types
func (t RollType) Valid() bool {
	for _, known := range RollTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsD20 reports whether the roll is a single d20 plus a modifier
func (t RollType) IsD20() bool {
	switch t {
	case RollTypeAbilityCheck, RollTypeSavingThrow, RollTypeSkillCheck, RollTypeAttack:
		return true
	default:
		return false
	}
}

// RollResult is the record of one executed roll.
//
// Invariant: Total == sum(Rolls) + Modifier. Results are created by the roll
// factory and treated as values afterwards; nothing in the service edits one.
type RollResult struct {
	ID        string    `json:"id"`
	Type      RollType  `json:"type"`
	Name      string    `json:"name"`
	Formula   string    `json:"formula"`
	Rolls     []int     `json:"rolls"`
	Modifier  int       `json:"modifier"`
	Total     int       `json:"total"`
	Breakdown string    `json:"breakdown"`
	Timestamp time.Time `json:"timestamp"`
}

// DiceTotal returns the sum of the individual dice
func (r RollResult) DiceTotal() int {
	sum := 0
	for _, d := range r.Rolls {
		sum += d
	}
	return sum
}

const (
	// EntityTypeRoll is the rpg-toolkit entity type reported by SharedRollResult
	EntityTypeRoll = "roll"

	// EventRollShared is published on the event bus for every roll added to the shared log
	EventRollShared = "roll.shared"
)

// SharedRollResult is a roll broadcast to every client watching the table
type SharedRollResult struct {
	RollResult
	CharacterName string `json:"characterName"`
}

var _ core.Entity = (*SharedRollResult)(nil)

// GetID returns the roll ID
func (r *SharedRollResult) GetID() string {
	return r.ID
}

// GetType returns the entity type for rpg-toolkit
func (r *SharedRollResult) GetType() string {
	return EntityTypeRoll
}

// RollHistory is the bounded list of a character's recent rolls, newest first
type RollHistory struct {
	CharacterName string       `json:"characterName"`
	Rolls         []RollResult `json:"rolls"`
	UpdatedAt     time.Time    `json:"updatedAt"`
	ExpiresAt     time.Time    `json:"expiresAt"`
}
