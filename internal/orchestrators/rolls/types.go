package rolls

import (
	"time"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
)

// RollOutput is returned by every single-roll operation
type RollOutput struct {
	Roll dnd5e.RollResult
}

// RollAbilityCheckInput defines the request for an ability check. When
// Modifier is nil it is computed from Character.
type RollAbilityCheckInput struct {
	CharacterName string
	Character     *dnd5e.Character
	Ability       string
	Modifier      *int
}

// RollSavingThrowInput defines the request for a saving throw
type RollSavingThrowInput struct {
	CharacterName string
	Character     *dnd5e.Character
	Ability       string
	Modifier      *int
}

// RollSkillCheckInput defines the request for a skill check
type RollSkillCheckInput struct {
	CharacterName string
	Character     *dnd5e.Character
	Skill         string
	Modifier      *int
}

// RollAttackInput defines the request for a weapon or spell attack roll
type RollAttackInput struct {
	CharacterName string
	Name          string
	AttackBonus   int
}

// RollDamageInput defines the request for a damage roll
type RollDamageInput struct {
	CharacterName string
	Name          string
	Formula       string
	Critical      bool
	// DieSize overrides the formula's die, for variable-damage spells
	DieSize int
	// BonusDice are chosen bonus damage dice; "N extra weapon die" uses
	// the weapon's own die size.
	BonusDice []string
}

// RollHealingInput defines the request for a healing roll. When
// AbilityModifier is nil the character's spellcasting modifier is used.
type RollHealingInput struct {
	CharacterName   string
	Character       *dnd5e.Character
	Name            string
	Formula         string
	ApplyModifier   bool
	AbilityModifier *int
}

// RollCustomInput defines the request for a user-entered formula
type RollCustomInput struct {
	CharacterName string
	Name          string
	Formula       string
}

// RollSpellInput defines the request for casting a damaging spell
type RollSpellInput struct {
	CharacterName string
	Character     *dnd5e.Character
	SpellKey      string
	SlotLevel     int
	// TargetDamaged switches variable-die spells to their larger die
	TargetDamaged bool
	Critical      bool
	// FallbackFormula is rolled when the rules data has no damage entry,
	// as with cantrips that scale by character level.
	FallbackFormula string
}

// RollSpellOutput contains how the spell was resolved and its rolls
type RollSpellOutput struct {
	Config dnd5e.SpellAttackConfig
	// Attack is set for spell attacks
	Attack *dnd5e.RollResult
	// Damage is set when the spell deals damage
	Damage *dnd5e.RollResult
	// SaveDC is set for saving-throw spells
	SaveDC int
}

// ShareRollInput defines a roll posted to the shared table log
type ShareRollInput struct {
	Roll dnd5e.SharedRollResult
}

// ListSharedRollsInput filters the shared log. A zero Since lists everything.
type ListSharedRollsInput struct {
	Since time.Time
}

// ListSharedRollsOutput holds shared rolls, newest first
type ListSharedRollsOutput struct {
	Rolls []dnd5e.SharedRollResult
}

// GetHistoryInput defines the request for a character's history
type GetHistoryInput struct {
	CharacterName string
}

// GetHistoryOutput holds the history; Rolls is empty when none exists
type GetHistoryOutput struct {
	History *dnd5e.RollHistory
}

// ClearHistoryInput defines the request for clearing a history
type ClearHistoryInput struct {
	CharacterName string
}

// ClearHistoryOutput reports how many rolls were removed
type ClearHistoryOutput struct {
	RollsCleared int32
}

// ListBonusDamageInput describes the character to resolve bonus damage for.
// When Character is set, or CharacterName names a saved sheet, its class,
// level, features and race are used.
type ListBonusDamageInput struct {
	CharacterName string
	Character     *dnd5e.Character
	PrimaryClass  string
	TotalLevel    string
	Features      []string
	Race          string
}

// ListBonusDamageOutput holds the applicable features in resolver order
type ListBonusDamageOutput struct {
	Features []dnd5e.BonusDamageFeature
}

// SaveCharacterInput defines a sheet to store under its name
type SaveCharacterInput struct {
	Character *dnd5e.Character
}

// SaveCharacterOutput reports whether the sheet is new
type SaveCharacterOutput struct {
	Character *dnd5e.Character
	Created   bool
}

// GetCharacterInput defines the request for a saved sheet
type GetCharacterInput struct {
	Name string
}

// GetCharacterOutput holds a saved sheet
type GetCharacterOutput struct {
	Character *dnd5e.Character
}

// DeleteCharacterInput defines the sheet to remove
type DeleteCharacterInput struct {
	Name string
}

// ListCharactersOutput holds the saved sheet names, sorted
type ListCharactersOutput struct {
	Names []string
}
