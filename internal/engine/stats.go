// Package engine computes derived character statistics and the conditional
// bonus damage a character's class, race and features grant. Everything here
// is pure.
package engine

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

// DefaultAbilityScore is used for missing or unreadable scores
const DefaultAbilityScore = 10

var skillAbilities = func() map[string]string {
	m := make(map[string]string, len(dnd5e.SkillAbilities))
	for skill, ability := range dnd5e.SkillAbilities {
		m[dnd5e.NormalizeSkillName(skill)] = ability
	}
	return m
}()

// AbilityModifier returns floor((score-10)/2)
func AbilityModifier(score int) int {
	return floorDiv(score-10, 2)
}

// ProficiencyBonus returns the bonus for a total level, clamping the level
// to 1-20 first.
func ProficiencyBonus(totalLevel int) int {
	level := clampLevel(totalLevel)
	return 2 + (level-1)/4
}

// SpellSaveDC returns 8 + ability modifier + proficiency bonus
func SpellSaveDC(abilityModifier, proficiencyBonus int) int {
	return 8 + abilityModifier + proficiencyBonus
}

// SpellAttackBonus returns ability modifier + proficiency bonus
func SpellAttackBonus(abilityModifier, proficiencyBonus int) int {
	return abilityModifier + proficiencyBonus
}

// TotalLevel sums class levels, falling back to the legacy level string when
// the character has no classes. The result is never below 1.
func TotalLevel(character *dnd5e.Character) int {
	if character == nil {
		return dnd5e.MinLevel
	}

	if len(character.Classes) > 0 {
		total := 0
		for _, class := range character.Classes {
			total += class.Level
		}
		return max(total, dnd5e.MinLevel)
	}

	if level, ok := leadingInt(character.Level); ok {
		return max(level, dnd5e.MinLevel)
	}
	return dnd5e.MinLevel
}

// AbilityScore returns the numeric score for an ability code or full name.
// Unknown abilities and unreadable scores return 10.
func AbilityScore(character *dnd5e.Character, ability string) int {
	if character == nil {
		return DefaultAbilityScore
	}
	raw, ok := character.AbilityScores.ByCode(ability)
	if !ok {
		return DefaultAbilityScore
	}
	score, ok := leadingInt(raw)
	if !ok {
		return DefaultAbilityScore
	}
	return score
}

// SpellcastingAbilityScore returns the score of the character's spellcasting
// ability, or 10 when none is set.
func SpellcastingAbilityScore(character *dnd5e.Character) int {
	if character == nil || character.SpellcastingAbility == "" {
		return DefaultAbilityScore
	}
	return AbilityScore(character, character.SpellcastingAbility)
}

// SpellcastingModifier is the ability modifier of the spellcasting ability
func SpellcastingModifier(character *dnd5e.Character) int {
	return AbilityModifier(SpellcastingAbilityScore(character))
}

// CharacterSpellSaveDC computes the spell save DC for a character
func CharacterSpellSaveDC(character *dnd5e.Character) int {
	return SpellSaveDC(SpellcastingModifier(character), ProficiencyBonus(TotalLevel(character)))
}

// CharacterSpellAttackBonus computes the spell attack bonus for a character
func CharacterSpellAttackBonus(character *dnd5e.Character) int {
	return SpellAttackBonus(SpellcastingModifier(character), ProficiencyBonus(TotalLevel(character)))
}

// AbilityCheckModifier is the plain ability modifier for a check
func AbilityCheckModifier(character *dnd5e.Character, ability string) (int, error) {
	if !knownAbility(ability) {
		return 0, errors.InvalidArgumentf("unknown ability: %q", ability)
	}
	return AbilityModifier(AbilityScore(character, ability)), nil
}

// SkillModifier returns the modifier for a skill check. A value written on the
// sheet wins; otherwise it is the ability modifier plus proficiency when
// proficient.
func SkillModifier(character *dnd5e.Character, skill string) (int, error) {
	key := dnd5e.NormalizeSkillName(skill)
	ability, ok := skillAbilities[key]
	if !ok {
		return 0, errors.InvalidArgumentf("unknown skill: %q", skill)
	}

	var row dnd5e.Proficiency
	if character != nil {
		for name, p := range character.Skills {
			if dnd5e.NormalizeSkillName(name) == key {
				row = p
				break
			}
		}
	}

	return proficiencyModifier(character, ability, row), nil
}

// SavingThrowModifier returns the modifier for a saving throw, following the
// same precedence as SkillModifier.
func SavingThrowModifier(character *dnd5e.Character, ability string) (int, error) {
	if !knownAbility(ability) {
		return 0, errors.InvalidArgumentf("unknown ability: %q", ability)
	}
	code := dnd5e.NormalizeAbilityCode(ability)

	var row dnd5e.Proficiency
	if character != nil {
		for name, p := range character.SavingThrows {
			if dnd5e.NormalizeAbilityCode(name) == code {
				row = p
				break
			}
		}
	}

	return proficiencyModifier(character, code, row), nil
}

func proficiencyModifier(character *dnd5e.Character, ability string, row dnd5e.Proficiency) int {
	if value, ok := signedInt(row.Value); ok {
		return value
	}

	mod := AbilityModifier(AbilityScore(character, ability))
	if row.Proficient {
		mod += ProficiencyBonus(TotalLevel(character))
	}
	return mod
}

func knownAbility(ability string) bool {
	_, ok := dnd5e.AbilityScores{}.ByCode(ability)
	return ok
}

func clampLevel(level int) int {
	return min(max(level, dnd5e.MinLevel), dnd5e.MaxLevel)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// leadingInt parses the digits at the start of s, ignoring surrounding space.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == -1 {
		end = len(s)
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// signedInt parses values such as "+5", "-1" or "3".
func signedInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(s, "+"))
	if err != nil {
		return 0, false
	}
	return n, true
}
