package dnd5e

import (
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Ability codes as stored on the sheet
const (
	AbilityStrength     = "str"
	AbilityDexterity    = "dex"
	AbilityConstitution = "con"
	AbilityIntelligence = "int"
	AbilityWisdom       = "wis"
	AbilityCharisma     = "cha"
)

// EntityTypeCharacter is the rpg-toolkit entity type reported by Character
const EntityTypeCharacter = "character"

// AbilityScores holds the six scores as the sheet stores them: free-form
// strings that may be empty or hand-edited.
type AbilityScores struct {
	Strength     string `json:"str"`
	Dexterity    string `json:"dex"`
	Constitution string `json:"con"`
	Intelligence string `json:"int"`
	Wisdom       string `json:"wis"`
	Charisma     string `json:"cha"`
}

// ByCode returns the raw score string for a 3-letter ability code.
// The second return is false for unknown codes.
func (a AbilityScores) ByCode(code string) (string, bool) {
	switch NormalizeAbilityCode(code) {
	case AbilityStrength:
		return a.Strength, true
	case AbilityDexterity:
		return a.Dexterity, true
	case AbilityConstitution:
		return a.Constitution, true
	case AbilityIntelligence:
		return a.Intelligence, true
	case AbilityWisdom:
		return a.Wisdom, true
	case AbilityCharisma:
		return a.Charisma, true
	default:
		return "", false
	}
}

// NormalizeAbilityCode lowercases a code and maps full names such as
// "Wisdom" onto their 3-letter form.
func NormalizeAbilityCode(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if len(code) > 3 {
		code = code[:3]
	}
	return code
}

// CharacterClass is one entry of a multiclass character
type CharacterClass struct {
	Name        string `json:"name"`
	Subclass    string `json:"subclass,omitempty"`
	Level       int    `json:"level"`
	Description string `json:"description,omitempty"`
}

// Proficiency is a skill or saving throw row on the sheet. Value, when set,
// is the number the player wrote in and takes precedence over computation.
type Proficiency struct {
	Proficient bool   `json:"proficient"`
	Value      string `json:"value,omitempty"`
}

// Character is the subset of the sheet the roll engine reads
type Character struct {
	Name                string                 `json:"name"`
	Race                string                 `json:"race,omitempty"`
	Level               string                 `json:"level,omitempty"`
	Classes             []CharacterClass       `json:"classes,omitempty"`
	AbilityScores       AbilityScores          `json:"abilityScores"`
	SpellcastingAbility string                 `json:"spellcastingAbility,omitempty"`
	Skills              map[string]Proficiency `json:"skills,omitempty"`
	SavingThrows        map[string]Proficiency `json:"savingThrows,omitempty"`
	Features            []string               `json:"features,omitempty"`
	Spells              []string               `json:"spells,omitempty"`
}

var _ core.Entity = (*Character)(nil)

// GetID returns the character name, which is how the sheet identifies it
func (c *Character) GetID() string {
	return c.Name
}

// GetType returns the entity type for rpg-toolkit
func (c *Character) GetType() string {
	return EntityTypeCharacter
}

// PrimaryClass returns the first class name, or "" for a classless sheet
func (c *Character) PrimaryClass() string {
	if len(c.Classes) == 0 {
		return ""
	}
	return c.Classes[0].Name
}

// ClassLevel returns the level the character has in the named class,
// matched case-insensitively. Zero means the character lacks the class.
func (c *Character) ClassLevel(name string) int {
	name = strings.ToLower(name)
	total := 0
	for _, class := range c.Classes {
		if strings.Contains(strings.ToLower(class.Name), name) {
			total += class.Level
		}
	}
	return total
}

// NormalizeSkillName folds "Sleight of Hand", "sleightOfHand" and
// "sleight_of_hand" onto the same key.
func NormalizeSkillName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return -1
		}
	}, name)
}
