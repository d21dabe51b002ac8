package dnd5e

// Race and class names as the sheet spells them
const (
	RaceHalfOrc = "Half-Orc"

	ClassBarbarian = "Barbarian"
	ClassPaladin   = "Paladin"
	ClassRanger    = "Ranger"
	ClassRogue     = "Rogue"
	ClassWarlock   = "Warlock"
)

// MinLevel and MaxLevel bound a character's total level
const (
	MinLevel = 1
	MaxLevel = 20
)

// SkillAbilities maps each 5e skill to the ability that drives it
var SkillAbilities = map[string]string{
	"acrobatics":      AbilityDexterity,
	"animal handling": AbilityWisdom,
	"arcana":          AbilityIntelligence,
	"athletics":       AbilityStrength,
	"deception":       AbilityCharisma,
	"history":         AbilityIntelligence,
	"insight":         AbilityWisdom,
	"intimidation":    AbilityCharisma,
	"investigation":   AbilityIntelligence,
	"medicine":        AbilityWisdom,
	"nature":          AbilityIntelligence,
	"perception":      AbilityWisdom,
	"performance":     AbilityCharisma,
	"persuasion":      AbilityCharisma,
	"religion":        AbilityIntelligence,
	"sleight of hand": AbilityDexterity,
	"stealth":         AbilityDexterity,
	"survival":        AbilityWisdom,
}

// DamageTypes are the words the formula parser strips from the end of a formula
var DamageTypes = []string{
	"acid",
	"bludgeoning",
	"cold",
	"fire",
	"force",
	"lightning",
	"necrotic",
	"piercing",
	"poison",
	"psychic",
	"radiant",
	"slashing",
	"thunder",
}
