package engine

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
)

// Bonus damage feature names
const (
	FeatureSneakAttack         = "Sneak Attack"
	FeatureDivineSmite         = "Divine Smite"
	FeatureImprovedDivineSmite = "Improved Divine Smite"
	FeatureColossusSlayer      = "Colossus Slayer"
	FeatureDreadAmbusher       = "Dread Ambusher"
	FeaturePlanarWarrior       = "Planar Warrior"
	FeatureEldritchSmite       = "Eldritch Smite"
	FeatureBrutalCritical      = "Brutal Critical"
	FeatureSavageAttacks       = "Savage Attacks"
)

const (
	weaponDieSuffix = " extra weapon die"
	maxSmiteDice    = 5
)

// ResolveBonusDamage lists the conditional bonus damage available to a
// character. Matching is case-insensitive substring containment and the
// result order is fixed: rogue, paladin, ranger, warlock, barbarian, race.
func ResolveBonusDamage(primaryClass, totalLevel string, features []string, race string) []dnd5e.BonusDamageFeature {
	level, ok := leadingInt(totalLevel)
	if !ok || level < dnd5e.MinLevel {
		level = dnd5e.MinLevel
	}

	r := &resolver{
		class:    strings.ToLower(primaryClass),
		race:     strings.ToLower(race),
		features: make([]string, 0, len(features)),
		seen:     make(map[string]bool),
	}
	for _, f := range features {
		r.features = append(r.features, strings.ToLower(f))
	}

	if r.isClass(dnd5e.ClassRogue) {
		r.add(dnd5e.BonusDamageFeature{
			Name:      FeatureSneakAttack,
			Label:     fmt.Sprintf("%s (%dd6)", FeatureSneakAttack, (level+1)/2),
			Condition: "Once per turn, with advantage or an ally within 5 ft of the target",
			Dice:      fmt.Sprintf("%dd6", (level+1)/2),
		})
	}

	if r.isClass(dnd5e.ClassPaladin) {
		if options := smiteOptions(paladinMaxSlot(level), maxSmiteDice); len(options) > 0 {
			r.add(dnd5e.BonusDamageFeature{
				Name:      FeatureDivineSmite,
				Label:     FeatureDivineSmite,
				Condition: "On a melee weapon hit, expend a spell slot",
				Options:   options,
			})
		}
		if level >= 11 {
			r.add(dnd5e.BonusDamageFeature{
				Name:      FeatureImprovedDivineSmite,
				Label:     FeatureImprovedDivineSmite + " (1d8)",
				Condition: "Every melee weapon hit",
				Dice:      "1d8",
			})
		}
	}

	if r.hasFeature(FeatureColossusSlayer) {
		r.add(dnd5e.BonusDamageFeature{
			Name:      FeatureColossusSlayer,
			Label:     FeatureColossusSlayer + " (1d8)",
			Condition: "Once per turn, target is below its hit point maximum",
			Dice:      "1d8",
		})
	}
	if r.hasFeature(FeatureDreadAmbusher) {
		r.add(dnd5e.BonusDamageFeature{
			Name:      FeatureDreadAmbusher,
			Label:     FeatureDreadAmbusher + " (1d8)",
			Condition: "First turn of combat, extra attack",
			Dice:      "1d8",
		})
	}
	if r.hasFeature(FeaturePlanarWarrior) {
		planar := "1d8"
		if level >= 11 {
			planar = "2d8"
		}
		r.add(dnd5e.BonusDamageFeature{
			Name:      FeaturePlanarWarrior,
			Label:     fmt.Sprintf("%s (%s force)", FeaturePlanarWarrior, planar),
			Condition: "Once per turn, marked target; damage becomes force",
			Dice:      planar,
		})
	}

	if r.hasFeature(FeatureEldritchSmite) {
		options := smiteOptions(warlockMaxSlot(level), 0)
		r.add(dnd5e.BonusDamageFeature{
			Name:      FeatureEldritchSmite,
			Label:     FeatureEldritchSmite,
			Condition: "Once per turn on a pact weapon hit, expend a warlock slot",
			Options:   options,
		})
	}

	if r.isClass(dnd5e.ClassBarbarian) {
		if count := brutalCriticalDice(level); count > 0 {
			r.add(dnd5e.BonusDamageFeature{
				Name:      FeatureBrutalCritical,
				Label:     fmt.Sprintf("%s (+%d die)", FeatureBrutalCritical, count),
				Condition: "Critical hit with a melee weapon",
				CritOnly:  true,
				Dice:      fmt.Sprintf("%d%s", count, weaponDieSuffix),
			})
		}
	}

	if strings.Contains(r.race, strings.ToLower(dnd5e.RaceHalfOrc)) {
		r.add(dnd5e.BonusDamageFeature{
			Name:      FeatureSavageAttacks,
			Label:     FeatureSavageAttacks + " (+1 die)",
			Condition: "Critical hit with a melee weapon",
			CritOnly:  true,
			Dice:      "1" + weaponDieSuffix,
		})
	}

	return r.out
}

// WeaponDiceFormula turns a "N extra weapon die" bonus into "NdS" for the
// weapon being rolled. Plain formulas pass through unchanged.
func WeaponDiceFormula(bonusDice string, weaponSides int) string {
	count, ok := strings.CutSuffix(bonusDice, weaponDieSuffix)
	if !ok {
		return bonusDice
	}
	return fmt.Sprintf("%sd%d", count, weaponSides)
}

type resolver struct {
	class    string
	race     string
	features []string
	seen     map[string]bool
	out      []dnd5e.BonusDamageFeature
}

func (r *resolver) isClass(name string) bool {
	return r.class != "" && strings.Contains(r.class, strings.ToLower(name))
}

func (r *resolver) hasFeature(name string) bool {
	needle := strings.ToLower(name)
	for _, f := range r.features {
		if strings.Contains(f, needle) {
			return true
		}
	}
	return false
}

func (r *resolver) add(feature dnd5e.BonusDamageFeature) {
	if r.seen[feature.Name] {
		return
	}
	r.seen[feature.Name] = true
	r.out = append(r.out, feature)
}

// smiteOptions builds one option per slot level up to maxSlot, each worth
// (1+slot)d8. A positive maxDice caps the count.
func smiteOptions(maxSlot, maxDice int) []dnd5e.DiceOption {
	options := make([]dnd5e.DiceOption, 0, maxSlot)
	for slot := 1; slot <= maxSlot; slot++ {
		count := 1 + slot
		if maxDice > 0 {
			count = min(count, maxDice)
		}
		options = append(options, dnd5e.DiceOption{
			Label: fmt.Sprintf("%s level (%dd8)", ordinal(slot), count),
			Dice:  fmt.Sprintf("%dd8", count),
		})
	}
	return options
}

func paladinMaxSlot(level int) int {
	switch {
	case level < 2:
		return 0
	case level <= 4:
		return 1
	case level <= 8:
		return 2
	case level <= 12:
		return 3
	case level <= 16:
		return 4
	default:
		return 5
	}
}

func warlockMaxSlot(level int) int {
	switch {
	case level <= 2:
		return 1
	case level <= 4:
		return 2
	case level <= 6:
		return 3
	case level <= 8:
		return 4
	default:
		return 5
	}
}

func brutalCriticalDice(level int) int {
	switch {
	case level >= 17:
		return 3
	case level >= 13:
		return 2
	case level >= 9:
		return 1
	default:
		return 0
	}
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", n)
	}
}
