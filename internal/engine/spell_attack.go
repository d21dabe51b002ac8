package engine

import (
	"slices"
	"strings"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
)

// Spells whose damage die grows when the target is already hurt
var variableDieSpells = map[string]int{
	"toll the dead": 12,
}

// SpellAttackConfigFor decides how a spell is rolled at the given slot level.
// A save DC makes it a saving-throw spell; damage without a DC makes it a
// spell attack, melee for Touch and Self ranges and ranged otherwise.
func SpellAttackConfigFor(spell dnd5e.SpellDamage, slotLevel int) dnd5e.SpellAttackConfig {
	cfg := dnd5e.SpellAttackConfig{
		AttackType:    dnd5e.AttackTypeNone,
		DamageFormula: damageAtSlot(spell, slotLevel),
		DamageType:    strings.ToLower(spell.DamageType),
		VariableDie:   variableDieSpells[strings.ToLower(strings.TrimSpace(spell.Name))],
	}

	switch {
	case spell.SaveAbility != "":
		cfg.AttackType = dnd5e.AttackTypeSavingThrow
		cfg.SaveAbility = dnd5e.NormalizeAbilityCode(spell.SaveAbility)
	case cfg.DamageFormula != "":
		cfg.AttackType = dnd5e.AttackTypeRangedSpell
		switch strings.ToLower(strings.TrimSpace(spell.Range)) {
		case "touch", "self":
			cfg.AttackType = dnd5e.AttackTypeMeleeSpell
		}
	}

	return cfg
}

// damageAtSlot picks the formula for slotLevel, or the lowest slot the spell
// lists when it has no entry for that level.
func damageAtSlot(spell dnd5e.SpellDamage, slotLevel int) string {
	if len(spell.DamageAtSlot) == 0 {
		return ""
	}
	if formula, ok := spell.DamageAtSlot[slotLevel]; ok {
		return formula
	}

	slots := make([]int, 0, len(spell.DamageAtSlot))
	for slot := range spell.DamageAtSlot {
		slots = append(slots, slot)
	}
	slices.Sort(slots)
	return spell.DamageAtSlot[slots[0]]
}
