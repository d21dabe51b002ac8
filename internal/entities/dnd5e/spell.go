package dnd5e

// AttackType describes how a spell reaches its target
type AttackType string

// Attack types
const (
	AttackTypeNone        AttackType = "none"
	AttackTypeMeleeSpell  AttackType = "melee-spell-attack"
	AttackTypeRangedSpell AttackType = "ranged-spell-attack"
	AttackTypeSavingThrow AttackType = "saving-throw"
)

// SpellDamage is the rules data the roll engine needs about a damaging spell
type SpellDamage struct {
	Key         string
	Name        string
	Level       int
	Range       string
	DamageType  string
	SaveAbility string
	// DamageAtSlot maps slot level to a dice formula; cantrips use slot 0.
	DamageAtSlot map[int]string
}

// SpellAttackConfig is how the sheet rolls a spell
type SpellAttackConfig struct {
	AttackType    AttackType `json:"attackType"`
	SaveAbility   string     `json:"saveAbility,omitempty"`
	DamageFormula string     `json:"damageFormula,omitempty"`
	DamageType    string     `json:"damageType,omitempty"`
	// VariableDie is the die size used instead of the formula's when the
	// spell's condition is met (Toll the Dead against a damaged target).
	VariableDie int `json:"variableDie,omitempty"`
}
