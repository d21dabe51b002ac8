package dnd5e

// DiceOption is one choice of a bonus damage picker, such as a smite slot
type DiceOption struct {
	Label string `json:"label"`
	Dice  string `json:"dice"`
}

// BonusDamageFeature is extra damage a class or race grants under a condition.
// Exactly one of Dice or Options is set.
type BonusDamageFeature struct {
	Name      string       `json:"name"`
	Label     string       `json:"label"`
	Condition string       `json:"condition"`
	CritOnly  bool         `json:"critOnly"`
	Dice      string       `json:"dice,omitempty"`
	Options   []DiceOption `json:"options,omitempty"`
}

// IsPicker reports whether the player must choose one of several dice options
func (f BonusDamageFeature) IsPicker() bool {
	return len(f.Options) > 0
}
