// Package rolls builds roll records for each kind of roll a character sheet makes.
package rolls

import (
	"fmt"
	"strconv"
	"strings"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"
	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-sheet/internal/dice"
	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
	"github.com/KirkDiggler/rpg-sheet/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-sheet/internal/pkg/idgen"
)

const d20 = 20

// Config holds the dependencies for a Factory
type Config struct {
	Roller      toolkitdice.Roller
	IDGenerator idgen.Generator
	Clock       clock.Clock
	Logger      *zap.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.Logger == nil {
		vb.RequiredField("Logger")
	}

	return vb.Build()
}

// Factory creates RollResults. Every result gets a fresh id and timestamp.
type Factory struct {
	roller toolkitdice.Roller
	idGen  idgen.Generator
	clock  clock.Clock
	logger *zap.Logger
}

// NewFactory creates a roll factory with the provided dependencies
func NewFactory(cfg *Config) (*Factory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Factory{
		roller: cfg.Roller,
		idGen:  cfg.IDGenerator,
		clock:  cfg.Clock,
		logger: cfg.Logger,
	}, nil
}

// DamageOptions adjusts how a damage roll is drawn
type DamageOptions struct {
	// DieSize replaces the parsed die size when positive.
	DieSize int
	// Critical doubles every dice count.
	Critical bool
	// ExtraDice are bonus formulas such as "3d6" whose dice join the roll.
	ExtraDice []string
}

// AbilityCheck rolls d20 plus an ability modifier
func (f *Factory) AbilityCheck(name string, modifier int) (dnd5e.RollResult, error) {
	return f.rollD20(dnd5e.RollTypeAbilityCheck, name, modifier)
}

// SavingThrow rolls d20 plus a saving throw modifier
func (f *Factory) SavingThrow(name string, modifier int) (dnd5e.RollResult, error) {
	return f.rollD20(dnd5e.RollTypeSavingThrow, name, modifier)
}

// SkillCheck rolls d20 plus a skill modifier
func (f *Factory) SkillCheck(name string, modifier int) (dnd5e.RollResult, error) {
	return f.rollD20(dnd5e.RollTypeSkillCheck, name, modifier)
}

// Attack rolls d20 plus an attack bonus
func (f *Factory) Attack(name string, modifier int) (dnd5e.RollResult, error) {
	return f.rollD20(dnd5e.RollTypeAttack, name, modifier)
}

func (f *Factory) rollD20(rollType dnd5e.RollType, name string, modifier int) (dnd5e.RollResult, error) {
	roll, err := f.roller.Roll(d20)
	if err != nil {
		return dnd5e.RollResult{}, errors.Wrap(err, "failed to roll d20")
	}

	total := roll + modifier
	return f.newResult(
		rollType,
		name,
		"d20"+dice.FormatModifier(modifier, true),
		[]int{roll},
		modifier,
		fmt.Sprintf("%d %s = %d", roll, signedTerm(modifier), total),
	), nil
}

// ParseFormula parses a formula from character data. Malformed or oversized
// formulas become a d20 and are logged once.
func (f *Factory) ParseFormula(formula string) dice.Formula {
	return dice.ParseFormula(f.logger, formula)
}

// Damage rolls a formula from character data. Malformed formulas roll a d20.
func (f *Factory) Damage(name, formula string, opts DamageOptions) (dnd5e.RollResult, error) {
	return f.DamageFormula(name, f.ParseFormula(formula), opts)
}

// DamageFormula rolls damage for an already parsed formula
func (f *Factory) DamageFormula(name string, parsed dice.Formula, opts DamageOptions) (dnd5e.RollResult, error) {
	extras := make([]dice.Formula, 0, len(opts.ExtraDice))
	for _, extra := range opts.ExtraDice {
		parsedExtra, err := dice.ParseStrict(extra)
		if err != nil {
			return dnd5e.RollResult{}, errors.Wrapf(err, "invalid bonus dice for %s", name)
		}
		extras = append(extras, parsedExtra)
	}

	return f.rollFormula(dnd5e.RollTypeDamage, name, parsed, extras, opts)
}

// Healing rolls a healing formula. When applyModifier is set the ability
// modifier replaces whatever modifier the formula carried.
func (f *Factory) Healing(name, formula string, abilityModifier int, applyModifier bool) (dnd5e.RollResult, error) {
	parsed := f.ParseFormula(formula)
	if applyModifier {
		parsed.Modifier = abilityModifier
	}
	return f.rollFormula(dnd5e.RollTypeHealing, name, parsed, nil, DamageOptions{})
}

// Custom rolls a user-entered formula. Anything that is not a dice expression
// is rejected with an InvalidArgument error and nothing is rolled.
func (f *Factory) Custom(name, formula string) (dnd5e.RollResult, error) {
	parsed, err := dice.ParseStrict(formula)
	if err != nil {
		return dnd5e.RollResult{}, err
	}
	if name == "" {
		name = parsed.String()
	}
	return f.rollFormula(dnd5e.RollTypeCustom, name, parsed, nil, DamageOptions{})
}

func (f *Factory) rollFormula(rollType dnd5e.RollType, name string, base dice.Formula, extras []dice.Formula, opts DamageOptions) (dnd5e.RollResult, error) {
	if opts.DieSize > dice.MaxDiceSides {
		return dnd5e.RollResult{}, errors.InvalidArgumentf("die size %d exceeds the limit of %d", opts.DieSize, dice.MaxDiceSides)
	}
	if opts.DieSize > 0 {
		base = base.WithSides(opts.DieSize)
	}

	terms := append([]dice.Formula{base}, extras...)
	diceCount := 0
	for i := range terms {
		if opts.Critical {
			terms[i].DiceCount *= 2
		}
		diceCount += terms[i].DiceCount
	}
	if diceCount > dice.MaxRollDice {
		return dnd5e.RollResult{}, errors.InvalidArgumentf("roll draws %d dice, over the limit of %d", diceCount, dice.MaxRollDice)
	}

	var (
		rolls    []int
		modifier int
		display  []string
	)
	for _, term := range terms {
		drawn, err := f.roller.RollN(term.DiceCount, term.DiceSides)
		if err != nil {
			return dnd5e.RollResult{}, errors.Wrapf(err, "failed to roll %s", term)
		}
		rolls = append(rolls, drawn...)
		modifier += term.Modifier
		display = append(display, term.String())
	}

	total := modifier
	parts := make([]string, len(rolls))
	for i, r := range rolls {
		total += r
		parts[i] = strconv.Itoa(r)
	}

	return f.newResult(
		rollType,
		name,
		strings.Join(display, " + "),
		rolls,
		modifier,
		fmt.Sprintf("[%s] %s = %d", strings.Join(parts, " + "), signedTerm(modifier), total),
	), nil
}

func (f *Factory) newResult(rollType dnd5e.RollType, name, formula string, rolls []int, modifier int, breakdown string) dnd5e.RollResult {
	total := modifier
	for _, r := range rolls {
		total += r
	}

	return dnd5e.RollResult{
		ID:        f.idGen.Generate(),
		Type:      rollType,
		Name:      name,
		Formula:   formula,
		Rolls:     rolls,
		Modifier:  modifier,
		Total:     total,
		Breakdown: breakdown,
		Timestamp: f.clock.Now(),
	}
}

// signedTerm renders a modifier as "+ 3" or "- 3" for breakdowns
func signedTerm(modifier int) string {
	if modifier < 0 {
		return "- " + strconv.Itoa(-modifier)
	}
	return "+ " + strconv.Itoa(modifier)
}
