package rolls_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/KirkDiggler/rpg-sheet/internal/dice"
	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
	"github.com/KirkDiggler/rpg-sheet/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-sheet/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-sheet/internal/rolls"
)

// scriptedRoller returns queued values in order and records the dice requested.
type scriptedRoller struct {
	values   []int
	requests [][2]int
}

func (r *scriptedRoller) next() int {
	v := r.values[0]
	r.values = r.values[1:]
	return v
}

func (r *scriptedRoller) Roll(size int) (int, error) {
	r.requests = append(r.requests, [2]int{1, size})
	return r.next(), nil
}

func (r *scriptedRoller) RollN(count, size int) ([]int, error) {
	r.requests = append(r.requests, [2]int{count, size})
	out := make([]int, count)
	for i := range out {
		out[i] = r.next()
	}
	return out, nil
}

type FactoryTestSuite struct {
	suite.Suite
	roller  *scriptedRoller
	factory *rolls.Factory
	start   time.Time
}

func TestFactorySuite(t *testing.T) {
	suite.Run(t, new(FactoryTestSuite))
}

func (s *FactoryTestSuite) SetupTest() {
	s.roller = &scriptedRoller{}
	s.start = time.Date(2025, 7, 4, 12, 0, 0, 0, time.UTC)

	var err error
	s.factory, err = rolls.NewFactory(&rolls.Config{
		Roller:      s.roller,
		IDGenerator: idgen.NewSequential("roll"),
		Clock:       clock.NewStepping(s.start, time.Second),
		Logger:      zap.NewNop(),
	})
	s.Require().NoError(err)
}

func (s *FactoryTestSuite) TestNewFactoryValidatesConfig() {
	_, err := rolls.NewFactory(&rolls.Config{})
	s.Require().Error(err)
	s.Contains(err.Error(), "Roller")
	s.Contains(err.Error(), "Clock")
}

func (s *FactoryTestSuite) TestD20Rolls() {
	testCases := []struct {
		name      string
		roll      func(name string, mod int) (dnd5e.RollResult, error)
		rollType  dnd5e.RollType
		die       int
		modifier  int
		formula   string
		breakdown string
	}{
		{name: "Strength", roll: s.factory.AbilityCheck, rollType: dnd5e.RollTypeAbilityCheck, die: 12, modifier: 3, formula: "d20+3", breakdown: "12 + 3 = 15"},
		{name: "Dexterity Save", roll: s.factory.SavingThrow, rollType: dnd5e.RollTypeSavingThrow, die: 7, modifier: -1, formula: "d20-1", breakdown: "7 - 1 = 6"},
		{name: "Stealth", roll: s.factory.SkillCheck, rollType: dnd5e.RollTypeSkillCheck, die: 20, modifier: 0, formula: "d20+0", breakdown: "20 + 0 = 20"},
		{name: "Longsword", roll: s.factory.Attack, rollType: dnd5e.RollTypeAttack, die: 1, modifier: 5, formula: "d20+5", breakdown: "1 + 5 = 6"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.roller.values = []int{tc.die}

			result, err := tc.roll(tc.name, tc.modifier)
			s.Require().NoError(err)

			s.Equal(tc.rollType, result.Type)
			s.Equal(tc.name, result.Name)
			s.Equal(tc.formula, result.Formula)
			s.Equal([]int{tc.die}, result.Rolls)
			s.Equal(tc.modifier, result.Modifier)
			s.Equal(tc.die+tc.modifier, result.Total)
			s.Equal(tc.breakdown, result.Breakdown)
			s.NotEmpty(result.ID)
			s.False(result.Timestamp.IsZero())
		})
	}
}

func (s *FactoryTestSuite) TestFreshIDAndTimestamp() {
	s.roller.values = []int{3, 4}

	first, err := s.factory.AbilityCheck("Wisdom", 0)
	s.Require().NoError(err)
	second, err := s.factory.AbilityCheck("Wisdom", 0)
	s.Require().NoError(err)

	s.NotEqual(first.ID, second.ID)
	s.True(second.Timestamp.After(first.Timestamp))
}

func (s *FactoryTestSuite) TestDamage() {
	s.roller.values = []int{4, 5}

	result, err := s.factory.Damage("Greatsword", "2d6+3 slashing", rolls.DamageOptions{})
	s.Require().NoError(err)

	s.Equal(dnd5e.RollTypeDamage, result.Type)
	s.Equal("2d6+3", result.Formula)
	s.Equal([]int{4, 5}, result.Rolls)
	s.Equal(3, result.Modifier)
	s.Equal(12, result.Total)
	s.Equal("[4 + 5] + 3 = 12", result.Breakdown)
}

func (s *FactoryTestSuite) TestDamageNegativeModifier() {
	s.roller.values = []int{2}

	result, err := s.factory.Damage("Dagger", "1d4-1", rolls.DamageOptions{})
	s.Require().NoError(err)

	s.Equal(1, result.Total)
	s.Equal("[2] - 1 = 1", result.Breakdown)
}

func (s *FactoryTestSuite) TestDamageDieSizeOverride() {
	s.roller.values = []int{11}

	result, err := s.factory.Damage("Toll the Dead", "1d8", rolls.DamageOptions{DieSize: 12})
	s.Require().NoError(err)

	s.Equal("1d12", result.Formula)
	s.Equal([][2]int{{1, 12}}, s.roller.requests)
	s.Equal(11, result.Total)
}

func (s *FactoryTestSuite) TestDamageMalformedFallsBackToD20() {
	s.roller.values = []int{17}

	result, err := s.factory.Damage("Mystery", "lots of damage", rolls.DamageOptions{})
	s.Require().NoError(err)

	s.Equal("1d20", result.Formula)
	s.Equal(17, result.Total)
}

func (s *FactoryTestSuite) TestDamageOversizedFormulaFallsBackToD20() {
	for _, formula := range []string{"20000000d6", "1d100000", "101d6"} {
		s.roller.values = []int{9}
		s.roller.requests = nil

		result, err := s.factory.Damage("Meteor", formula, rolls.DamageOptions{})
		s.Require().NoError(err, formula)

		s.Equal("1d20", result.Formula, formula)
		s.Equal([][2]int{{1, 20}}, s.roller.requests, formula)
	}
}

func (s *FactoryTestSuite) TestHealingOversizedFormulaFallsBackToD20() {
	s.roller.values = []int{12}

	result, err := s.factory.Healing("Heal", "20000000d8", 0, false)
	s.Require().NoError(err)

	s.Equal("1d20", result.Formula)
	s.Equal(12, result.Total)
}

func (s *FactoryTestSuite) TestDamageRejectsOversizedDieSize() {
	_, err := s.factory.Damage("Toll the Dead", "1d8", rolls.DamageOptions{DieSize: dice.MaxDiceSides + 1})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Empty(s.roller.requests)
}

func (s *FactoryTestSuite) TestDamageRejectsTooManyDiceAfterCritical() {
	extras := []string{"100d6", "100d6"}

	_, err := s.factory.Damage("Smite", "100d8", rolls.DamageOptions{Critical: true, ExtraDice: extras})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Empty(s.roller.requests)
}

func (s *FactoryTestSuite) TestDamageCriticalWithExtraDice() {
	s.roller.values = []int{1, 2, 3, 4, 5, 6}

	result, err := s.factory.Damage("Rapier", "1d8+4", rolls.DamageOptions{
		Critical:  true,
		ExtraDice: []string{"2d6"},
	})
	s.Require().NoError(err)

	s.Equal("2d8+4 + 4d6", result.Formula)
	s.Equal([][2]int{{2, 8}, {4, 6}}, s.roller.requests)
	s.Equal([]int{1, 2, 3, 4, 5, 6}, result.Rolls)
	s.Equal(25, result.Total)
	s.Equal("[1 + 2 + 3 + 4 + 5 + 6] + 4 = 25", result.Breakdown)
}

func (s *FactoryTestSuite) TestDamageRejectsInvalidExtraDice() {
	_, err := s.factory.Damage("Rapier", "1d8", rolls.DamageOptions{ExtraDice: []string{"1 extra weapon die"}})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *FactoryTestSuite) TestHealingAppliesAbilityModifier() {
	s.roller.values = []int{6}

	result, err := s.factory.Healing("Cure Wounds", "1d8+5", 3, true)
	s.Require().NoError(err)

	s.Equal(dnd5e.RollTypeHealing, result.Type)
	s.Equal(3, result.Modifier)
	s.Equal(9, result.Total)
	s.Equal("1d8+3", result.Formula)
}

func (s *FactoryTestSuite) TestHealingKeepsFormulaModifier() {
	s.roller.values = []int{2, 3}

	result, err := s.factory.Healing("Potion of Healing", "2d4+2", 3, false)
	s.Require().NoError(err)

	s.Equal(2, result.Modifier)
	s.Equal(7, result.Total)
}

func (s *FactoryTestSuite) TestCustom() {
	s.roller.values = []int{1, 6}

	result, err := s.factory.Custom("", "2d6+3")
	s.Require().NoError(err)

	s.Equal(dnd5e.RollTypeCustom, result.Type)
	s.Equal("2d6+3", result.Name)
	s.Equal(10, result.Total)
}

func (s *FactoryTestSuite) TestCustomRejectsNonDice() {
	for _, formula := range []string{"", "fireball please"} {
		_, err := s.factory.Custom("Oops", formula)
		s.Require().Error(err)
		s.True(errors.IsInvalidArgument(err))
	}
	s.Empty(s.roller.requests)
}

func TestFactory_TotalInvariant(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		f := dice.Formula{
			DiceCount: rapid.IntRange(1, 10).Draw(rt, "count"),
			DiceSides: rapid.IntRange(1, 20).Draw(rt, "sides"),
			Modifier:  rapid.IntRange(-10, 10).Draw(rt, "modifier"),
		}
		abilityMod := rapid.IntRange(-5, 5).Draw(rt, "abilityMod")

		factory, err := rolls.NewFactory(&rolls.Config{
			Roller:      dice.NewSeededRoller(rapid.Uint64().Draw(rt, "seed"), 1),
			IDGenerator: idgen.NewUUID("roll"),
			Clock:       clock.New(),
			Logger:      zap.NewNop(),
		})
		if err != nil {
			rt.Fatal(err)
		}

		results := make([]dnd5e.RollResult, 0, 3)
		damage, err := factory.Damage("damage", f.String(), rolls.DamageOptions{})
		if err != nil {
			rt.Fatal(err)
		}
		healing, err := factory.Healing("healing", f.String(), abilityMod, true)
		if err != nil {
			rt.Fatal(err)
		}
		check, err := factory.SkillCheck("check", f.Modifier)
		if err != nil {
			rt.Fatal(err)
		}
		results = append(results, damage, healing, check)

		for _, r := range results {
			if r.Total != r.DiceTotal()+r.Modifier {
				rt.Fatalf("%s: total %d != sum(rolls) %d + modifier %d", r.Type, r.Total, r.DiceTotal(), r.Modifier)
			}
		}
		if healing.Modifier != abilityMod {
			rt.Fatalf("healing modifier %d, want ability modifier %d", healing.Modifier, abilityMod)
		}
		if len(check.Rolls) != 1 || check.Rolls[0] < 1 || check.Rolls[0] > 20 {
			rt.Fatalf("check rolls out of range: %v", check.Rolls)
		}
		if len(damage.Rolls) != f.DiceCount {
			rt.Fatalf("damage drew %d dice, want %d", len(damage.Rolls), f.DiceCount)
		}
	})
}
