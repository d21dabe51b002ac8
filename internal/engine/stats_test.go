package engine_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
	"pgregory.net/rapid"

	"github.com/KirkDiggler/rpg-sheet/internal/engine"
	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

type StatsTestSuite struct {
	suite.Suite
	cleric *dnd5e.Character
}

func TestStatsSuite(t *testing.T) {
	suite.Run(t, new(StatsTestSuite))
}

func (s *StatsTestSuite) SetupTest() {
	s.cleric = &dnd5e.Character{
		Name:  "Brother Ansel",
		Level: "1",
		Classes: []dnd5e.CharacterClass{
			{Name: "Cleric", Subclass: "Life Domain", Level: 3},
			{Name: "Fighter", Level: 2},
		},
		AbilityScores: dnd5e.AbilityScores{
			Strength:     "14",
			Dexterity:    "9",
			Constitution: "13",
			Intelligence: "10",
			Wisdom:       "17",
			Charisma:     "",
		},
		SpellcastingAbility: "wis",
		Skills: map[string]dnd5e.Proficiency{
			"Insight":       {Proficient: true},
			"sleightOfHand": {Proficient: false, Value: "+7"},
		},
		SavingThrows: map[string]dnd5e.Proficiency{
			"Wisdom": {Proficient: true},
		},
	}
}

func (s *StatsTestSuite) TestAbilityModifier() {
	s.Equal(0, engine.AbilityModifier(10))
	s.Equal(2, engine.AbilityModifier(15))
	s.Equal(-1, engine.AbilityModifier(8))
	s.Equal(5, engine.AbilityModifier(20))
	s.Equal(-1, engine.AbilityModifier(9))
	s.Equal(-5, engine.AbilityModifier(1))
}

func (s *StatsTestSuite) TestProficiencyBonus() {
	expected := map[int]int{
		-3: 2, 0: 2, 1: 2, 4: 2, 5: 3, 8: 3, 9: 4, 12: 4, 13: 5, 16: 5, 17: 6, 20: 6, 25: 6,
	}
	for level, bonus := range expected {
		s.Equal(bonus, engine.ProficiencyBonus(level), "level %d", level)
	}
}

func (s *StatsTestSuite) TestSpellSaveDCAndAttackBonus() {
	s.Equal(13, engine.SpellSaveDC(3, 2))
	s.Equal(5, engine.SpellAttackBonus(3, 2))

	// level 5 cleric/fighter with 17 wisdom: +3 mod, +3 proficiency
	s.Equal(14, engine.CharacterSpellSaveDC(s.cleric))
	s.Equal(6, engine.CharacterSpellAttackBonus(s.cleric))
}

func (s *StatsTestSuite) TestTotalLevel() {
	s.Equal(5, engine.TotalLevel(s.cleric))
	s.Equal(1, engine.TotalLevel(nil))
	s.Equal(7, engine.TotalLevel(&dnd5e.Character{Level: "7"}))
	s.Equal(12, engine.TotalLevel(&dnd5e.Character{Level: " 12th"}))
	s.Equal(1, engine.TotalLevel(&dnd5e.Character{Level: "unknown"}))
	s.Equal(1, engine.TotalLevel(&dnd5e.Character{Level: "0"}))
	s.Equal(1, engine.TotalLevel(&dnd5e.Character{Classes: []dnd5e.CharacterClass{{Name: "Wizard"}}}))
}

func (s *StatsTestSuite) TestSpellcastingAbilityScore() {
	s.Equal(17, engine.SpellcastingAbilityScore(s.cleric))

	s.cleric.SpellcastingAbility = "Intelligence"
	s.Equal(10, engine.SpellcastingAbilityScore(s.cleric))

	s.cleric.SpellcastingAbility = "STR"
	s.Equal(14, engine.SpellcastingAbilityScore(s.cleric))

	s.cleric.SpellcastingAbility = "luck"
	s.Equal(10, engine.SpellcastingAbilityScore(s.cleric))

	s.cleric.SpellcastingAbility = ""
	s.Equal(10, engine.SpellcastingAbilityScore(s.cleric))

	s.cleric.SpellcastingAbility = "cha"
	s.Equal(10, engine.SpellcastingAbilityScore(s.cleric), "empty score defaults to 10")
}

func (s *StatsTestSuite) TestSkillModifier() {
	insight, err := engine.SkillModifier(s.cleric, "insight")
	s.Require().NoError(err)
	s.Equal(6, insight)

	sleight, err := engine.SkillModifier(s.cleric, "Sleight of Hand")
	s.Require().NoError(err)
	s.Equal(7, sleight)

	athletics, err := engine.SkillModifier(s.cleric, "Athletics")
	s.Require().NoError(err)
	s.Equal(2, athletics)

	_, err = engine.SkillModifier(s.cleric, "Basket Weaving")
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *StatsTestSuite) TestSavingThrowModifier() {
	wis, err := engine.SavingThrowModifier(s.cleric, "wis")
	s.Require().NoError(err)
	s.Equal(6, wis)

	dex, err := engine.SavingThrowModifier(s.cleric, "Dexterity")
	s.Require().NoError(err)
	s.Equal(-1, dex)

	_, err = engine.SavingThrowModifier(s.cleric, "")
	s.Require().Error(err)
}

func (s *StatsTestSuite) TestAbilityCheckModifier() {
	mod, err := engine.AbilityCheckModifier(s.cleric, "con")
	s.Require().NoError(err)
	s.Equal(1, mod)

	_, err = engine.AbilityCheckModifier(s.cleric, "xyz")
	s.Require().Error(err)
}

func TestAbilityModifier_MatchesFloor(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		score := rapid.IntRange(-30, 60).Draw(rt, "score")
		want := int(math.Floor(float64(score-10) / 2))
		if got := engine.AbilityModifier(score); got != want {
			rt.Fatalf("AbilityModifier(%d) = %d, want %d", score, got, want)
		}
	})
}
