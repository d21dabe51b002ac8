package character_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
	"github.com/KirkDiggler/rpg-sheet/internal/repositories/character"
	"github.com/KirkDiggler/rpg-sheet/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr   *miniredis.Miniredis
	repo character.Repository
	ctx  context.Context
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, mr := testutils.CreateTestRedisClient(s.T())
	s.mr = mr
	s.ctx = context.Background()

	repo, err := character.NewRedis(&character.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) sheet(name string) *dnd5e.Character {
	return &dnd5e.Character{
		Name:    name,
		Race:    "Goliath",
		Classes: []dnd5e.CharacterClass{{Name: "Barbarian", Level: 5}},
		AbilityScores: dnd5e.AbilityScores{
			Strength:  "18",
			Dexterity: "14",
		},
		Skills: map[string]dnd5e.Proficiency{
			"athletics": {Proficient: true},
		},
		Features: []string{"Rage", "Reckless Attack"},
	}
}

func (s *RedisRepositoryTestSuite) TestNewRedis_RequiresClient() {
	_, err := character.NewRedis(&character.RedisConfig{})
	s.Error(err)

	_, err = character.NewRedis(nil)
	s.Error(err)
}

func (s *RedisRepositoryTestSuite) TestSaveAndGet() {
	out, err := s.repo.Save(s.ctx, character.SaveInput{Character: s.sheet("Grog")})
	s.Require().NoError(err)
	s.True(out.Created)

	got, err := s.repo.Get(s.ctx, character.GetInput{Name: "grog"})
	s.Require().NoError(err)
	s.Equal(s.sheet("Grog"), got.Character)
}

func (s *RedisRepositoryTestSuite) TestSave_Replaces() {
	_, err := s.repo.Save(s.ctx, character.SaveInput{Character: s.sheet("Grog")})
	s.Require().NoError(err)

	updated := s.sheet("GROG")
	updated.Classes[0].Level = 6
	out, err := s.repo.Save(s.ctx, character.SaveInput{Character: updated})
	s.Require().NoError(err)
	s.False(out.Created)

	got, err := s.repo.Get(s.ctx, character.GetInput{Name: "Grog"})
	s.Require().NoError(err)
	s.Equal(6, got.Character.Classes[0].Level)

	list, err := s.repo.List(s.ctx, character.ListInput{})
	s.Require().NoError(err)
	s.Equal([]string{"GROG"}, list.Names)
}

func (s *RedisRepositoryTestSuite) TestSave_Validation() {
	_, err := s.repo.Save(s.ctx, character.SaveInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Save(s.ctx, character.SaveInput{Character: s.sheet("  ")})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestGet_NotFound() {
	_, err := s.repo.Get(s.ctx, character.GetInput{Name: "Pike"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Get(s.ctx, character.GetInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestGet_CorruptData() {
	s.Require().NoError(s.mr.Set("character:grog", "{not json"))

	_, err := s.repo.Get(s.ctx, character.GetInput{Name: "Grog"})
	s.Error(err)
	s.False(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	_, err := s.repo.Save(s.ctx, character.SaveInput{Character: s.sheet("Grog")})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, character.DeleteInput{Name: "Grog"})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, character.GetInput{Name: "Grog"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Delete(s.ctx, character.DeleteInput{Name: "Grog"})
	s.True(errors.IsNotFound(err))

	list, err := s.repo.List(s.ctx, character.ListInput{})
	s.Require().NoError(err)
	s.Empty(list.Names)
}

func (s *RedisRepositoryTestSuite) TestList_Sorted() {
	for _, name := range []string{"Vex", "grog", "Pike"} {
		_, err := s.repo.Save(s.ctx, character.SaveInput{Character: s.sheet(name)})
		s.Require().NoError(err)
	}

	list, err := s.repo.List(s.ctx, character.ListInput{})
	s.Require().NoError(err)
	s.Equal([]string{"grog", "Pike", "Vex"}, list.Names)
}

func (s *RedisRepositoryTestSuite) TestRedisUnavailable() {
	s.mr.Close()

	_, err := s.repo.Get(s.ctx, character.GetInput{Name: "Grog"})
	s.Error(err)
	s.False(errors.IsNotFound(err))
}
