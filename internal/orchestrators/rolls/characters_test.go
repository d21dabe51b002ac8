package rolls_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	externalmock "github.com/KirkDiggler/rpg-sheet/internal/clients/external/mock"
	"github.com/KirkDiggler/rpg-sheet/internal/dice"
	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
	rollsorchestrator "github.com/KirkDiggler/rpg-sheet/internal/orchestrators/rolls"
	"github.com/KirkDiggler/rpg-sheet/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-sheet/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-sheet/internal/repositories/character"
	charactermock "github.com/KirkDiggler/rpg-sheet/internal/repositories/character/mock"
	rollhistorymock "github.com/KirkDiggler/rpg-sheet/internal/repositories/roll_history/mock"
	rolllogmock "github.com/KirkDiggler/rpg-sheet/internal/repositories/roll_log/mock"
	"github.com/KirkDiggler/rpg-sheet/internal/rolls"
)

type SavedCharacterTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	characters *charactermock.MockRepository
	history    *rollhistorymock.MockRepository
	rollLog    *rolllogmock.MockRepository
	rules      *externalmock.MockClient
	factory    *rolls.Factory
	service    rollsorchestrator.Service
	ctx        context.Context
	sheet      *dnd5e.Character
}

func TestSavedCharacterSuite(t *testing.T) {
	suite.Run(t, new(SavedCharacterTestSuite))
}

func (s *SavedCharacterTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.characters = charactermock.NewMockRepository(s.ctrl)
	s.history = rollhistorymock.NewMockRepository(s.ctrl)
	s.rollLog = rolllogmock.NewMockRepository(s.ctrl)
	s.rules = externalmock.NewMockClient(s.ctrl)
	s.ctx = context.Background()

	factory, err := rolls.NewFactory(&rolls.Config{
		Roller:      dice.NewSeededRoller(3, 9),
		IDGenerator: idgen.NewSequential("roll"),
		Clock:       clock.NewStepping(time.Date(2025, 7, 4, 19, 0, 0, 0, time.UTC), time.Second),
		Logger:      zap.NewNop(),
	})
	s.Require().NoError(err)
	s.factory = factory

	s.service, err = rollsorchestrator.NewOrchestrator(&rollsorchestrator.Config{
		Factory:       factory,
		HistoryRepo:   s.history,
		RollLog:       s.rollLog,
		RulesClient:   s.rules,
		CharacterRepo: s.characters,
		Logger:        zap.NewNop(),
		HistoryTTL:    time.Hour,
	})
	s.Require().NoError(err)

	s.sheet = &dnd5e.Character{
		Name:    "Kael",
		Race:    "Elf",
		Classes: []dnd5e.CharacterClass{{Name: "Rogue", Level: 5}},
		AbilityScores: dnd5e.AbilityScores{
			Dexterity:    "18",
			Intelligence: "14",
		},
		Skills: map[string]dnd5e.Proficiency{"stealth": {Proficient: true}},
	}
}

func (s *SavedCharacterTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *SavedCharacterTestSuite) expectRecorded() {
	s.history.EXPECT().Append(s.ctx, gomock.Any()).Return(nil, nil)
	s.rollLog.EXPECT().Append(s.ctx, gomock.Any()).Return(nil)
}

func (s *SavedCharacterTestSuite) TestSaveCharacter() {
	s.characters.EXPECT().
		Save(s.ctx, character.SaveInput{Character: s.sheet}).
		Return(&character.SaveOutput{Character: s.sheet, Created: true}, nil)

	out, err := s.service.SaveCharacter(s.ctx, &rollsorchestrator.SaveCharacterInput{Character: s.sheet})
	s.Require().NoError(err)
	s.True(out.Created)
	s.Equal(s.sheet, out.Character)
}

func (s *SavedCharacterTestSuite) TestSaveCharacterRequiresSheet() {
	_, err := s.service.SaveCharacter(s.ctx, &rollsorchestrator.SaveCharacterInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *SavedCharacterTestSuite) TestGetCharacterNotFound() {
	s.characters.EXPECT().
		Get(s.ctx, character.GetInput{Name: "Pike"}).
		Return(nil, errors.NotFound("character Pike not found"))

	_, err := s.service.GetCharacter(s.ctx, &rollsorchestrator.GetCharacterInput{Name: "Pike"})
	s.True(errors.IsNotFound(err))
}

func (s *SavedCharacterTestSuite) TestDeleteCharacter() {
	s.characters.EXPECT().
		Delete(s.ctx, character.DeleteInput{Name: "Kael"}).
		Return(&character.DeleteOutput{}, nil)

	s.NoError(s.service.DeleteCharacter(s.ctx, &rollsorchestrator.DeleteCharacterInput{Name: "Kael"}))

	err := s.service.DeleteCharacter(s.ctx, &rollsorchestrator.DeleteCharacterInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *SavedCharacterTestSuite) TestListCharacters() {
	s.characters.EXPECT().
		List(s.ctx, character.ListInput{}).
		Return(&character.ListOutput{Names: []string{"Kael", "Pike"}}, nil)

	out, err := s.service.ListCharacters(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"Kael", "Pike"}, out.Names)
}

func (s *SavedCharacterTestSuite) TestSkillCheckUsesSavedSheet() {
	s.characters.EXPECT().
		Get(s.ctx, character.GetInput{Name: "Kael"}).
		Return(&character.GetOutput{Character: s.sheet}, nil)
	s.expectRecorded()

	out, err := s.service.RollSkillCheck(s.ctx, &rollsorchestrator.RollSkillCheckInput{
		CharacterName: "Kael",
		Skill:         "Stealth",
	})
	s.Require().NoError(err)
	// dex +4, proficiency +3 at level 5
	s.Equal(7, out.Roll.Modifier)
}

func (s *SavedCharacterTestSuite) TestInlineSheetSkipsLookup() {
	s.expectRecorded()

	out, err := s.service.RollAbilityCheck(s.ctx, &rollsorchestrator.RollAbilityCheckInput{
		CharacterName: "Kael",
		Character:     s.sheet,
		Ability:       "dex",
	})
	s.Require().NoError(err)
	s.Equal(4, out.Roll.Modifier)
}

func (s *SavedCharacterTestSuite) TestMissingSavedSheetNeedsModifier() {
	s.characters.EXPECT().
		Get(s.ctx, gomock.Any()).
		Return(nil, errors.NotFound("character Vex not found"))

	_, err := s.service.RollAbilityCheck(s.ctx, &rollsorchestrator.RollAbilityCheckInput{
		CharacterName: "Vex",
		Ability:       "dex",
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *SavedCharacterTestSuite) TestSavedSheetLookupFailure() {
	s.characters.EXPECT().
		Get(s.ctx, gomock.Any()).
		Return(nil, errors.Unavailable("redis down"))

	_, err := s.service.RollSavingThrow(s.ctx, &rollsorchestrator.RollSavingThrowInput{
		CharacterName: "Kael",
		Ability:       "dex",
	})
	s.True(errors.IsUnavailable(err))
}

func (s *SavedCharacterTestSuite) TestListBonusDamageBySavedName() {
	s.characters.EXPECT().
		Get(s.ctx, character.GetInput{Name: "Kael"}).
		Return(&character.GetOutput{Character: s.sheet}, nil)

	out, err := s.service.ListBonusDamage(s.ctx, &rollsorchestrator.ListBonusDamageInput{CharacterName: "Kael"})
	s.Require().NoError(err)
	s.Require().NotEmpty(out.Features)
	s.Equal("Sneak Attack", out.Features[0].Name)
	s.Equal("3d6", out.Features[0].Dice)
}

func (s *SavedCharacterTestSuite) TestWithoutStorage() {
	service, err := rollsorchestrator.NewOrchestrator(&rollsorchestrator.Config{
		Factory:     s.factory,
		HistoryRepo: s.history,
		RollLog:     s.rollLog,
		RulesClient: s.rules,
		Logger:      zap.NewNop(),
	})
	s.Require().NoError(err)

	_, err = service.SaveCharacter(s.ctx, &rollsorchestrator.SaveCharacterInput{Character: s.sheet})
	s.Equal(errors.CodeUnimplemented, errors.GetCode(err))

	list, err := service.ListCharacters(s.ctx)
	s.Require().NoError(err)
	s.Empty(list.Names)
}
