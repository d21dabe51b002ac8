package v1_test

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
	"github.com/KirkDiggler/rpg-sheet/internal/orchestrators/rolls"
)

func (s *HandlerTestSuite) TestListCharacters() {
	s.mockRolls.EXPECT().
		ListCharacters(gomock.Any()).
		Return(&rolls.ListCharactersOutput{Names: []string{"Grog", "Pike"}}, nil)

	rec := s.do(http.MethodGet, "/characters", "")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"names":["Grog","Pike"]}`, rec.Body.String())
}

func (s *HandlerTestSuite) TestListCharacters_NoneIsArray() {
	s.mockRolls.EXPECT().
		ListCharacters(gomock.Any()).
		Return(&rolls.ListCharactersOutput{}, nil)

	rec := s.do(http.MethodGet, "/characters", "")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"names":[]}`, rec.Body.String())
}

func (s *HandlerTestSuite) TestGetCharacter() {
	s.mockRolls.EXPECT().
		GetCharacter(gomock.Any(), &rolls.GetCharacterInput{Name: "Grog"}).
		Return(&rolls.GetCharacterOutput{Character: &dnd5e.Character{Name: "Grog", Race: "Goliath"}}, nil)

	rec := s.do(http.MethodGet, "/characters/Grog", "")

	s.Require().Equal(http.StatusOK, rec.Code)
	var sheet dnd5e.Character
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &sheet))
	s.Equal("Goliath", sheet.Race)
}

func (s *HandlerTestSuite) TestGetCharacter_NotFound() {
	s.mockRolls.EXPECT().
		GetCharacter(gomock.Any(), gomock.Any()).
		Return(nil, errors.NotFound("character Pike not found"))

	rec := s.do(http.MethodGet, "/characters/Pike", "")

	s.Equal(http.StatusNotFound, rec.Code)
	code, _ := s.decodeError(rec)
	s.Equal("NOT_FOUND", code)
}

func (s *HandlerTestSuite) TestSaveCharacter_TakesPathName() {
	s.mockRolls.EXPECT().
		SaveCharacter(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *rolls.SaveCharacterInput) (*rolls.SaveCharacterOutput, error) {
			s.Equal("Grog", input.Character.Name)
			s.Equal("18", input.Character.AbilityScores.Strength)
			return &rolls.SaveCharacterOutput{Character: input.Character, Created: true}, nil
		})

	rec := s.do(http.MethodPut, "/characters/Grog", `{"abilityScores":{"str":"18"}}`)

	s.Equal(http.StatusCreated, rec.Code)
}

func (s *HandlerTestSuite) TestSaveCharacter_ReplaceIsOK() {
	s.mockRolls.EXPECT().
		SaveCharacter(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *rolls.SaveCharacterInput) (*rolls.SaveCharacterOutput, error) {
			return &rolls.SaveCharacterOutput{Character: input.Character}, nil
		})

	rec := s.do(http.MethodPut, "/characters/grog", `{"name":"Grog","abilityScores":{}}`)

	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerTestSuite) TestSaveCharacter_NameMismatch() {
	rec := s.do(http.MethodPut, "/characters/Grog", `{"name":"Pike","abilityScores":{}}`)

	s.Equal(http.StatusBadRequest, rec.Code)
	_, message := s.decodeError(rec)
	s.Contains(message, "does not match")
}

func (s *HandlerTestSuite) TestSaveCharacter_BadBody() {
	rec := s.do(http.MethodPut, "/characters/Grog", `{"name":`)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerTestSuite) TestDeleteCharacter() {
	s.mockRolls.EXPECT().
		DeleteCharacter(gomock.Any(), &rolls.DeleteCharacterInput{Name: "Grog"}).
		Return(nil)

	rec := s.do(http.MethodDelete, "/characters/Grog", "")

	s.Equal(http.StatusNoContent, rec.Code)
	s.Empty(rec.Body.String())
}

func (s *HandlerTestSuite) TestSaveCharacter_StorageDisabled() {
	s.mockRolls.EXPECT().
		SaveCharacter(gomock.Any(), gomock.Any()).
		Return(nil, errors.Unimplemented("character storage is not configured"))

	rec := s.do(http.MethodPut, "/characters/Grog", `{}`)

	s.Equal(http.StatusNotImplemented, rec.Code)
}
