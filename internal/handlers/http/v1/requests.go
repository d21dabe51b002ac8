package v1

import (
	"time"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

// sharedRollRequest is a roll posted to the shared log. Total and Timestamp
// are pointers so a missing value can be told apart from zero.
type sharedRollRequest struct {
	ID            string         `json:"id"`
	Type          dnd5e.RollType `json:"type"`
	Name          string         `json:"name"`
	Formula       string         `json:"formula"`
	Rolls         []int          `json:"rolls"`
	Modifier      int            `json:"modifier"`
	Total         *int           `json:"total"`
	Breakdown     string         `json:"breakdown"`
	Timestamp     *time.Time     `json:"timestamp"`
	CharacterName string         `json:"characterName"`
}

func (r *sharedRollRequest) validate() error {
	vb := errors.NewValidationBuilder()

	if r.ID == "" {
		vb.RequiredField("id")
	}
	if r.Timestamp == nil || r.Timestamp.IsZero() {
		vb.RequiredField("timestamp")
	}
	if r.Total == nil {
		vb.RequiredField("total")
	}

	return vb.Build()
}

func (r *sharedRollRequest) toEntity() dnd5e.SharedRollResult {
	return dnd5e.SharedRollResult{
		RollResult: dnd5e.RollResult{
			ID:        r.ID,
			Type:      r.Type,
			Name:      r.Name,
			Formula:   r.Formula,
			Rolls:     r.Rolls,
			Modifier:  r.Modifier,
			Total:     *r.Total,
			Breakdown: r.Breakdown,
			Timestamp: *r.Timestamp,
		},
		CharacterName: r.CharacterName,
	}
}

// rollRequest asks for a roll on a character's behalf. Type selects which
// of the remaining fields apply; an empty type is a custom roll.
type rollRequest struct {
	Type    dnd5e.RollType `json:"type"`
	Name    string         `json:"name"`
	Formula string         `json:"formula,omitempty"`
	Ability string         `json:"ability,omitempty"`
	Skill   string         `json:"skill,omitempty"`
	// Modifier overrides the computed modifier for checks and saves, is the
	// attack bonus for attacks and the ability modifier for healing
	Modifier      *int             `json:"modifier,omitempty"`
	Critical      bool             `json:"critical,omitempty"`
	DieSize       int              `json:"dieSize,omitempty"`
	BonusDice     []string         `json:"bonusDice,omitempty"`
	ApplyModifier bool             `json:"applyModifier,omitempty"`
	Character     *dnd5e.Character `json:"character,omitempty"`
}

type spellRollRequest struct {
	SlotLevel       int              `json:"slotLevel"`
	TargetDamaged   bool             `json:"targetDamaged,omitempty"`
	Critical        bool             `json:"critical,omitempty"`
	FallbackFormula string           `json:"fallbackFormula,omitempty"`
	Character       *dnd5e.Character `json:"character,omitempty"`
}

type spellRollResponse struct {
	Config dnd5e.SpellAttackConfig `json:"config"`
	Attack *dnd5e.RollResult       `json:"attack,omitempty"`
	Damage *dnd5e.RollResult       `json:"damage,omitempty"`
	SaveDC int                     `json:"saveDc,omitempty"`
}

type bonusDamageRequest struct {
	// CharacterName selects a saved sheet when Character is not sent
	CharacterName string           `json:"characterName,omitempty"`
	Character     *dnd5e.Character `json:"character,omitempty"`
	PrimaryClass  string           `json:"primaryClass,omitempty"`
	TotalLevel    string           `json:"totalLevel,omitempty"`
	Features      []string         `json:"features,omitempty"`
	Race          string           `json:"race,omitempty"`
}

type bonusDamageResponse struct {
	Features []dnd5e.BonusDamageFeature `json:"features"`
}

type sharedRollsResponse struct {
	Rolls []dnd5e.SharedRollResult `json:"rolls"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type clearHistoryResponse struct {
	RollsCleared int32 `json:"rollsCleared"`
}

type charactersResponse struct {
	Names []string `json:"names"`
}
