package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
	"github.com/KirkDiggler/rpg-sheet/internal/orchestrators/rolls"
)

// listSharedRolls returns the shared log, optionally only rolls after ?since
func (h *Handler) listSharedRolls(w http.ResponseWriter, r *http.Request) {
	var since time.Time
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.writeError(w, errors.InvalidArgumentf("invalid since timestamp: %q", raw))
			return
		}
		since = parsed
	}

	out, err := h.rollService.ListSharedRolls(r.Context(), &rolls.ListSharedRollsInput{Since: since})
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := sharedRollsResponse{Rolls: out.Rolls}
	if resp.Rolls == nil {
		resp.Rolls = []dnd5e.SharedRollResult{}
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// shareRoll posts a roll made elsewhere to the shared log
func (h *Handler) shareRoll(w http.ResponseWriter, r *http.Request) {
	var req sharedRollRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.rollService.ShareRoll(r.Context(), &rolls.ShareRollInput{Roll: req.toEntity()}); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// roll makes a roll for the character named in the path
func (h *Handler) roll(w http.ResponseWriter, r *http.Request) {
	var req rollRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	out, err := h.dispatchRoll(r.Context(), r.PathValue("name"), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, out.Roll)
}

func (h *Handler) dispatchRoll(ctx context.Context, characterName string, req *rollRequest) (*rolls.RollOutput, error) {
	switch req.Type {
	case dnd5e.RollTypeAbilityCheck:
		return h.rollService.RollAbilityCheck(ctx, &rolls.RollAbilityCheckInput{
			CharacterName: characterName,
			Character:     req.Character,
			Ability:       req.Ability,
			Modifier:      req.Modifier,
		})
	case dnd5e.RollTypeSavingThrow:
		return h.rollService.RollSavingThrow(ctx, &rolls.RollSavingThrowInput{
			CharacterName: characterName,
			Character:     req.Character,
			Ability:       req.Ability,
			Modifier:      req.Modifier,
		})
	case dnd5e.RollTypeSkillCheck:
		return h.rollService.RollSkillCheck(ctx, &rolls.RollSkillCheckInput{
			CharacterName: characterName,
			Character:     req.Character,
			Skill:         req.Skill,
			Modifier:      req.Modifier,
		})
	case dnd5e.RollTypeAttack:
		bonus := 0
		if req.Modifier != nil {
			bonus = *req.Modifier
		}
		return h.rollService.RollAttack(ctx, &rolls.RollAttackInput{
			CharacterName: characterName,
			Name:          req.Name,
			AttackBonus:   bonus,
		})
	case dnd5e.RollTypeDamage:
		return h.rollService.RollDamage(ctx, &rolls.RollDamageInput{
			CharacterName: characterName,
			Name:          req.Name,
			Formula:       req.Formula,
			Critical:      req.Critical,
			DieSize:       req.DieSize,
			BonusDice:     req.BonusDice,
		})
	case dnd5e.RollTypeHealing:
		return h.rollService.RollHealing(ctx, &rolls.RollHealingInput{
			CharacterName:   characterName,
			Character:       req.Character,
			Name:            req.Name,
			Formula:         req.Formula,
			ApplyModifier:   req.ApplyModifier,
			AbilityModifier: req.Modifier,
		})
	case dnd5e.RollTypeCustom, "":
		return h.rollService.RollCustom(ctx, &rolls.RollCustomInput{
			CharacterName: characterName,
			Name:          req.Name,
			Formula:       req.Formula,
		})
	default:
		return nil, errors.InvalidArgumentf("unknown roll type: %q", req.Type)
	}
}

// rollSpell casts a damaging spell for the character named in the path
func (h *Handler) rollSpell(w http.ResponseWriter, r *http.Request) {
	var req spellRollRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	out, err := h.rollService.RollSpell(r.Context(), &rolls.RollSpellInput{
		CharacterName:   r.PathValue("name"),
		Character:       req.Character,
		SpellKey:        r.PathValue("spell"),
		SlotLevel:       req.SlotLevel,
		TargetDamaged:   req.TargetDamaged,
		Critical:        req.Critical,
		FallbackFormula: req.FallbackFormula,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, spellRollResponse{
		Config: out.Config,
		Attack: out.Attack,
		Damage: out.Damage,
		SaveDC: out.SaveDC,
	})
}

func (h *Handler) getHistory(w http.ResponseWriter, r *http.Request) {
	out, err := h.rollService.GetHistory(r.Context(), &rolls.GetHistoryInput{
		CharacterName: r.PathValue("name"),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, out.History)
}

func (h *Handler) clearHistory(w http.ResponseWriter, r *http.Request) {
	out, err := h.rollService.ClearHistory(r.Context(), &rolls.ClearHistoryInput{
		CharacterName: r.PathValue("name"),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, clearHistoryResponse{RollsCleared: out.RollsCleared})
}

// listBonusDamage resolves the bonus damage features for a character
func (h *Handler) listBonusDamage(w http.ResponseWriter, r *http.Request) {
	var req bonusDamageRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	out, err := h.rollService.ListBonusDamage(r.Context(), &rolls.ListBonusDamageInput{
		CharacterName: req.CharacterName,
		Character:     req.Character,
		PrimaryClass:  req.PrimaryClass,
		TotalLevel:    req.TotalLevel,
		Features:      req.Features,
		Race:          req.Race,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := bonusDamageResponse{Features: out.Features}
	if resp.Features == nil {
		resp.Features = []dnd5e.BonusDamageFeature{}
	}
	h.writeJSON(w, http.StatusOK, resp)
}
