package v1

import (
	"net/http"
	"strings"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
	"github.com/KirkDiggler/rpg-sheet/internal/orchestrators/rolls"
)

func (h *Handler) listCharacters(w http.ResponseWriter, r *http.Request) {
	out, err := h.rollService.ListCharacters(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := charactersResponse{Names: out.Names}
	if resp.Names == nil {
		resp.Names = []string{}
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getCharacter(w http.ResponseWriter, r *http.Request) {
	out, err := h.rollService.GetCharacter(r.Context(), &rolls.GetCharacterInput{
		Name: r.PathValue("name"),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, out.Character)
}

// saveCharacter stores the body under the path name. A body naming a
// different character is rejected; an unnamed body takes the path name.
func (h *Handler) saveCharacter(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	var sheet dnd5e.Character
	if err := decode(r, &sheet); err != nil {
		h.writeError(w, err)
		return
	}

	switch {
	case strings.TrimSpace(sheet.Name) == "":
		sheet.Name = name
	case !strings.EqualFold(strings.TrimSpace(sheet.Name), strings.TrimSpace(name)):
		h.writeError(w, errors.InvalidArgumentf("sheet name %q does not match %q", sheet.Name, name))
		return
	}

	out, err := h.rollService.SaveCharacter(r.Context(), &rolls.SaveCharacterInput{Character: &sheet})
	if err != nil {
		h.writeError(w, err)
		return
	}

	status := http.StatusOK
	if out.Created {
		status = http.StatusCreated
	}
	h.writeJSON(w, status, out.Character)
}

func (h *Handler) deleteCharacter(w http.ResponseWriter, r *http.Request) {
	err := h.rollService.DeleteCharacter(r.Context(), &rolls.DeleteCharacterInput{
		Name: r.PathValue("name"),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
