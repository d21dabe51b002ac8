// Package v1 serves the roll API over HTTP and streams shared rolls over a
// websocket
package v1

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-sheet/internal/errors"
	"github.com/KirkDiggler/rpg-sheet/internal/orchestrators/rolls"
)

const maxBodyBytes = 1 << 20

// HandlerConfig holds dependencies for the HTTP handler
type HandlerConfig struct {
	RollService rolls.Service
	Hub         *Hub
	Logger      *zap.Logger
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.RollService == nil {
		vb.RequiredField("RollService")
	}
	if c.Hub == nil {
		vb.RequiredField("Hub")
	}
	if c.Logger == nil {
		vb.RequiredField("Logger")
	}

	return vb.Build()
}

// Handler implements the HTTP roll API
type Handler struct {
	rollService rolls.Service
	hub         *Hub
	logger      *zap.Logger
}

// NewHandler creates a new HTTP handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Handler{
		rollService: cfg.RollService,
		hub:         cfg.Hub,
		logger:      cfg.Logger,
	}, nil
}

// Routes returns the API routes wrapped in request logging and panic recovery
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.health)

	mux.HandleFunc("GET /rolls", h.listSharedRolls)
	mux.HandleFunc("POST /rolls", h.shareRoll)
	mux.Handle("GET /rolls/stream", h.hub)

	mux.HandleFunc("GET /characters", h.listCharacters)
	mux.HandleFunc("GET /characters/{name}", h.getCharacter)
	mux.HandleFunc("PUT /characters/{name}", h.saveCharacter)
	mux.HandleFunc("DELETE /characters/{name}", h.deleteCharacter)

	mux.HandleFunc("POST /characters/{name}/rolls", h.roll)
	mux.HandleFunc("GET /characters/{name}/rolls", h.getHistory)
	mux.HandleFunc("DELETE /characters/{name}/rolls", h.clearHistory)
	mux.HandleFunc("POST /characters/{name}/spells/{spell}/rolls", h.rollSpell)

	mux.HandleFunc("POST /bonus-damage", h.listBonusDamage)

	return recoverPanics(h.logger, logRequests(h.logger, mux))
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}

	h.writeJSON(w, status, errorResponse{
		Code:    errors.GetCode(err).String(),
		Message: errors.GetMessage(err),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Warn("failed to write response", zap.Error(err))
	}
}

// decode reads a JSON body into dst. An empty body leaves dst untouched.
func decode(r *http.Request, dst any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst)
	if err == nil || err == io.EOF {
		return nil
	}
	return errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid request body")
}
