// Package v1alpha1 handles the generic API grpc service interface
package v1alpha1

import (
	"context"

	"go.uber.org/zap"

	apiv1alpha1 "github.com/KirkDiggler/rpg-api-protos/gen/go/clients/api/v1alpha1"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
	"github.com/KirkDiggler/rpg-sheet/internal/orchestrators/rolls"
)

// DiceHandlerConfig holds dependencies for the dice handler
type DiceHandlerConfig struct {
	RollService rolls.Service
	Logger      *zap.Logger
}

// Validate ensures all required dependencies are present
func (c *DiceHandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.RollService == nil {
		vb.RequiredField("RollService")
	}
	if c.Logger == nil {
		vb.RequiredField("Logger")
	}

	return vb.Build()
}

// DiceHandler implements the generic dice gRPC service on top of character
// roll history. The entity id names the character.
type DiceHandler struct {
	apiv1alpha1.UnimplementedDiceServiceServer
	rollService rolls.Service
	logger      *zap.Logger
}

// NewDiceHandler creates a new dice handler with the given configuration
func NewDiceHandler(cfg *DiceHandlerConfig) (*DiceHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &DiceHandler{
		rollService: cfg.RollService,
		logger:      cfg.Logger,
	}, nil
}

// RollDice rolls a custom formula for the entity and returns its recent rolls
func (h *DiceHandler) RollDice(
	ctx context.Context,
	req *apiv1alpha1.RollDiceRequest,
) (*apiv1alpha1.RollDiceResponse, error) {
	if req.EntityId == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("entity_id is required"))
	}
	if req.Notation == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("notation is required"))
	}

	rollOutput, err := h.rollService.RollCustom(ctx, &rolls.RollCustomInput{
		CharacterName: req.EntityId,
		Name:          rollLabel(req.Context, req.ModifierDescription),
		Formula:       req.Notation,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	historyOutput, err := h.rollService.GetHistory(ctx, &rolls.GetHistoryInput{
		CharacterName: req.EntityId,
	})
	if err != nil {
		// The roll already happened; answer with it alone.
		h.logger.Warn("failed to load roll history after roll",
			zap.String("entity_id", req.EntityId),
			zap.Error(err),
		)
		return &apiv1alpha1.RollDiceResponse{
			Rolls: []*apiv1alpha1.DiceRoll{convertRollToProto(rollOutput.Roll)},
		}, nil
	}

	return &apiv1alpha1.RollDiceResponse{
		Rolls:     convertRollsToProto(historyOutput.History.Rolls),
		ExpiresAt: unixOrZero(historyOutput.History),
	}, nil
}

// GetRollSession returns the entity's recent rolls, newest first
func (h *DiceHandler) GetRollSession(
	ctx context.Context,
	req *apiv1alpha1.GetRollSessionRequest,
) (*apiv1alpha1.GetRollSessionResponse, error) {
	if req.EntityId == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("entity_id is required"))
	}

	out, err := h.rollService.GetHistory(ctx, &rolls.GetHistoryInput{
		CharacterName: req.EntityId,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	history := out.History
	resp := &apiv1alpha1.GetRollSessionResponse{
		Rolls:     convertRollsToProto(history.Rolls),
		ExpiresAt: unixOrZero(history),
	}
	if n := len(history.Rolls); n > 0 {
		resp.CreatedAt = history.Rolls[n-1].Timestamp.Unix()
	}

	return resp, nil
}

// ClearRollSession removes the entity's recent rolls
func (h *DiceHandler) ClearRollSession(
	ctx context.Context,
	req *apiv1alpha1.ClearRollSessionRequest,
) (*apiv1alpha1.ClearRollSessionResponse, error) {
	if req.EntityId == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("entity_id is required"))
	}

	out, err := h.rollService.ClearHistory(ctx, &rolls.ClearHistoryInput{
		CharacterName: req.EntityId,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &apiv1alpha1.ClearRollSessionResponse{
		Message:      "Roll history cleared successfully",
		RollsCleared: out.RollsCleared,
	}, nil
}

func rollLabel(label, description string) string {
	switch {
	case label == "":
		return description
	case description == "":
		return label
	default:
		return label + " (" + description + ")"
	}
}

func unixOrZero(history *dnd5e.RollHistory) int64 {
	if history == nil || history.ExpiresAt.IsZero() {
		return 0
	}
	return history.ExpiresAt.Unix()
}

func convertRollsToProto(results []dnd5e.RollResult) []*apiv1alpha1.DiceRoll {
	out := make([]*apiv1alpha1.DiceRoll, 0, len(results))
	for _, roll := range results {
		out = append(out, convertRollToProto(roll))
	}
	return out
}

func convertRollToProto(roll dnd5e.RollResult) *apiv1alpha1.DiceRoll {
	dice := make([]int32, len(roll.Rolls))
	for i, d := range roll.Rolls {
		dice[i] = int32(d)
	}

	return &apiv1alpha1.DiceRoll{
		RollId:      roll.ID,
		Notation:    roll.Formula,
		Dice:        dice,
		Total:       int32(roll.Total),
		Description: roll.Name,
		DiceTotal:   int32(roll.DiceTotal()),
		Modifier:    int32(roll.Modifier),
	}
}
