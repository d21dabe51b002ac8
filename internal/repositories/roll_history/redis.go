package rollhistory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
	"github.com/KirkDiggler/rpg-sheet/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-sheet/internal/redis"
)

const (
	// Key pattern: roll_history:{character_name}
	historyKeyPrefix = "roll_history:"
	// DefaultTTL is how long an idle history is kept
	DefaultTTL = 24 * time.Hour

	// Error messages
	errCharacterNameEmpty = "character name cannot be empty"
	errRollIDEmpty        = "roll ID cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

// getter is satisfied by both the client and a WATCH transaction
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for roll histories
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Append prepends the roll inside a WATCH transaction so concurrent rolls for
// the same character do not overwrite each other.
func (r *redisRepository) Append(ctx context.Context, input AppendInput) (*AppendOutput, error) {
	if input.CharacterName == "" {
		return nil, errors.InvalidArgument(errCharacterNameEmpty)
	}
	if input.Roll.ID == "" {
		return nil, errors.InvalidArgument(errRollIDEmpty)
	}

	ttl := input.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}
	key := r.buildKey(input.CharacterName)

	var history *dnd5e.RollHistory
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		existing, err := r.load(ctx, tx, key)
		if err != nil && !errors.IsNotFound(err) {
			return err
		}

		now := r.clock.Now()
		if existing == nil {
			existing = &dnd5e.RollHistory{CharacterName: input.CharacterName}
		}

		rolls := append([]dnd5e.RollResult{input.Roll}, existing.Rolls...)
		if len(rolls) > MaxRolls {
			rolls = rolls[:MaxRolls]
		}
		existing.Rolls = rolls
		existing.UpdatedAt = now
		existing.ExpiresAt = now.Add(ttl)

		historyJSON, err := json.Marshal(existing)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal history")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, historyJSON, ttl)
			return nil
		})
		if err != nil {
			return err
		}

		history = existing
		return nil
	}, key)
	if err != nil {
		if errors.IsNotFound(err) || errors.IsInvalidArgument(err) {
			return nil, err
		}
		return nil, errors.Wrapf(err, "failed to store history in Redis")
	}

	return &AppendOutput{
		History: history,
	}, nil
}

// Get retrieves a character's roll history
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.CharacterName == "" {
		return nil, errors.InvalidArgument(errCharacterNameEmpty)
	}

	history, err := r.load(ctx, r.client, r.buildKey(input.CharacterName))
	if err != nil {
		return nil, err
	}

	return &GetOutput{
		History: history,
	}, nil
}

// Clear removes a character's roll history and reports how many rolls it held
func (r *redisRepository) Clear(ctx context.Context, input ClearInput) (*ClearOutput, error) {
	if input.CharacterName == "" {
		return nil, errors.InvalidArgument(errCharacterNameEmpty)
	}

	key := r.buildKey(input.CharacterName)

	// Get the history first to count rolls
	var rollsCleared int32
	history, err := r.load(ctx, r.client, key)
	if err == nil {
		// nolint:gosec // history is bounded by MaxRolls
		rollsCleared = int32(len(history.Rolls))
	}

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to delete history from Redis")
	}

	return &ClearOutput{
		RollsCleared: rollsCleared,
	}, nil
}

func (r *redisRepository) load(ctx context.Context, cmd getter, key string) (*dnd5e.RollHistory, error) {
	historyJSON, err := cmd.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("roll history not found")
		}
		return nil, errors.Wrapf(err, "failed to get history from Redis")
	}

	var history dnd5e.RollHistory
	if err := json.Unmarshal([]byte(historyJSON), &history); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal history")
	}

	// Redis expiry normally removes it first
	if r.clock.Now().After(history.ExpiresAt) {
		return nil, errors.NotFound("roll history has expired")
	}

	return &history, nil
}

// buildKey creates the Redis key for a character's history
func (r *redisRepository) buildKey(characterName string) string {
	return fmt.Sprintf("%s%s", historyKeyPrefix, characterName)
}
