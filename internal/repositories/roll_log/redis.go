package rolllog

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-sheet/internal/redis"
)

const defaultKey = "roll_log"

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	// Key overrides the list key, letting several tables share a server
	Key string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	key    string
}

// NewRedisRepository creates a roll log backed by a Redis list
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	key := cfg.Key
	if key == "" {
		key = defaultKey
	}

	return &redisRepository{
		client: cfg.Client,
		key:    key,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

// Append pushes the roll onto the head of the list and trims the tail
func (r *redisRepository) Append(ctx context.Context, input AppendInput) error {
	if err := validateRoll(input.Roll); err != nil {
		return err
	}

	rollJSON, err := json.Marshal(input.Roll)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal roll")
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, r.key, rollJSON)
		pipe.LTrim(ctx, r.key, 0, MaxRolls-1)
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "failed to append roll to Redis")
	}

	return nil
}

// Query reads the list newest first and filters by timestamp
func (r *redisRepository) Query(ctx context.Context, input QueryInput) (*QueryOutput, error) {
	raw, err := r.client.LRange(ctx, r.key, 0, MaxRolls-1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read roll log from Redis")
	}

	rolls := make([]dnd5e.SharedRollResult, 0, len(raw))
	for _, item := range raw {
		var roll dnd5e.SharedRollResult
		if err := json.Unmarshal([]byte(item), &roll); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal roll")
		}
		if matches(roll, input.Since) {
			rolls = append(rolls, roll)
		}
	}

	return &QueryOutput{Rolls: rolls}, nil
}
