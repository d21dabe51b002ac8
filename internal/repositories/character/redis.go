package character

import (
	"context"
	"encoding/json"
	"slices"
	"strings"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-sheet/internal/redis"
)

const (
	characterKeyPrefix = "character:"
	// Hash of folded name -> name as written on the sheet
	nameIndexKey = "character_names"

	// Error messages
	errCharacterNil       = "character cannot be nil"
	errCharacterNameEmpty = "character name cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis character repository.
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed character repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client: cfg.Client,
	}, nil
}

// foldName makes "Grog", "grog " and "GROG" the same sheet
func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Character == nil {
		return nil, errors.InvalidArgument(errCharacterNil)
	}
	folded := foldName(input.Character.Name)
	if folded == "" {
		return nil, errors.InvalidArgument(errCharacterNameEmpty)
	}

	key := characterKeyPrefix + folded

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}

	data, err := json.Marshal(input.Character)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal character data")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0) // No TTL for sheets
	pipe.HSet(ctx, nameIndexKey, folded, strings.TrimSpace(input.Character.Name))

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to save character")
	}

	return &SaveOutput{Character: input.Character, Created: exists == 0}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	folded := foldName(input.Name)
	if folded == "" {
		return nil, errors.InvalidArgument(errCharacterNameEmpty)
	}

	result, err := r.client.Get(ctx, characterKeyPrefix+folded).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("character %s not found", input.Name)
		}
		return nil, errors.Wrapf(err, "failed to get character")
	}

	var sheet dnd5e.Character
	if err := json.Unmarshal([]byte(result), &sheet); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal character data")
	}

	return &GetOutput{Character: &sheet}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	folded := foldName(input.Name)
	if folded == "" {
		return nil, errors.InvalidArgument(errCharacterNameEmpty)
	}

	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, characterKeyPrefix+folded)
	pipe.HDel(ctx, nameIndexKey, folded)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete character")
	}
	if del.Val() == 0 {
		return nil, errors.NotFoundf("character %s not found", input.Name)
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	names, err := r.client.HVals(ctx, nameIndexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list characters")
	}

	slices.SortFunc(names, func(a, b string) int {
		return strings.Compare(foldName(a), foldName(b))
	})
	return &ListOutput{Names: names}, nil
}
