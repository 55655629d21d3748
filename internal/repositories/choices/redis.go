package choices

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	sberr "github.com/ironreach/steelbridge/internal/errors"
	"github.com/ironreach/steelbridge/internal/uuid"
)

// redisRepo implements Repository using Redis
type redisRepo struct {
	client        redis.UniversalClient
	uuidGenerator uuid.Generator
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client        redis.UniversalClient
	UUIDGenerator uuid.Generator // Optional, defaults to google uuid
}

// NewRedisRepository creates a new Redis-backed imported-character repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = uuid.NewGoogleUUIDGenerator()
	}

	return &redisRepo{
		client:        cfg.Client,
		uuidGenerator: gen,
	}
}

func importKey(id string) string {
	return fmt.Sprintf("import:%s", id)
}

func ownerKey(ownerID string) string {
	return fmt.Sprintf("import:owner:%s", ownerID)
}

// Create stores a new imported character
func (r *redisRepo) Create(ctx context.Context, imported *ImportedCharacter) error {
	if imported == nil {
		return sberr.InvalidArgument("imported character cannot be nil")
	}
	if imported.OwnerID == "" {
		return sberr.InvalidArgument("owner ID is required")
	}

	if imported.ID == "" {
		imported.ID = r.uuidGenerator.New()
	}
	if imported.ImportedAt.IsZero() {
		imported.ImportedAt = time.Now().UTC()
	}

	data, err := json.Marshal(imported)
	if err != nil {
		return sberr.Wrap(err, "failed to marshal imported character")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, importKey(imported.ID), data, 0)
	pipe.SAdd(ctx, ownerKey(imported.OwnerID), imported.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return sberr.Wrapf(err, "failed to store imported character '%s'", imported.ID)
	}

	return nil
}

// Get retrieves an imported character by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*ImportedCharacter, error) {
	if id == "" {
		return nil, sberr.InvalidArgument("id is required")
	}

	data, err := r.client.Get(ctx, importKey(id)).Result()
	if err == redis.Nil {
		return nil, sberr.NotFoundf("imported character '%s' not found", id).
			WithMeta("id", id)
	}
	if err != nil {
		return nil, sberr.Wrapf(err, "failed to get imported character '%s'", id)
	}

	return unmarshalImported([]byte(data))
}

// GetByOwner retrieves all imported characters for an owner
func (r *redisRepo) GetByOwner(ctx context.Context, ownerID string) ([]*ImportedCharacter, error) {
	if ownerID == "" {
		return nil, sberr.InvalidArgument("owner ID is required")
	}

	ids, err := r.client.SMembers(ctx, ownerKey(ownerID)).Result()
	if err != nil {
		return nil, sberr.Wrapf(err, "failed to list imports for owner '%s'", ownerID)
	}

	result := make([]*ImportedCharacter, 0, len(ids))
	for _, id := range ids {
		imported, err := r.Get(ctx, id)
		if err != nil {
			if sberr.IsNotFound(err) {
				// Stale index entry; skip it
				continue
			}
			return nil, err
		}
		result = append(result, imported)
	}

	return result, nil
}

// Delete removes an imported character
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return sberr.InvalidArgument("id is required")
	}

	imported, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, importKey(id))
	pipe.SRem(ctx, ownerKey(imported.OwnerID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return sberr.Wrapf(err, "failed to delete imported character '%s'", id)
	}

	return nil
}

// unmarshalImported decodes a stored record and restores the scalar/list
// split on choice values, which JSON decoding flattens to []any.
func unmarshalImported(data []byte) (*ImportedCharacter, error) {
	var imported ImportedCharacter
	if err := json.Unmarshal(data, &imported); err != nil {
		return nil, sberr.Wrap(err, "corrupt imported character record")
	}

	for guid, value := range imported.Choices {
		list, ok := value.([]any)
		if !ok {
			continue
		}
		ids := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				ids = append(ids, s)
			}
		}
		imported.Choices[guid] = ids
	}

	return &imported, nil
}
