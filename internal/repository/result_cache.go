package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/modern-research-group/course-validator/internal/models"
)

const resultCachePrefix = "validation:result:"

// ResultCache stores validation results in Redis keyed by a digest of the
// submitted transcript. Validation is deterministic for a fixed catalog, so
// a digest hit can be served without re-running the engine.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultCache constructs a cache with the given TTL.
func NewResultCache(client *redis.Client, ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &ResultCache{client: client, ttl: ttl}
}

// Key derives the cache key for a transcript.
func (c *ResultCache) Key(transcript models.Transcript) (string, error) {
	raw, err := json.Marshal(transcript)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return resultCachePrefix + hex.EncodeToString(sum[:]), nil
}

// Get returns the cached result for the key, or (nil, nil) on a miss.
func (c *ResultCache) Get(ctx context.Context, key string) (*models.ValidationResult, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var result models.ValidationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Set stores a result under the key.
func (c *ResultCache) Set(ctx context.Context, key string, result models.ValidationResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}
