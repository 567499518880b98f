package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nitesh/content_service/pkg/models"
)

const keyPrefix = "content:suggest:"

// SuggestCache stores suggestion responses in Redis for a short TTL.
type SuggestCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSuggestCache(rdb *redis.Client, ttl time.Duration) *SuggestCache {
	return &SuggestCache{rdb: rdb, ttl: ttl}
}

// Key derives a cache key from the normalized request parameters.
func Key(term string, lang models.Language, types []models.EntityType, limit, perType int, meta bool) string {
	raw := fmt.Sprintf("%s|%s|%v|%d|%d|%t", term, lang, types, limit, perType, meta)
	sum := sha1.Sum([]byte(raw))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached response, or (nil, nil) on a miss.
func (c *SuggestCache) Get(ctx context.Context, key string) (*models.SuggestResponse, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var out models.SuggestResponse
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode cached suggestions: %w", err)
	}
	return &out, nil
}

func (c *SuggestCache) Set(ctx context.Context, key string, res *models.SuggestResponse) error {
	b, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode suggestions: %w", err)
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
