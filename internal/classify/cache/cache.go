// Package cache provides a Redis-backed classification cache. The consuming
// form UI debounces per keystroke and repeats identical lookups, so results
// are cached briefly by trimmed input value.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pidkit/internal/classify/models"
)

const keyPrefix = "pidkit:classify:"

// Cache stores classification results in Redis with a TTL.
type Cache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// New constructs a Cache over the given Redis client.
func New(client redis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get looks up a previously cached classification. The second return value
// reports whether the value was present.
func (c *Cache) Get(ctx context.Context, value string) (models.Classification, bool, error) {
	payload, err := c.client.Get(ctx, keyPrefix+value).Result()
	if errors.Is(err, redis.Nil) {
		return models.Classification{}, false, nil
	}
	if err != nil {
		return models.Classification{}, false, fmt.Errorf("cache get: %w", err)
	}

	var classification models.Classification
	if err := json.Unmarshal([]byte(payload), &classification); err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten.
		return models.Classification{}, false, nil
	}
	return classification, true, nil
}

// Set stores a classification under the trimmed input value.
func (c *Cache) Set(ctx context.Context, value string, classification models.Classification) error {
	payload, err := json.Marshal(classification)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, keyPrefix+value, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}
