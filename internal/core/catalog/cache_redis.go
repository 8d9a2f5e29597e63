// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores catalogue entries as JSON strings with a TTL.
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisCache wraps a connected client. A non-positive ttl stores entries without expiry.
func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Get implements [Cache]. A missing key is not an error.
func (cache *RedisCache) Get(ctx context.Context, key string, target any) (bool, error) {
	raw, err := cache.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("catalog: redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return false, fmt.Errorf("catalog: decode cached %s: %w", key, err)
	}
	return true, nil
}

// Set implements [Cache].
func (cache *RedisCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("catalog: encode %s: %w", key, err)
	}

	ttl := cache.ttl
	if ttl < 0 {
		ttl = 0
	}

	if err := cache.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("catalog: redis set %s: %w", key, err)
	}
	return nil
}
