// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/taibuivan/tilawa/internal/platform/constants"
)

// Cache stores catalogue entries as JSON under string keys.
type Cache interface {
	// Get decodes the entry at key into target and reports whether it was present.
	Get(ctx context.Context, key string, target any) (bool, error)

	// Set stores value at key for the cache's time to live.
	Set(ctx context.Context, key string, value any) error
}

// ChapterKey is the cache key of one normalized chapter.
func ChapterKey(number int) string {
	return constants.RedisPrefixChapter + strconv.Itoa(number)
}

// # In-Process Cache

type memoryEntry struct {
	raw     []byte
	expires time.Time
}

// MemoryCache keeps entries in process. Values are stored encoded so callers
// never share the cached structures.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache returns an empty cache. A non-positive ttl keeps entries forever.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get implements [Cache].
func (cache *MemoryCache) Get(_ context.Context, key string, target any) (bool, error) {
	cache.mu.RLock()
	entry, ok := cache.entries[key]
	cache.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if !entry.expires.IsZero() && !cache.now().Before(entry.expires) {
		cache.mu.Lock()
		delete(cache.entries, key)
		cache.mu.Unlock()
		return false, nil
	}

	if err := json.Unmarshal(entry.raw, target); err != nil {
		return false, fmt.Errorf("catalog: decode cached %s: %w", key, err)
	}
	return true, nil
}

// Set implements [Cache].
func (cache *MemoryCache) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("catalog: encode %s: %w", key, err)
	}

	entry := memoryEntry{raw: raw}
	if cache.ttl > 0 {
		entry.expires = cache.now().Add(cache.ttl)
	}

	cache.mu.Lock()
	cache.entries[key] = entry
	cache.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (cache *MemoryCache) Len() int {
	cache.mu.RLock()
	defer cache.mu.RUnlock()
	return len(cache.entries)
}
