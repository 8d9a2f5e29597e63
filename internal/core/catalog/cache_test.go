// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tilawa/internal/core/catalog"
	"github.com/taibuivan/tilawa/internal/quran"
)

func TestChapterKey(t *testing.T) {
	assert.Equal(t, "catalog:chapter:36", catalog.ChapterKey(36))
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cache := catalog.NewMemoryCache(time.Minute)
	cache.SetClock(func() time.Time { return now })

	var missing quran.Chapter
	hit, err := cache.Get(ctx, "absent", &missing)
	require.NoError(t, err)
	assert.False(t, hit)

	stored := quran.Chapter{Number: 1, Name: "Al-Fatihah", Verses: []quran.Verse{{Chapter: 1, Number: 1, Arabic: "a"}}}
	require.NoError(t, cache.Set(ctx, catalog.ChapterKey(1), stored))

	// Mutating the original does not reach the cache.
	stored.Verses[0].Arabic = "changed"

	var loaded quran.Chapter
	hit, err = cache.Get(ctx, catalog.ChapterKey(1), &loaded)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, "a", loaded.Verses[0].Arabic)

	now = now.Add(time.Minute)
	hit, err = cache.Get(ctx, catalog.ChapterKey(1), &loaded)
	require.NoError(t, err)
	assert.False(t, hit, "entry expires after the ttl")
	assert.Zero(t, cache.Len())
}

func TestMemoryCache_NoExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	cache := catalog.NewMemoryCache(0)
	cache.SetClock(func() time.Time { return now })
	require.NoError(t, cache.Set(ctx, "key", catalog.Listing{Fallback: true}))

	now = now.Add(24 * 365 * time.Hour)

	var listing catalog.Listing
	hit, err := cache.Get(ctx, "key", &listing)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.True(t, listing.Fallback)
}

func TestMemoryCache_Errors(t *testing.T) {
	ctx := context.Background()
	cache := catalog.NewMemoryCache(time.Minute)

	assert.Error(t, cache.Set(ctx, "bad", make(chan int)))

	require.NoError(t, cache.Set(ctx, "text", "not a chapter"))
	var chapter quran.Chapter
	_, err := cache.Get(ctx, "text", &chapter)
	assert.Error(t, err)
}

func TestRedisCache_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	cache := catalog.NewRedisCache(client, time.Minute)
	ctx := context.Background()

	var listing catalog.Listing
	hit, err := cache.Get(ctx, "catalog:chapters", &listing)
	assert.Error(t, err)
	assert.False(t, hit)

	assert.Error(t, cache.Set(ctx, "catalog:chapters", listing))
	assert.Error(t, cache.Set(ctx, "catalog:chapters", make(chan int)))
}

// A service over an unreachable cache still answers from the upstream.
func TestService_CacheFailuresAreSoft(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	source := newStubSource(t)
	service, err := catalog.NewService(catalog.Dependencies{
		Source: source,
		Cache:  catalog.NewRedisCache(client, time.Minute),
	})
	require.NoError(t, err)

	listing, err := service.ListChapters(context.Background())
	require.NoError(t, err)
	assert.Len(t, listing.Chapters, 3)

	chapter, err := service.GetChapter(context.Background(), 2, catalog.View{})
	require.NoError(t, err)
	assert.Equal(t, 2, chapter.Number)
}
