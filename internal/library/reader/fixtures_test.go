// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/taibuivan/tilawa/internal/core/catalog"
	"github.com/taibuivan/tilawa/internal/core/recitation"
	"github.com/taibuivan/tilawa/internal/library/reader"
	"github.com/taibuivan/tilawa/internal/platform/dberr"
)

// memoryRepository is an in-process [reader.Repository]. WithTx restores the
// previous state when fn fails.
type memoryRepository struct {
	mu        sync.Mutex
	bookmarks map[string][]reader.Bookmark
	positions map[string]map[int]int
	settings  map[string]reader.Settings
	failOn    string
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		bookmarks: make(map[string][]reader.Bookmark),
		positions: make(map[string]map[int]int),
		settings:  make(map[string]reader.Settings),
	}
}

var errStorage = errors.New("storage offline")

func (repository *memoryRepository) fail(operation string) error {
	if repository.failOn == operation {
		return errStorage
	}
	return nil
}

func (repository *memoryRepository) AddBookmark(_ context.Context, sessionID string, ref reader.VerseRef) (bool, error) {
	if err := repository.fail("add_bookmark"); err != nil {
		return false, err
	}
	for _, bookmark := range repository.bookmarks[sessionID] {
		if bookmark.Chapter == ref.Chapter && bookmark.Verse == ref.Verse {
			return false, nil
		}
	}
	repository.bookmarks[sessionID] = append(repository.bookmarks[sessionID], reader.Bookmark{
		Chapter:   ref.Chapter,
		Verse:     ref.Verse,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	return true, nil
}

func (repository *memoryRepository) RemoveBookmark(_ context.Context, sessionID string, ref reader.VerseRef) (bool, error) {
	if err := repository.fail("remove_bookmark"); err != nil {
		return false, err
	}
	bookmarks := repository.bookmarks[sessionID]
	for index, bookmark := range bookmarks {
		if bookmark.Chapter == ref.Chapter && bookmark.Verse == ref.Verse {
			repository.bookmarks[sessionID] = slices.Delete(slices.Clone(bookmarks), index, index+1)
			return true, nil
		}
	}
	return false, nil
}

func (repository *memoryRepository) ListBookmarks(_ context.Context, sessionID string, limit, offset int) ([]reader.Bookmark, int, error) {
	if err := repository.fail("list_bookmarks"); err != nil {
		return nil, 0, err
	}
	all := repository.bookmarks[sessionID]
	if offset >= len(all) {
		return []reader.Bookmark{}, 0, nil
	}
	end := min(offset+limit, len(all))
	return slices.Clone(all[offset:end]), len(all), nil
}

func (repository *memoryRepository) SavePosition(_ context.Context, sessionID string, ref reader.VerseRef) (reader.Position, error) {
	if err := repository.fail("save_position"); err != nil {
		return reader.Position{}, err
	}
	if repository.positions[sessionID] == nil {
		repository.positions[sessionID] = make(map[int]int)
	}
	repository.positions[sessionID][ref.Chapter] = ref.Verse
	now := time.Now()
	return reader.Position{Chapter: ref.Chapter, Verse: ref.Verse, UpdatedAt: &now}, nil
}

func (repository *memoryRepository) ListPositions(_ context.Context, sessionID string) ([]reader.Position, error) {
	var positions []reader.Position
	for _, chapter := range slices.Sorted(maps.Keys(repository.positions[sessionID])) {
		positions = append(positions, reader.Position{Chapter: chapter, Verse: repository.positions[sessionID][chapter]})
	}
	return positions, nil
}

func (repository *memoryRepository) FindPosition(_ context.Context, sessionID string, chapter int) (reader.Position, error) {
	verse, ok := repository.positions[sessionID][chapter]
	if !ok {
		return reader.Position{}, dberr.ErrNotFound
	}
	now := time.Now()
	return reader.Position{Chapter: chapter, Verse: verse, UpdatedAt: &now}, nil
}

func (repository *memoryRepository) FindSettings(_ context.Context, sessionID string) (reader.Settings, error) {
	settings, ok := repository.settings[sessionID]
	if !ok {
		return reader.Settings{}, dberr.ErrNotFound
	}
	return settings, nil
}

func (repository *memoryRepository) SaveSettings(_ context.Context, sessionID string, settings reader.Settings) error {
	if err := repository.fail("save_settings"); err != nil {
		return err
	}
	repository.settings[sessionID] = settings
	return nil
}

func (repository *memoryRepository) WithTx(_ context.Context, fn func(reader.Repository) error) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	bookmarks := maps.Clone(repository.bookmarks)
	positions := make(map[string]map[int]int, len(repository.positions))
	for session, chapters := range repository.positions {
		positions[session] = maps.Clone(chapters)
	}
	settings := maps.Clone(repository.settings)

	if err := fn(repository); err != nil {
		repository.bookmarks = bookmarks
		repository.positions = positions
		repository.settings = settings
		return err
	}
	return nil
}

// stubVerses resolves chapter 2 with 286 verses and chapter 1 with 7.
// Chapter 99 fails the lookup.
type stubVerses struct{}

func (stubVerses) VerseExists(_ context.Context, chapter, verse int) (catalog.Resolution, error) {
	counts := map[int]int{1: 7, 2: 286}
	if chapter == 99 {
		return "", errors.New("catalogue offline")
	}
	count, ok := counts[chapter]
	switch {
	case !ok:
		return catalog.ResolutionUnknown, nil
	case verse > count:
		return catalog.ResolutionStale, nil
	default:
		return catalog.ResolutionValid, nil
	}
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newReciters() *recitation.Catalog {
	reciters, err := recitation.DefaultCatalog("")
	if err != nil {
		panic(err)
	}
	return reciters
}

func newService(repository reader.Repository) *reader.Service {
	return reader.NewService(repository, stubVerses{}, newReciters(), discard())
}
