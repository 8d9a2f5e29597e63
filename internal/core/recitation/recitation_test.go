// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recitation_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tilawa/internal/core/recitation"
	"github.com/taibuivan/tilawa/internal/quran"
)

func TestDefaultCatalog(t *testing.T) {
	catalog, err := recitation.DefaultCatalog("")
	require.NoError(t, err)

	reciters := catalog.List()
	require.Len(t, reciters, 10)
	assert.Equal(t, 1, reciters[0].ID)
	assert.Equal(t, "Alafasy_128kbps", catalog.Default().Path)
	assert.Equal(t, recitation.DefaultBaseURL, catalog.BaseURL())

	reciter, ok := catalog.Get(4)
	require.True(t, ok)
	assert.Equal(t, "Husary_128kbps", reciter.Path)

	_, ok = catalog.Get(99)
	assert.False(t, ok)

	// List hands out a copy.
	reciters[0].Path = "changed"
	assert.Equal(t, "Alafasy_128kbps", catalog.List()[0].Path)
}

func TestNewCatalog_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		reciters []recitation.Reciter
	}{
		{"missing_default", []recitation.Reciter{{ID: 2, Name: "B", Path: "b"}}},
		{"duplicate_id", []recitation.Reciter{{ID: 1, Path: "a"}, {ID: 1, Path: "b"}}},
		{"blank_path", []recitation.Reciter{{ID: 1, Path: "  "}}},
		{"zero_id", []recitation.Reciter{{ID: 1, Path: "a"}, {ID: 0, Path: "b"}}},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := recitation.NewCatalog(tt.reciters, "")
			assert.Error(t, err)
		})
	}
}

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reciters.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":1,"name":"A","path":"a_64kbps"}]`), 0o600))

	catalog, err := recitation.LoadCatalogFile(path, "https://audio.example/data/")
	require.NoError(t, err)
	assert.Equal(t, "https://audio.example/data", catalog.BaseURL())
	assert.Equal(t, "https://audio.example/data/a_64kbps/001001.mp3", catalog.Locator(catalog.Default(), 1, 1))

	_, err = recitation.LoadCatalogFile(filepath.Join(t.TempDir(), "missing.json"), "")
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{"id":1}`), 0o600))
	_, err = recitation.LoadCatalogFile(path, "")
	assert.Error(t, err)
}

func TestCatalog_Select(t *testing.T) {
	catalog, err := recitation.DefaultCatalog("")
	require.NoError(t, err)

	reciter, err := catalog.Select(0)
	require.NoError(t, err)
	assert.Equal(t, recitation.DefaultReciterID, reciter.ID)

	reciter, err = catalog.Select(3)
	require.NoError(t, err)
	assert.Equal(t, 3, reciter.ID)

	_, err = catalog.Select(42)
	assert.ErrorIs(t, err, recitation.ErrUnknownReciter)
}

func TestLocator(t *testing.T) {
	alafasy := recitation.Reciter{ID: 1, Path: "Alafasy_128kbps"}

	tests := []struct {
		name    string
		base    string
		reciter recitation.Reciter
		chapter int
		verse   int
		want    string
	}{
		{"pads_both_numbers", "https://everyayah.com/data", alafasy, 1, 1, "https://everyayah.com/data/Alafasy_128kbps/001001.mp3"},
		{"three_digit_numbers", "https://everyayah.com/data", alafasy, 2, 255, "https://everyayah.com/data/Alafasy_128kbps/002255.mp3"},
		{"last_chapter", "https://everyayah.com/data", alafasy, 114, 6, "https://everyayah.com/data/Alafasy_128kbps/114006.mp3"},
		{"trims_slashes", "https://cdn.example/", recitation.Reciter{Path: "/Husary_128kbps/"}, 36, 12, "https://cdn.example/Husary_128kbps/036012.mp3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recitation.Locator(tt.base, tt.reciter, tt.chapter, tt.verse))
		})
	}
}

func TestRepeatMode(t *testing.T) {
	assert.Equal(t, recitation.RepeatAll, recitation.RepeatNone.Next())
	assert.Equal(t, recitation.RepeatOne, recitation.RepeatAll.Next())
	assert.Equal(t, recitation.RepeatNone, recitation.RepeatOne.Next())
	assert.Equal(t, recitation.RepeatNone, recitation.RepeatMode("shuffle").Next())

	mode, err := recitation.ParseRepeatMode(" ALL ")
	require.NoError(t, err)
	assert.Equal(t, recitation.RepeatAll, mode)

	mode, err = recitation.ParseRepeatMode("")
	require.NoError(t, err)
	assert.Equal(t, recitation.RepeatNone, mode)

	_, err = recitation.ParseRepeatMode("shuffle")
	assert.Error(t, err)

	assert.Equal(t, []string{"none", "all", "one"}, recitation.RepeatModes())
}

func TestNextVerse(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		current int
		mode    recitation.RepeatMode
		want    int
		playing bool
	}{
		{"none_continues", 7, 3, recitation.RepeatNone, 4, true},
		{"none_stops_at_end", 7, 7, recitation.RepeatNone, 0, false},
		{"one_repeats_middle", 7, 3, recitation.RepeatOne, 3, true},
		{"one_repeats_last", 7, 7, recitation.RepeatOne, 7, true},
		{"all_continues", 7, 3, recitation.RepeatAll, 4, true},
		{"all_wraps", 7, 7, recitation.RepeatAll, 1, true},
		{"single_verse_all", 1, 1, recitation.RepeatAll, 1, true},
		{"current_out_of_range", 7, 8, recitation.RepeatAll, 0, false},
		{"empty_chapter", 0, 1, recitation.RepeatAll, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, playing := recitation.NextVerse(tt.count, tt.current, tt.mode)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.playing, playing)
		})
	}
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name     string
		cue      recitation.Cue
		count    int
		mode     recitation.RepeatMode
		autoplay bool
		want     recitation.Cue
		playing  bool
	}{
		{"within_chapter", recitation.Cue{Chapter: 1, Verse: 3}, 7, recitation.RepeatNone, true, recitation.Cue{Chapter: 1, Verse: 4}, true},
		{"autoplay_next_chapter", recitation.Cue{Chapter: 1, Verse: 7}, 7, recitation.RepeatNone, true, recitation.Cue{Chapter: 2, Verse: 1}, true},
		{"no_autoplay_stops", recitation.Cue{Chapter: 1, Verse: 7}, 7, recitation.RepeatNone, false, recitation.Cue{}, false},
		{"last_chapter_stops", recitation.Cue{Chapter: 114, Verse: 6}, 6, recitation.RepeatNone, true, recitation.Cue{}, false},
		{"all_wraps_instead_of_autoplay", recitation.Cue{Chapter: 1, Verse: 7}, 7, recitation.RepeatAll, true, recitation.Cue{Chapter: 1, Verse: 1}, true},
		{"one_stays", recitation.Cue{Chapter: 112, Verse: 4}, 4, recitation.RepeatOne, true, recitation.Cue{Chapter: 112, Verse: 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, playing := recitation.Advance(tt.cue, tt.count, tt.mode, tt.autoplay)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.playing, playing)
		})
	}
}

func TestCatalog_Playlist(t *testing.T) {
	catalog, err := recitation.DefaultCatalog("https://audio.example")
	require.NoError(t, err)

	ikhlas := quran.ChapterSummary{Number: 112, VerseCount: 4}

	playlist := catalog.Playlist(ikhlas, catalog.Default(), 3)
	assert.Equal(t, 112, playlist.Chapter)
	assert.Equal(t, 3, playlist.Start)
	assert.Equal(t, []recitation.Track{
		{Verse: 3, Audio: "https://audio.example/Alafasy_128kbps/112003.mp3"},
		{Verse: 4, Audio: "https://audio.example/Alafasy_128kbps/112004.mp3"},
	}, playlist.Tracks)

	for _, start := range []int{0, -2, 5} {
		playlist = catalog.Playlist(ikhlas, catalog.Default(), start)
		assert.Equal(t, 1, playlist.Start)
		assert.Len(t, playlist.Tracks, 4)
	}
}
