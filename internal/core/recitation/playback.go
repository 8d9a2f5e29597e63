// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recitation

import (
	"fmt"
	"strings"

	"github.com/taibuivan/tilawa/internal/quran"
)

// # Repeat Mode

// RepeatMode decides what plays when a verse recording ends.
type RepeatMode string

const (
	// RepeatNone plays through to the end of the chapter and stops.
	RepeatNone RepeatMode = "none"

	// RepeatOne replays the same verse.
	RepeatOne RepeatMode = "one"

	// RepeatAll wraps to the first verse after the last one.
	RepeatAll RepeatMode = "all"
)

// RepeatModes lists the modes in the order the toggle visits them.
func RepeatModes() []string {
	return []string{string(RepeatNone), string(RepeatAll), string(RepeatOne)}
}

// ParseRepeatMode accepts a mode name in any case. An empty name is RepeatNone.
func ParseRepeatMode(text string) (RepeatMode, error) {
	switch mode := RepeatMode(strings.ToLower(strings.TrimSpace(text))); mode {
	case "":
		return RepeatNone, nil
	case RepeatNone, RepeatOne, RepeatAll:
		return mode, nil
	default:
		return "", fmt.Errorf("recitation: unknown repeat mode %q", text)
	}
}

// Next cycles none, all, one and back to none. Unknown modes restart at none.
func (mode RepeatMode) Next() RepeatMode {
	switch mode {
	case RepeatNone:
		return RepeatAll
	case RepeatAll:
		return RepeatOne
	default:
		return RepeatNone
	}
}

// # Continuation

/*
NextVerse decides which verse of the same chapter plays after current ends.

Parameters:
  - count: int (verses in the chapter)
  - current: int (the verse that just ended)
  - mode: RepeatMode

Returns:
  - int: The next verse position
  - bool: False when playback stops
*/
func NextVerse(count, current int, mode RepeatMode) (int, bool) {
	if count < 1 || current < 1 || current > count {
		return 0, false
	}

	switch {
	case mode == RepeatOne:
		return current, true
	case current < count:
		return current + 1, true
	case mode == RepeatAll:
		return 1, true
	default:
		return 0, false
	}
}

// Cue addresses one verse recording.
type Cue struct {
	Chapter int `json:"chapter"`
	Verse   int `json:"verse"`
}

// Following is the recording that plays after a verse ends.
type Following struct {
	Cue
	Audio string `json:"audio"`
}

// Advance extends [NextVerse] across chapters. With autoplay on and no repeat,
// the end of a chapter continues at the first verse of the following one;
// playback stops after the last chapter.
func Advance(cue Cue, verseCount int, mode RepeatMode, autoplay bool) (Cue, bool) {
	if verse, ok := NextVerse(verseCount, cue.Verse, mode); ok {
		return Cue{Chapter: cue.Chapter, Verse: verse}, true
	}

	if mode == RepeatNone && autoplay && cue.Verse == verseCount && cue.Chapter >= 1 && cue.Chapter < quran.ChapterCount {
		return Cue{Chapter: cue.Chapter + 1, Verse: 1}, true
	}
	return Cue{}, false
}

// # Playlist

// Track is one entry of a playlist.
type Track struct {
	Verse int    `json:"verse"`
	Audio string `json:"audio"`
}

// Playlist is the ordered recordings of a chapter from a starting verse.
type Playlist struct {
	Chapter int     `json:"chapter"`
	Reciter Reciter `json:"reciter"`
	Start   int     `json:"start"`
	Tracks  []Track `json:"tracks"`
}

// Playlist lists the recordings of chapter from start to its last verse.
// A start outside the chapter begins at verse 1.
func (catalog *Catalog) Playlist(chapter quran.ChapterSummary, reciter Reciter, start int) Playlist {
	if !quran.ValidVerse(chapter, start) {
		start = 1
	}

	tracks := make([]Track, 0, max(chapter.VerseCount-start+1, 0))
	for verse := start; verse <= chapter.VerseCount; verse++ {
		tracks = append(tracks, Track{
			Verse: verse,
			Audio: catalog.Locator(reciter, chapter.Number, verse),
		})
	}

	return Playlist{
		Chapter: chapter.Number,
		Reciter: reciter,
		Start:   start,
		Tracks:  tracks,
	}
}
