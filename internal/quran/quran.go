// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package quran defines the canonical Chapter/Verse model shared by every layer.

Upstream providers disagree on field names and nesting. The normalizer turns
their payloads into the types declared here, and nothing past the normalizer
ever looks at a provider shape again.

Lifecycle:

  - Chapters and verses are populated once from a provider and are read-only afterwards.
  - Derived fields (annotated markup, audio locator) are filled per request on copies.
*/
package quran

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/taibuivan/tilawa/pkg/slug"
)

// ChapterCount is the number of chapters in the Quran.
const ChapterCount = 114

// MaxVerseCount is the verse count of the longest chapter, Al-Baqarah.
const MaxVerseCount = 286

// # Revelation Place

// Revelation classifies where a chapter was revealed.
type Revelation int

const (
	// Meccan is the default bucket for unmatched or absent values.
	Meccan Revelation = iota
	Medinan
)

// String returns the lowercase wire form.
func (revelation Revelation) String() string {
	if revelation == Medinan {
		return "medinan"
	}
	return "meccan"
}

// MarshalJSON renders the revelation as its wire string.
func (revelation Revelation) MarshalJSON() ([]byte, error) {
	return json.Marshal(revelation.String())
}

// UnmarshalJSON accepts the wire string produced by MarshalJSON.
func (revelation *Revelation) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("quran: revelation must be a string: %w", err)
	}

	switch strings.ToLower(text) {
	case "medinan":
		*revelation = Medinan
	case "meccan", "":
		*revelation = Meccan
	default:
		return fmt.Errorf("quran: unknown revelation %q", text)
	}
	return nil
}

// # Entities

// Verse is one numbered unit (ayah) within a chapter.
type Verse struct {
	Chapter         int               `json:"chapter"`
	Number          int               `json:"number"`
	Arabic          string            `json:"arabic"`
	Translations    map[string]string `json:"translations,omitempty"`
	Transliteration string            `json:"transliteration,omitempty"`

	// Annotated holds tajwid markup. It is derived and never stored.
	Annotated string `json:"annotated,omitempty"`

	// Audio is the derived recitation locator for the selected reciter.
	Audio string `json:"audio,omitempty"`
}

// Translation returns the translation for lang, then for fallback, then any.
func (verse Verse) Translation(lang, fallback string) string {
	if text, ok := verse.Translations[lang]; ok {
		return text
	}
	if text, ok := verse.Translations[fallback]; ok {
		return text
	}
	if code, ok := verse.FirstTranslationCode(); ok {
		return verse.Translations[code]
	}
	return ""
}

// FirstTranslationCode returns the alphabetically first language code, so a
// fallback pick does not depend on map order.
func (verse Verse) FirstTranslationCode() (string, bool) {
	if len(verse.Translations) == 0 {
		return "", false
	}
	codes := make([]string, 0, len(verse.Translations))
	for code := range verse.Translations {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes[0], true
}

// Chapter is one of the 114 surahs with its ordered verses.
type Chapter struct {
	Number      int        `json:"number"`
	Name        string     `json:"name"`
	ArabicName  string     `json:"arabic_name"`
	Translation string     `json:"translation"`
	Revelation  Revelation `json:"revelation"`
	VerseCount  int        `json:"verse_count"`
	Bismillah   string     `json:"bismillah,omitempty"`
	Verses      []Verse    `json:"verses"`
}

// ChapterSummary is a chapter without its verses, used by list views.
type ChapterSummary struct {
	Number      int        `json:"number"`
	Slug        string     `json:"slug"`
	Name        string     `json:"name"`
	ArabicName  string     `json:"arabic_name"`
	Translation string     `json:"translation"`
	Revelation  Revelation `json:"revelation"`
	VerseCount  int        `json:"verse_count"`
}

// Summary drops the verse collection and derives the slug from the name.
func (chapter Chapter) Summary() ChapterSummary {
	return ChapterSummary{
		Number:      chapter.Number,
		Slug:        slug.From(chapter.Name),
		Name:        chapter.Name,
		ArabicName:  chapter.ArabicName,
		Translation: chapter.Translation,
		Revelation:  chapter.Revelation,
		VerseCount:  chapter.VerseCount,
	}
}

// Loaded reports whether every verse announced by VerseCount is present.
func (chapter Chapter) Loaded() bool {
	return len(chapter.Verses) > 0 && len(chapter.Verses) == chapter.VerseCount
}

// Verse looks up a verse by its position in the chapter.
func (chapter Chapter) Verse(number int) (Verse, bool) {

	// Positions are usually contiguous, so try the direct index first.
	if number >= 1 && number <= len(chapter.Verses) && chapter.Verses[number-1].Number == number {
		return chapter.Verses[number-1], true
	}

	for _, verse := range chapter.Verses {
		if verse.Number == number {
			return verse, true
		}
	}
	return Verse{}, false
}

// # Range Checks

// ValidChapter reports whether n is a chapter number.
func ValidChapter(n int) bool {
	return n >= 1 && n <= ChapterCount
}

// ValidVerse reports whether n is a verse position of chapter.
func ValidVerse(chapter ChapterSummary, n int) bool {
	return n >= 1 && n <= chapter.VerseCount
}
