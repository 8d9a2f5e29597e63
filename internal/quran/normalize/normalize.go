// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package normalize converts loosely-typed provider payloads into the canonical
[quran.Chapter] model.

Providers disagree on envelopes, field names and nesting. Every canonical
field is resolved through an ordered list of alternate keys kept as data
(see aliases.yaml), so the normalizer never fails: fields that cannot be
resolved take a default, chapters with an unusable number are dropped, and a
payload with no chapter at all yields a small embedded fallback set.

Usage:

	payload, err := normalize.Decode(response.Body)
	if err != nil {
	    return err
	}
	result := normalize.Default().Normalize(payload)
	if result.Fallback {
	    // surface a "showing demo data" notice
	}
*/
package normalize

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/taibuivan/tilawa/internal/quran"
)

// maxWrapperDepth bounds how many envelopes are unwrapped, e.g. {data: {surahs: [...]}}.
const maxWrapperDepth = 3

// Result is the outcome of a normalization run.
type Result struct {
	Chapters []quran.Chapter `json:"chapters"`

	// Fallback is true when the payload held no usable chapter and Chapters
	// is the embedded demo set.
	Fallback bool `json:"fallback"`
}

// Normalizer resolves canonical fields with a fixed alias table. It holds no
// mutable state and is safe for concurrent use.
type Normalizer struct {
	aliases Aliases
	medinan []string
}

// New builds a Normalizer over the given alias table.
func New(aliases Aliases) *Normalizer {
	return &Normalizer{
		aliases: aliases,
		medinan: foldAll(aliases.Medinan),
	}
}

var (
	defaultOnce       sync.Once
	defaultNormalizer *Normalizer
)

// Default returns the Normalizer built from the embedded alias table.
func Default() *Normalizer {
	defaultOnce.Do(func() {
		defaultNormalizer = New(DefaultAliases())
	})
	return defaultNormalizer
}

// DefaultLanguage is the language code assigned to untagged translations.
func (normalizer *Normalizer) DefaultLanguage() string {
	return normalizer.aliases.DefaultLanguage
}

// Decode parses one JSON document, keeping numbers as [json.Number].
// Malformed JSON is reported to the caller; shape problems are not.
func Decode(reader io.Reader) (any, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber()

	var payload any
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("normalize: decode payload: %w", err)
	}
	return payload, nil
}

// # Normalization

// Normalize converts payload into canonical chapters. It never fails; see
// [Result.Fallback].
func (normalizer *Normalizer) Normalize(payload any) Result {
	chapters := normalizer.chapters(payload)
	if len(chapters) == 0 {
		return Result{Chapters: Fallback(), Fallback: true}
	}
	return Result{Chapters: chapters}
}

// chapters runs the field resolution without the fallback substitution.
func (normalizer *Normalizer) chapters(payload any) []quran.Chapter {
	candidates, ok := normalizer.candidates(payload, 0)
	if !ok {
		return nil
	}

	seen := make(map[int]bool, len(candidates))
	chapters := make([]quran.Chapter, 0, len(candidates))

	for index, candidate := range candidates {
		entry, ok := toObject(candidate)
		if !ok {
			continue
		}

		chapter := normalizer.chapter(entry, index)

		// A non-positive or repeated number drops the entry, not the payload.
		if chapter.Number <= 0 || seen[chapter.Number] {
			continue
		}
		seen[chapter.Number] = true
		chapters = append(chapters, chapter)
	}
	return chapters
}

// candidates locates the list of chapter-like entries.
func (normalizer *Normalizer) candidates(payload any, depth int) ([]any, bool) {
	switch value := payload.(type) {
	case []any:
		return value, true

	case map[string]any:
		if depth < maxWrapperDepth {
			for _, key := range normalizer.aliases.Wrappers {
				inner, ok := lookup(value, key)
				if !ok {
					continue
				}
				if found, ok := normalizer.candidates(inner, depth+1); ok {
					return found, true
				}
			}
		}

		if normalizer.chapterLike(value) {
			return []any{value}, true
		}
	}
	return nil, false
}

// chapterLike reports whether entry carries at least one resolvable chapter field.
func (normalizer *Normalizer) chapterLike(entry map[string]any) bool {
	fields := normalizer.aliases.Chapter

	if _, ok := resolveAs(entry, fields.Number, toInt); ok {
		return true
	}
	if _, ok := resolveAs(entry, fields.Name, toLatin); ok {
		return true
	}
	if _, ok := resolveAs(entry, fields.ArabicName, toArabic); ok {
		return true
	}
	if _, ok := resolveAs(entry, fields.VerseCount, toInt); ok {
		return true
	}
	_, ok := resolveAs(entry, fields.Verses, toList)
	return ok
}

func (normalizer *Normalizer) chapter(entry map[string]any, index int) quran.Chapter {
	fields := normalizer.aliases.Chapter

	number, ok := resolveAs(entry, fields.Number, toInt)
	if !ok {
		number = index + 1
	}

	chapter := quran.Chapter{Number: number}
	chapter.Name, _ = resolveAs(entry, fields.Name, toLatin)
	chapter.ArabicName, _ = resolveAs(entry, fields.ArabicName, toArabic)
	chapter.Translation, _ = resolveAs(entry, fields.Translation, toLatin)
	chapter.Bismillah, _ = resolveAs(entry, fields.Bismillah, toArabic)

	revelation, _ := resolveAs(entry, fields.Revelation, toString)
	chapter.Revelation = normalizer.ClassifyRevelation(revelation)

	rawVerses, _ := resolveAs(entry, fields.Verses, toList)
	chapter.Verses = make([]quran.Verse, 0, len(rawVerses))
	for position, rawVerse := range rawVerses {
		chapter.Verses = append(chapter.Verses, normalizer.verse(number, rawVerse, position))
	}

	if count, ok := resolveAs(entry, fields.VerseCount, toInt); ok {
		chapter.VerseCount = count
	} else {
		chapter.VerseCount = len(chapter.Verses)
	}

	return chapter
}

// verse normalizes one verse. Entries that resolve to nothing still produce a
// verse with empty Arabic text so positions stay intact.
func (normalizer *Normalizer) verse(chapter int, raw any, position int) quran.Verse {
	verse := quran.Verse{Chapter: chapter, Number: position + 1}

	switch value := raw.(type) {
	case string:
		verse.Arabic = value
		return verse

	case map[string]any:
		fields := normalizer.aliases.Verse

		if number, ok := resolveAs(value, fields.Number, toInt); ok && number > 0 {
			verse.Number = number
		}
		verse.Arabic, _ = resolveAs(value, fields.Arabic, toString)
		verse.Transliteration, _ = resolveAs(value, fields.Transliteration, toLatin)

		for lang, keys := range fields.Translations {
			text, ok := resolveAs(value, keys, toString)
			if !ok {
				continue
			}
			if verse.Translations == nil {
				verse.Translations = make(map[string]string, len(fields.Translations))
			}
			verse.Translations[lang] = text
		}
	}
	return verse
}
