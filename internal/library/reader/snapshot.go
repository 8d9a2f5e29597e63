// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/taibuivan/tilawa/internal/quran"
	"github.com/taibuivan/tilawa/pkg/pointer"
)

// Snapshot is an export of the browser storage of the web readers.
//
// Browser storage only holds strings, so every value may arrive either as
// JSON or as a string containing JSON. Both forms are accepted.
type Snapshot struct {
	Bookmarks       json.RawMessage `json:"quranBookmarks,omitempty"`
	History         json.RawMessage `json:"quranReadingHistory,omitempty"`
	SelectedImam    json.RawMessage `json:"selectedImam,omitempty"`
	Theme           json.RawMessage `json:"theme,omitempty"`
	WebTheme        json.RawMessage `json:"webquran-theme,omitempty"`
	WebBookmarks    json.RawMessage `json:"webquran-bookmarks,omitempty"`
	LastChapter     json.RawMessage `json:"webquran-last-surah,omitempty"`
	FontSize        json.RawMessage `json:"webquran-font-size,omitempty"`
	ShowTranslation json.RawMessage `json:"webquran-show-translation,omitempty"`
}

// ImportPlan is a snapshot reduced to validated writes.
type ImportPlan struct {
	Bookmarks []VerseRef
	Positions []VerseRef
	Settings  SettingsPatch
	Skipped   int
}

// fontSizes maps the web reader's text classes to Arabic text sizes.
var fontSizes = map[string]string{
	"text-xl":  SizeMedium,
	"text-2xl": SizeLarge,
	"text-3xl": SizeXLarge,
}

/*
Plan decodes the snapshot.

Description: Chapter keys of the reading history are 1-based chapter numbers.
Pairs outside the 114 chapters, non-positive verses and values of the wrong
type are skipped and counted. Duplicate bookmarks are kept once. A last-read
chapter without a history entry becomes a position at verse 1.
*/
func (snapshot Snapshot) Plan() ImportPlan {
	var plan ImportPlan

	seen := make(map[VerseRef]bool)
	for _, raw := range []json.RawMessage{snapshot.Bookmarks, snapshot.WebBookmarks} {
		for _, ref := range plan.refs(raw) {
			if !seen[ref] {
				seen[ref] = true
				plan.Bookmarks = append(plan.Bookmarks, ref)
			}
		}
	}

	plan.Positions = plan.history(snapshot.History)

	if chapter, ok := plan.integer(snapshot.LastChapter); ok {
		if !quran.ValidChapter(chapter) {
			plan.Skipped++
		} else if !containsChapter(plan.Positions, chapter) {
			plan.Positions = append(plan.Positions, VerseRef{Chapter: chapter, Verse: 1})
		}
	}

	plan.settings(snapshot)
	return plan
}

func (plan *ImportPlan) settings(snapshot Snapshot) {
	// The newer web reader key wins over the older one.
	for _, raw := range []json.RawMessage{snapshot.WebTheme, snapshot.Theme} {
		if theme, ok := plan.text(raw); ok {
			if theme == ThemeLight || theme == ThemeDark {
				plan.Settings.Theme = pointer.To(theme)
				break
			}
			plan.Skipped++
		}
	}

	if reciter, ok := plan.integer(snapshot.SelectedImam); ok {
		plan.Settings.ReciterID = pointer.To(reciter)
	}

	if size, ok := plan.text(snapshot.FontSize); ok {
		if mapped, known := fontSizes[size]; known {
			plan.Settings.ArabicSize = pointer.To(mapped)
		} else {
			plan.Skipped++
		}
	}

	if show, ok := plan.boolean(snapshot.ShowTranslation); ok {
		plan.Settings.ShowTranslation = pointer.To(show)
	}
}

// refs reads a bookmark list of {surah, ayah} objects or bare chapter numbers.
func (plan *ImportPlan) refs(raw json.RawMessage) []VerseRef {
	if absent(raw) {
		return nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(unwrap(raw), &entries); err != nil {
		plan.Skipped++
		return nil
	}

	refs := make([]VerseRef, 0, len(entries))
	for _, entry := range entries {
		ref, ok := decodeRef(entry)
		if !ok || !validRef(ref) {
			plan.Skipped++
			continue
		}
		refs = append(refs, ref)
	}
	return refs
}

func decodeRef(entry json.RawMessage) (VerseRef, bool) {
	var chapter int
	if err := json.Unmarshal(entry, &chapter); err == nil {
		return VerseRef{Chapter: chapter, Verse: 1}, true
	}

	var pair struct {
		Surah *int `json:"surah"`
		Ayah  *int `json:"ayah"`
	}
	if err := json.Unmarshal(entry, &pair); err != nil || pair.Surah == nil || pair.Ayah == nil {
		return VerseRef{}, false
	}
	return VerseRef{Chapter: *pair.Surah, Verse: *pair.Ayah}, true
}

// history reads a {"<chapter>": verse} map into positions ordered by chapter.
func (plan *ImportPlan) history(raw json.RawMessage) []VerseRef {
	if absent(raw) {
		return nil
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(unwrap(raw), &entries); err != nil {
		plan.Skipped++
		return nil
	}

	positions := make([]VerseRef, 0, len(entries))
	for key, value := range entries {
		chapter, keyErr := strconv.Atoi(strings.TrimSpace(key))
		verse, ok := plan.integer(value)
		if !ok {
			continue
		}

		ref := VerseRef{Chapter: chapter, Verse: verse}
		if keyErr != nil || !validRef(ref) {
			plan.Skipped++
			continue
		}
		positions = append(positions, ref)
	}

	sort.Slice(positions, func(i, j int) bool {
		return positions[i].Chapter < positions[j].Chapter
	})
	return positions
}

// # Lenient Scalars
//
// Each reader reports whether a value was present. A present value of the
// wrong type counts as skipped.

func (plan *ImportPlan) integer(raw json.RawMessage) (int, bool) {
	if absent(raw) {
		return 0, false
	}
	var number int
	if err := json.Unmarshal(unwrap(raw), &number); err != nil {
		plan.Skipped++
		return 0, false
	}
	return number, true
}

func (plan *ImportPlan) text(raw json.RawMessage) (string, bool) {
	if absent(raw) {
		return "", false
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		plan.Skipped++
		return "", false
	}
	return strings.TrimSpace(value), true
}

func (plan *ImportPlan) boolean(raw json.RawMessage) (bool, bool) {
	if absent(raw) {
		return false, false
	}
	var value bool
	if err := json.Unmarshal(unwrap(raw), &value); err != nil {
		plan.Skipped++
		return false, false
	}
	return value, true
}

// absent treats a missing key, JSON null and a blank string alike.
func absent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return true
	}

	var text string
	if err := json.Unmarshal(trimmed, &text); err == nil {
		return strings.TrimSpace(text) == ""
	}
	return false
}

// unwrap returns the JSON document held in a JSON string, or raw itself.
func unwrap(raw json.RawMessage) json.RawMessage {
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return raw
	}

	inner := []byte(strings.TrimSpace(text))
	if !json.Valid(inner) {
		return raw
	}
	return inner
}

func validRef(ref VerseRef) bool {
	return quran.ValidChapter(ref.Chapter) && ref.Verse >= 1 && ref.Verse <= quran.MaxVerseCount
}

func containsChapter(refs []VerseRef, chapter int) bool {
	for _, ref := range refs {
		if ref.Chapter == chapter {
			return true
		}
	}
	return false
}
