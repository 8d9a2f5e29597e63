// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tilawa/internal/library/reader"
	"github.com/taibuivan/tilawa/pkg/pointer"
)

func decodeSnapshot(t *testing.T, body string) reader.Snapshot {
	t.Helper()
	var snapshot reader.Snapshot
	require.NoError(t, json.Unmarshal([]byte(body), &snapshot))
	return snapshot
}

func TestSnapshot_Plan(t *testing.T) {
	tests := []struct {
		name string
		body string
		want reader.ImportPlan
	}{
		{
			name: "empty",
			body: `{}`,
			want: reader.ImportPlan{},
		},
		{
			name: "null_and_blank_values_are_absent",
			body: `{"quranBookmarks":null,"theme":"","selectedImam":null,"webquran-last-surah":" "}`,
			want: reader.ImportPlan{},
		},
		{
			name: "bookmarks_from_both_readers_deduplicated",
			body: `{
				"quranBookmarks": [{"surah":2,"ayah":255},{"surah":18,"ayah":10}],
				"webquran-bookmarks": "[{\"surah\":2,\"ayah\":255},36]"
			}`,
			want: reader.ImportPlan{
				Bookmarks: []reader.VerseRef{{Chapter: 2, Verse: 255}, {Chapter: 18, Verse: 10}, {Chapter: 36, Verse: 1}},
			},
		},
		{
			name: "invalid_bookmarks_skipped",
			body: `{"quranBookmarks": [{"surah":0,"ayah":1},{"surah":115,"ayah":1},{"surah":2,"ayah":0},{"surah":2},"x",{"surah":3,"ayah":4}]}`,
			want: reader.ImportPlan{
				Bookmarks: []reader.VerseRef{{Chapter: 3, Verse: 4}},
				Skipped:   5,
			},
		},
		{
			name: "oversized_verses_skipped",
			body: `{
				"quranBookmarks": [{"surah":2,"ayah":99999},{"surah":2,"ayah":286},{"surah":1,"ayah":1}],
				"quranReadingHistory": {"3": 70000, "4": 287}
			}`,
			want: reader.ImportPlan{
				Bookmarks: []reader.VerseRef{{Chapter: 2, Verse: 286}, {Chapter: 1, Verse: 1}},
				Positions: []reader.VerseRef{},
				Skipped:   3,
			},
		},
		{
			name: "history_is_ordered_by_chapter",
			body: `{"quranReadingHistory": "{\"114\":6,\"1\":\"7\",\"0\":3,\"abc\":2,\"2\":\"x\"}"}`,
			want: reader.ImportPlan{
				Positions: []reader.VerseRef{{Chapter: 1, Verse: 7}, {Chapter: 114, Verse: 6}},
				Skipped:   3,
			},
		},
		{
			name: "last_chapter_without_history_starts_at_verse_one",
			body: `{"quranReadingHistory": {"2": 40}, "webquran-last-surah": "18"}`,
			want: reader.ImportPlan{
				Positions: []reader.VerseRef{{Chapter: 2, Verse: 40}, {Chapter: 18, Verse: 1}},
			},
		},
		{
			name: "last_chapter_with_history_keeps_history",
			body: `{"quranReadingHistory": {"18": 40}, "webquran-last-surah": 18}`,
			want: reader.ImportPlan{
				Positions: []reader.VerseRef{{Chapter: 18, Verse: 40}},
			},
		},
		{
			name: "last_chapter_out_of_range",
			body: `{"webquran-last-surah": "120"}`,
			want: reader.ImportPlan{Skipped: 1},
		},
		{
			name: "settings",
			body: `{
				"theme": "light",
				"webquran-theme": "dark",
				"selectedImam": "4",
				"webquran-font-size": "text-3xl",
				"webquran-show-translation": "false"
			}`,
			want: reader.ImportPlan{
				Settings: reader.SettingsPatch{
					Theme:           pointer.To(reader.ThemeDark),
					ReciterID:       pointer.To(4),
					ArabicSize:      pointer.To(reader.SizeXLarge),
					ShowTranslation: pointer.To(false),
				},
			},
		},
		{
			name: "older_theme_used_when_newer_is_unknown",
			body: `{"webquran-theme": "sepia", "theme": "dark", "webquran-font-size": "text-sm"}`,
			want: reader.ImportPlan{
				Settings: reader.SettingsPatch{Theme: pointer.To(reader.ThemeDark)},
				Skipped:  2,
			},
		},
		{
			name: "wrong_types_counted",
			body: `{"selectedImam": true, "webquran-show-translation": "maybe", "quranBookmarks": {"surah":1}}`,
			want: reader.ImportPlan{Skipped: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeSnapshot(t, tt.body).Plan())
		})
	}
}
