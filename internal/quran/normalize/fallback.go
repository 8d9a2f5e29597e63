// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package normalize

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/taibuivan/tilawa/internal/quran"
)

//go:embed fallback.json
var fallbackJSON []byte

var (
	fallbackOnce     sync.Once
	fallbackChapters []quran.Chapter
)

// FallbackJSON returns the raw embedded fallback document. Sources that serve
// demo data hand it to the normalizer like any other payload.
func FallbackJSON() []byte {
	return bytes.Clone(fallbackJSON)
}

// Fallback returns a fresh copy of the embedded demo chapters (1, 112, 113 and 114).
func Fallback() []quran.Chapter {
	fallbackOnce.Do(func() {
		payload, err := Decode(bytes.NewReader(fallbackJSON))
		if err != nil {
			panic(fmt.Sprintf("normalize: embedded fallback is invalid: %v", err))
		}

		// Always read with the embedded table: a custom table may not cover this shape.
		fallbackChapters = New(DefaultAliases()).chapters(payload)
		if len(fallbackChapters) == 0 {
			panic("normalize: embedded fallback holds no chapter")
		}
	})

	chapters := make([]quran.Chapter, len(fallbackChapters))
	for index, chapter := range fallbackChapters {
		chapter.Verses = cloneVerses(chapter.Verses)
		chapters[index] = chapter
	}
	return chapters
}

func cloneVerses(verses []quran.Verse) []quran.Verse {
	cloned := make([]quran.Verse, len(verses))
	for index, verse := range verses {
		if verse.Translations != nil {
			translations := make(map[string]string, len(verse.Translations))
			for lang, text := range verse.Translations {
				translations[lang] = text
			}
			verse.Translations = translations
		}
		cloned[index] = verse
	}
	return cloned
}
