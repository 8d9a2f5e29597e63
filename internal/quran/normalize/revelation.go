// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package normalize

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/taibuivan/tilawa/internal/quran"
)

// # Revelation Place

// ClassifyRevelation buckets a free-text place of revelation using the
// embedded fragment list. See [Normalizer.ClassifyRevelation].
func ClassifyRevelation(text string) quran.Revelation {
	return Default().ClassifyRevelation(text)
}

// ClassifyRevelation returns Medinan when text contains one of the Medinan
// fragments, ignoring case, and Meccan otherwise (including for empty text).
//
// The classification is lossy: providers spell the place in several
// languages and only two buckets exist.
func (normalizer *Normalizer) ClassifyRevelation(text string) quran.Revelation {
	if text == "" {
		return quran.Meccan
	}

	folded := cases.Fold().String(text)
	for _, fragment := range normalizer.medinan {
		if strings.Contains(folded, fragment) {
			return quran.Medinan
		}
	}
	return quran.Meccan
}

func foldAll(fragments []string) []string {
	folder := cases.Fold()

	folded := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		if fragment = strings.TrimSpace(fragment); fragment != "" {
			folded = append(folded, folder.String(fragment))
		}
	}
	return folded
}
