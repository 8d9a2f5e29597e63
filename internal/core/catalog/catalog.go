// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog serves the normalized chapter catalogue.

Raw payloads come from a [provider.Source], are normalized once and cached as
canonical chapters. Per-request decoration (tajwid markup, one translation
language, audio locators) is applied to copies and never cached.

# Degraded Mode

When the upstream fails, the chapter list is served from the bundled demo
chapters and flagged with Fallback so clients can show a notice. A chapter that
the demo set does not contain fails with BAD_GATEWAY.
*/
package catalog

import (
	"github.com/taibuivan/tilawa/internal/quran"
)

// Listing is the chapter index returned to list views.
type Listing struct {
	Chapters []quran.ChapterSummary `json:"chapters"`

	// Fallback is true when the upstream yielded nothing usable and the demo set is shown.
	Fallback bool `json:"fallback"`
}

// View selects the per-request decoration of a chapter.
type View struct {
	// Annotate fills each verse's tajwid markup.
	Annotate bool

	// Language keeps only this translation when set.
	Language string

	// Reciter fills each verse's audio locator when non-zero.
	Reciter int
}

// Resolution classifies a stored (chapter, verse) reference against the catalogue.
type Resolution string

const (
	// ResolutionValid means the verse exists.
	ResolutionValid Resolution = "valid"

	// ResolutionStale means the chapter is known and the verse is outside it.
	ResolutionStale Resolution = "stale"

	// ResolutionUnknown means the chapter is not in the loaded catalogue.
	ResolutionUnknown Resolution = "unknown"
)

// AnnotatedText is the body of an annotation response.
type AnnotatedText struct {
	Text      string `json:"text"`
	Annotated string `json:"annotated"`
}
