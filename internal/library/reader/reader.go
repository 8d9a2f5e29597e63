// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reader keeps per-session reading state: bookmarks, the last verse read
in each chapter and display preferences.

# Ownership

Every record is keyed by the anonymous session id. There is no user account
behind it and nothing is shared between sessions.

# Stale References

Bookmarks and positions store bare (chapter, verse) pairs. They are never
rewritten when the catalogue changes; instead each bookmark is resolved against
the catalogue when listed and reported as valid, stale or unknown.
*/
package reader

import (
	"context"
	"time"

	"github.com/taibuivan/tilawa/internal/core/catalog"
	"github.com/taibuivan/tilawa/internal/core/recitation"
)

// # Collaborators

// VerseResolver classifies a stored reference against the chapter catalogue.
type VerseResolver interface {
	VerseExists(context context.Context, chapter, verse int) (catalog.Resolution, error)
}

// ReciterDirectory reports which reciter ids exist.
type ReciterDirectory interface {
	Get(id int) (recitation.Reciter, bool)
}

// # Entities

// VerseRef addresses one verse.
type VerseRef struct {
	Chapter int `json:"chapter"`
	Verse   int `json:"verse"`
}

// Bookmark is a saved verse of a session.
type Bookmark struct {
	Chapter   int                `json:"chapter"`
	Verse     int                `json:"verse"`
	CreatedAt time.Time          `json:"created_at"`
	Status    catalog.Resolution `json:"status,omitempty"`
}

// BookmarkState is the result of toggling a bookmark.
type BookmarkState struct {
	Chapter    int  `json:"chapter"`
	Verse      int  `json:"verse"`
	Bookmarked bool `json:"bookmarked"`
}

// Position is the last verse read in a chapter. UpdatedAt is nil for the
// implicit first-verse position of an unread chapter.
type Position struct {
	Chapter   int        `json:"chapter"`
	Verse     int        `json:"verse"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// ImportReport counts what an import applied.
type ImportReport struct {
	Bookmarks int  `json:"bookmarks"`
	Positions int  `json:"positions"`
	Settings  bool `json:"settings"`
	Skipped   int  `json:"skipped"`
}
