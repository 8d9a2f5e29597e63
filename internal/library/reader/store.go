// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader

import "context"

// Repository defines the data access contract for reader state.
type Repository interface {
	// AddBookmark stores a bookmark and reports whether it was new.
	AddBookmark(context context.Context, sessionID string, ref VerseRef) (bool, error)

	// RemoveBookmark deletes a bookmark and reports whether it existed.
	RemoveBookmark(context context.Context, sessionID string, ref VerseRef) (bool, error)

	// ListBookmarks returns a page of bookmarks in insertion order and the total count.
	ListBookmarks(context context.Context, sessionID string, limit, offset int) ([]Bookmark, int, error)

	// SavePosition overwrites the position of ref.Chapter.
	SavePosition(context context.Context, sessionID string, ref VerseRef) (Position, error)

	// ListPositions returns every recorded position ordered by chapter.
	ListPositions(context context.Context, sessionID string) ([]Position, error)

	// FindPosition returns the position of one chapter or dberr.ErrNotFound.
	FindPosition(context context.Context, sessionID string, chapter int) (Position, error)

	// FindSettings returns stored settings or dberr.ErrNotFound.
	FindSettings(context context.Context, sessionID string) (Settings, error)

	// SaveSettings replaces the stored settings.
	SaveSettings(context context.Context, sessionID string, settings Settings) error

	// WithTx runs fn against a repository bound to one transaction.
	WithTx(context context.Context, fn func(Repository) error) error
}
