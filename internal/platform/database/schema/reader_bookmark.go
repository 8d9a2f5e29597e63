// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema holds the table and column names of the reader schema so
// query builders never spell them inline.
package schema

// ReaderBookmarkTable represents the 'reader.bookmark' table
type ReaderBookmarkTable struct {
	Table     string
	ID        string
	SessionID string
	Chapter   string
	Verse     string
	CreatedAt string
}

// ReaderBookmark is the schema definition for reader.bookmark
var ReaderBookmark = ReaderBookmarkTable{
	Table:     "reader.bookmark",
	ID:        "id",
	SessionID: "session_id",
	Chapter:   "chapter",
	Verse:     "verse",
	CreatedAt: "created_at",
}

// Columns returns the columns read back into a bookmark, in scan order
func (t ReaderBookmarkTable) Columns() []string {
	return []string{t.Chapter, t.Verse, t.CreatedAt}
}
