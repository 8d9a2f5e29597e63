// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ReaderReadingPositionTable represents the 'reader.reading_position' table
type ReaderReadingPositionTable struct {
	Table     string
	SessionID string
	Chapter   string
	Verse     string
	UpdatedAt string
}

// ReaderReadingPosition is the schema definition for reader.reading_position
var ReaderReadingPosition = ReaderReadingPositionTable{
	Table:     "reader.reading_position",
	SessionID: "session_id",
	Chapter:   "chapter",
	Verse:     "verse",
	UpdatedAt: "updated_at",
}
