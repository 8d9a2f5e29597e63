// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ReaderSettingTable represents the 'reader.setting' table
type ReaderSettingTable struct {
	Table           string
	SessionID       string
	Theme           string
	ArabicSize      string
	TranslationSize string
	ReciterID       string
	ShowTranslation string
	AutoplayNext    string
	Repeat          string
	UpdatedAt       string
}

// ReaderSetting is the schema definition for reader.setting
var ReaderSetting = ReaderSettingTable{
	Table:           "reader.setting",
	SessionID:       "session_id",
	Theme:           "theme",
	ArabicSize:      "arabic_size",
	TranslationSize: "translation_size",
	ReciterID:       "reciter_id",
	ShowTranslation: "show_translation",
	AutoplayNext:    "autoplay_next",
	Repeat:          "repeat_mode",
	UpdatedAt:       "updated_at",
}

// Columns returns the preference columns, in scan order
func (t ReaderSettingTable) Columns() []string {
	return []string{t.Theme, t.ArabicSize, t.TranslationSize, t.ReciterID, t.ShowTranslation, t.AutoplayNext, t.Repeat}
}
