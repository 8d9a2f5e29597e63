// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader

import (
	"github.com/taibuivan/tilawa/internal/core/recitation"
	"github.com/taibuivan/tilawa/internal/platform/validate"
	"github.com/taibuivan/tilawa/pkg/pointer"
)

// # Preference Values

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

const (
	SizeSmall  = "sm"
	SizeMedium = "md"
	SizeLarge  = "lg"
	SizeXLarge = "xl"
)

// Themes lists the accepted theme values.
func Themes() []string {
	return []string{ThemeLight, ThemeDark}
}

// Sizes lists the accepted text sizes, smallest first.
func Sizes() []string {
	return []string{SizeSmall, SizeMedium, SizeLarge, SizeXLarge}
}

// Settings are the display and playback preferences of a session.
type Settings struct {
	Theme           string                `json:"theme"`
	ArabicSize      string                `json:"arabic_size"`
	TranslationSize string                `json:"translation_size"`
	ReciterID       int                   `json:"reciter_id"`
	ShowTranslation bool                  `json:"show_translation"`
	AutoplayNext    bool                  `json:"autoplay_next"`
	Repeat          recitation.RepeatMode `json:"repeat"`
}

// DefaultSettings returns the preferences of a session that never saved any.
func DefaultSettings() Settings {
	return Settings{
		Theme:           ThemeLight,
		ArabicSize:      SizeLarge,
		TranslationSize: SizeMedium,
		ReciterID:       recitation.DefaultReciterID,
		ShowTranslation: true,
		AutoplayNext:    true,
		Repeat:          recitation.RepeatNone,
	}
}

// SettingsPatch is a partial update. Nil fields keep their current value.
type SettingsPatch struct {
	Theme           *string `json:"theme,omitempty"`
	ArabicSize      *string `json:"arabic_size,omitempty"`
	TranslationSize *string `json:"translation_size,omitempty"`
	ReciterID       *int    `json:"reciter_id,omitempty"`
	ShowTranslation *bool   `json:"show_translation,omitempty"`
	AutoplayNext    *bool   `json:"autoplay_next,omitempty"`
	Repeat          *string `json:"repeat,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (patch SettingsPatch) Empty() bool {
	return patch == SettingsPatch{}
}

// Apply returns settings with the patch fields written over it.
func (patch SettingsPatch) Apply(settings Settings) Settings {
	settings.Theme = pointer.Fallback(patch.Theme, settings.Theme)
	settings.ArabicSize = pointer.Fallback(patch.ArabicSize, settings.ArabicSize)
	settings.TranslationSize = pointer.Fallback(patch.TranslationSize, settings.TranslationSize)
	settings.ReciterID = pointer.Fallback(patch.ReciterID, settings.ReciterID)
	settings.ShowTranslation = pointer.Fallback(patch.ShowTranslation, settings.ShowTranslation)
	settings.AutoplayNext = pointer.Fallback(patch.AutoplayNext, settings.AutoplayNext)

	if patch.Repeat != nil {
		settings.Repeat = recitation.RepeatMode(*patch.Repeat)
	}
	return settings
}

// validateSettings checks every field of a complete settings object.
func validateSettings(settings Settings, reciters ReciterDirectory) error {
	_, reciterKnown := reciters.Get(settings.ReciterID)

	validator := &validate.Validator{}
	validator.OneOf("theme", settings.Theme, Themes()...).
		OneOf("arabic_size", settings.ArabicSize, Sizes()...).
		OneOf("translation_size", settings.TranslationSize, Sizes()...).
		Custom("reciter_id", !reciterKnown, "Unknown reciter").
		OneOf("repeat", string(settings.Repeat), recitation.RepeatModes()...)

	return validator.Err()
}
