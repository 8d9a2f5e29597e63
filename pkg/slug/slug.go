// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII slugs from transliterated names.
//
// # Usage
//
// Chapter names arrive from providers with inconsistent diacritics and
// punctuation ("Al-Fātiḥah", "Al Fatihah", "al-faatiha"). Their slugs are used
// as stable lookup keys and for accent-insensitive search.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches any sequence of non-alphanumeric, non-hyphen characters.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]+`)
	// multiHyphen collapses multiple consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)
)

// From converts a Latin transliteration into an ASCII slug.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD and removes combining marks (ā → a).
// 2. Drops apostrophes and ayn/hamza signs so "Al-Mu'minun" stays one word.
// 3. Lowercases and replaces the remaining separators with hyphens.
// 4. Collapses multiple hyphens and trims leading/trailing hyphens.
func From(s string) string {
	result := Fold(s)

	result = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case isGlottal(r):
			return -1
		}
		return '-'
	}, result)

	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// Fold lowercases s and strips its combining marks without touching punctuation.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}
	return strings.ToLower(result)
}

// isGlottal reports whether r transliterates ayn or hamza.
func isGlottal(r rune) bool {
	switch r {
	case '\'', '`', '‘', '’', 'ʼ', 'ʾ', 'ʿ':
		return true
	}
	return false
}
