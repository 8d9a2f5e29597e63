// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/taibuivan/tilawa/internal/quran"
	"github.com/taibuivan/tilawa/pkg/slice"
	"github.com/taibuivan/tilawa/pkg/slug"
)

// harakat are the Arabic short-vowel and recitation marks plus tatweel.
var harakat = runes.Predicate(func(r rune) bool {
	return (r >= '\u064B' && r <= '\u065F') || r == '\u0670' || r == '\u0640'
})

// stripHarakat removes vowel marks so "الفَاتِحَة" matches "الفاتحة".
func stripHarakat(text string) string {
	result, _, err := transform.String(runes.Remove(harakat), text)
	if err != nil {
		return text
	}
	return result
}

/*
Search filters the chapter index by a free-text term.

Description: A chapter matches when the term is a substring of its
transliterated name or translation (case and accent insensitive), of its
slug, of its number, or of its Arabic name with vowel marks ignored. An empty
term returns every chapter.
*/
func (service *Service) Search(context context.Context, term string) ([]quran.ChapterSummary, error) {
	listing, err := service.ListChapters(context)
	if err != nil {
		return nil, err
	}

	term = strings.TrimSpace(term)
	if term == "" {
		return listing.Chapters, nil
	}

	matches := slice.Filter(listing.Chapters, newMatcher(term).matches)
	if matches == nil {
		matches = []quran.ChapterSummary{}
	}
	return matches, nil
}

type matcher struct {
	folded string
	slug   string
	arabic string
	raw    string
}

func newMatcher(term string) matcher {
	return matcher{
		folded: slug.Fold(term),
		slug:   slug.From(term),
		arabic: stripHarakat(term),
		raw:    term,
	}
}

func (matcher matcher) matches(summary quran.ChapterSummary) bool {
	switch {
	case strings.Contains(slug.Fold(summary.Name), matcher.folded):
		return true
	case strings.Contains(slug.Fold(summary.Translation), matcher.folded):
		return true
	case matcher.slug != "" && strings.Contains(summary.Slug, matcher.slug):
		return true
	case strings.Contains(strconv.Itoa(summary.Number), matcher.raw):
		return true
	case matcher.arabic != "" && strings.Contains(stripHarakat(summary.ArabicName), matcher.arabic):
		return true
	}
	return false
}
