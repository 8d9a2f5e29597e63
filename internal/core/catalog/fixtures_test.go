// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tilawa/internal/adapter/provider"
	"github.com/taibuivan/tilawa/internal/core/catalog"
	"github.com/taibuivan/tilawa/internal/quran/normalize"
)

const listPayload = `{
	"code": 200,
	"data": [
		{"number": 1, "numberOfVerses": 7, "revelation": {"id": "Makkiyyah"},
		 "name": {"short": "الفاتحة", "transliteration": {"id": "Al-Fatihah"}, "translation": {"id": "Pembukaan"}}},
		{"number": 36, "numberOfVerses": 83, "revelation": {"id": "Makkiyyah"},
		 "name": {"short": "يس", "transliteration": {"id": "Ya-Sin"}, "translation": {"id": "Yasin"}}},
		{"number": 2, "numberOfVerses": 286, "revelation": {"id": "Madaniyyah"},
		 "name": {"short": "البَقَرَة", "transliteration": {"id": "Al-Baqarah"}, "translation": {"id": "Sapi Betina"}}}
	]
}`

const baqarahPayload = `{
	"code": 200,
	"data": {
		"number": 2, "numberOfVerses": 286, "revelation": {"id": "Madaniyyah"},
		"name": {"short": "البَقَرَة", "transliteration": {"id": "Al-Baqarah"}, "translation": {"id": "Sapi Betina"}},
		"verses": [
			{"number": {"inSurah": 1}, "text": {"arab": "الٓمٓ"},
			 "translation": {"id": "Alif Lam Mim.", "en": "Alif, Lam, Meem."}},
			{"number": {"inSurah": 2}, "text": {"arab": "ذَٰلِكَ ٱلْكِتَٰبُ لَا رَيْبَ فِيهِ"},
			 "translation": {"id": "Kitab (Al-Qur'an) ini tidak ada keraguan padanya", "en": "This is the Book about which there is no doubt"}}
		]
	}
}`

const yasinPayload = `{
	"data": {
		"number": 36, "numberOfVerses": 83,
		"name": {"short": "يس", "transliteration": {"id": "Ya-Sin"}, "translation": {"id": "Yasin"}},
		"verses": [{"number": {"inSurah": 1}, "text": {"arab": "يسٓ"}, "translation": {"id": "Ya Sin."}}]
	}
}`

var errUpstream = errors.New("upstream down")

// stubSource serves decoded payloads and counts upstream calls.
type stubSource struct {
	list       any
	listErr    error
	chapters   map[int]any
	chapterErr error

	listCalls    atomic.Int32
	chapterCalls atomic.Int32
}

func (source *stubSource) Name() string { return "stub" }

func (source *stubSource) ListChapters(context.Context) (any, error) {
	source.listCalls.Add(1)
	return source.list, source.listErr
}

func (source *stubSource) GetChapter(_ context.Context, number int) (any, error) {
	source.chapterCalls.Add(1)
	if source.chapterErr != nil {
		return nil, source.chapterErr
	}
	payload, ok := source.chapters[number]
	if !ok {
		return nil, provider.ErrNotFound
	}
	return payload, nil
}

func decode(t *testing.T, raw string) any {
	t.Helper()
	payload, err := normalize.Decode(strings.NewReader(raw))
	require.NoError(t, err)
	return payload
}

func newStubSource(t *testing.T) *stubSource {
	t.Helper()
	return &stubSource{
		list: decode(t, listPayload),
		chapters: map[int]any{
			2:  decode(t, baqarahPayload),
			36: decode(t, yasinPayload),
		},
	}
}

func newService(t *testing.T, source provider.Source) *catalog.Service {
	t.Helper()
	service, err := catalog.NewService(catalog.Dependencies{Source: source})
	require.NoError(t, err)
	return service
}
