// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/taibuivan/tilawa/internal/adapter/provider"
	"github.com/taibuivan/tilawa/internal/core/recitation"
	"github.com/taibuivan/tilawa/internal/platform/apperr"
	"github.com/taibuivan/tilawa/internal/platform/constants"
	"github.com/taibuivan/tilawa/internal/platform/validate"
	"github.com/taibuivan/tilawa/internal/quran"
	"github.com/taibuivan/tilawa/internal/quran/normalize"
	"github.com/taibuivan/tilawa/internal/quran/tajwid"
	"github.com/taibuivan/tilawa/pkg/slice"
)

// # Service Layer

// Dependencies groups the collaborators of a [Service]. Nil members fall back
// to the built-in normalizer, annotator, reciter list and an in-process cache.
type Dependencies struct {
	Source      provider.Source
	Normalizer  *normalize.Normalizer
	Annotator   *tajwid.Annotator
	Cache       Cache
	Reciters    *recitation.Catalog
	Logger      *slog.Logger
	Concurrency int
}

// Service loads, caches and decorates chapters.
type Service struct {
	source      provider.Source
	normalizer  *normalize.Normalizer
	annotator   *tajwid.Annotator
	cache       Cache
	reciters    *recitation.Catalog
	logger      *slog.Logger
	concurrency int
}

// NewService constructs a new [Service]. It fails only when the built-in reciter list is invalid.
func NewService(deps Dependencies) (*Service, error) {
	service := &Service{
		source:      deps.Source,
		normalizer:  deps.Normalizer,
		annotator:   deps.Annotator,
		cache:       deps.Cache,
		reciters:    deps.Reciters,
		logger:      deps.Logger,
		concurrency: deps.Concurrency,
	}

	if service.source == nil {
		service.source = provider.NewEmbeddedSource()
	}
	if service.normalizer == nil {
		service.normalizer = normalize.Default()
	}
	if service.annotator == nil {
		service.annotator = tajwid.New()
	}
	if service.cache == nil {
		service.cache = NewMemoryCache(constants.DefaultCatalogCacheTTL)
	}
	if service.logger == nil {
		service.logger = slog.Default()
	}
	if service.concurrency < 1 {
		service.concurrency = constants.DefaultProviderConcurrency
	}
	if service.reciters == nil {
		reciters, err := recitation.DefaultCatalog("")
		if err != nil {
			return nil, err
		}
		service.reciters = reciters
	}

	return service, nil
}

// Reciters returns the reciter catalogue used for audio locators.
func (service *Service) Reciters() *recitation.Catalog {
	return service.reciters
}

// # Chapter Listing

/*
ListChapters returns the chapter index.

Description: The listing is cached only when it came from the upstream. On an
upstream failure, or when its payload normalizes to nothing, the demo chapters
are returned with Fallback set.

Parameters:
  - context: context.Context

Returns:
  - Listing: Chapter summaries ordered by number
  - error: Never an upstream error; only context cancellation
*/
func (service *Service) ListChapters(context context.Context) (Listing, error) {
	var listing Listing
	if hit, err := service.cache.Get(context, constants.RedisKeyChapterList, &listing); err != nil {
		service.logger.WarnContext(context, "catalog_cache_read_failed", slog.Any("error", err))
	} else if hit {
		return listing, nil
	}

	payload, err := service.source.ListChapters(context)
	if err != nil {
		if context.Err() != nil {
			return Listing{}, context.Err()
		}

		service.logger.WarnContext(context, "catalog_upstream_failed",
			slog.String("source", service.source.Name()),
			slog.Any("error", err),
		)
		return summarize(normalize.Fallback(), true), nil
	}

	result := service.normalizer.Normalize(payload)
	listing = summarize(result.Chapters, result.Fallback)

	if result.Fallback {
		service.logger.WarnContext(context, "catalog_payload_unusable", slog.String("source", service.source.Name()))
		return listing, nil
	}

	if err := service.cache.Set(context, constants.RedisKeyChapterList, listing); err != nil {
		service.logger.WarnContext(context, "catalog_cache_write_failed", slog.Any("error", err))
	}
	return listing, nil
}

func summarize(chapters []quran.Chapter, fallback bool) Listing {
	summaries := slice.Map(chapters, quran.Chapter.Summary)
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Number < summaries[j].Number
	})
	return Listing{Chapters: summaries, Fallback: fallback}
}

// Summary returns one chapter of the index. Chapters missing from a degraded
// index are loaded individually.
func (service *Service) Summary(context context.Context, number int) (quran.ChapterSummary, error) {
	if !quran.ValidChapter(number) {
		return quran.ChapterSummary{}, apperr.NotFound("Chapter")
	}

	listing, err := service.ListChapters(context)
	if err != nil {
		return quran.ChapterSummary{}, err
	}
	for _, summary := range listing.Chapters {
		if summary.Number == number {
			return summary, nil
		}
	}

	chapter, err := service.loadChapter(context, number)
	if err != nil {
		return quran.ChapterSummary{}, err
	}
	return chapter.Summary(), nil
}

// ResolveNumber accepts a chapter number or a chapter slug such as "al-fatihah".
func (service *Service) ResolveNumber(context context.Context, identifier string) (int, error) {
	identifier = strings.TrimSpace(identifier)
	if number, err := strconv.Atoi(identifier); err == nil {
		return number, nil
	}

	wanted := strings.ToLower(identifier)
	if err := new(validate.Validator).Slug("number", wanted).Err(); err != nil {
		return 0, err
	}

	listing, err := service.ListChapters(context)
	if err != nil {
		return 0, err
	}

	for _, summary := range listing.Chapters {
		if summary.Slug == wanted {
			return summary.Number, nil
		}
	}
	return 0, apperr.NotFound("Chapter")
}

// # Chapter Detail

/*
GetChapter returns one chapter with its verses decorated according to view.

Parameters:
  - context: context.Context
  - number: int (1 to 114)
  - view: View (Annotation, translation language and reciter)

Returns:
  - quran.Chapter: A copy safe for the caller to modify
  - error: NOT_FOUND, VALIDATION_ERROR for an unknown reciter, BAD_GATEWAY when
    the upstream fails and the demo set lacks the chapter
*/
func (service *Service) GetChapter(context context.Context, number int, view View) (quran.Chapter, error) {
	if !quran.ValidChapter(number) {
		return quran.Chapter{}, apperr.NotFound("Chapter")
	}

	var reciter recitation.Reciter
	if view.Reciter != 0 {
		selected, err := service.reciters.Select(view.Reciter)
		if err != nil {
			return quran.Chapter{}, validate.RequiredError("reciter", "No reciter with this id")
		}
		reciter = selected
	}

	chapter, err := service.loadChapter(context, number)
	if err != nil {
		return quran.Chapter{}, err
	}

	return service.decorate(chapter, view, reciter), nil
}

// GetVerse returns one decorated verse.
func (service *Service) GetVerse(context context.Context, number, verse int, view View) (quran.Verse, error) {
	chapter, err := service.GetChapter(context, number, view)
	if err != nil {
		return quran.Verse{}, err
	}

	found, ok := chapter.Verse(verse)
	if !ok {
		return quran.Verse{}, apperr.NotFound("Verse")
	}
	return found, nil
}

func (service *Service) loadChapter(context context.Context, number int) (quran.Chapter, error) {
	var chapter quran.Chapter
	key := ChapterKey(number)

	if hit, err := service.cache.Get(context, key, &chapter); err != nil {
		service.logger.WarnContext(context, "catalog_cache_read_failed", slog.Any("error", err))
	} else if hit {
		return chapter, nil
	}

	service.logger.DebugContext(context, "chapter_cache_miss", slog.Int("chapter", number))

	payload, err := service.source.GetChapter(context, number)
	switch {
	case errors.Is(err, provider.ErrNotFound):
		return quran.Chapter{}, apperr.NotFound("Chapter")
	case err != nil:
		if context.Err() != nil {
			return quran.Chapter{}, context.Err()
		}
		service.logger.WarnContext(context, "catalog_upstream_failed",
			slog.String("source", service.source.Name()),
			slog.Int("chapter", number),
			slog.Any("error", err),
		)
		return fallbackChapter(number, err)
	}

	chapter, ok, usable := service.pick(payload, number)
	if !usable {
		return fallbackChapter(number, errors.New("catalog: upstream payload has no chapters"))
	}
	if !ok {
		return quran.Chapter{}, apperr.NotFound("Chapter")
	}

	if err := service.cache.Set(context, key, chapter); err != nil {
		service.logger.WarnContext(context, "catalog_cache_write_failed", slog.Any("error", err))
	}
	return chapter, nil
}

// pick normalizes payload and selects chapter number from it. usable is false
// when the payload normalized to nothing.
func (service *Service) pick(payload any, number int) (chapter quran.Chapter, ok bool, usable bool) {
	result := service.normalizer.Normalize(payload)
	if result.Fallback {
		return quran.Chapter{}, false, false
	}

	for _, candidate := range result.Chapters {
		if candidate.Number == number {
			return candidate, true, true
		}
	}
	return quran.Chapter{}, false, true
}

func fallbackChapter(number int, cause error) (quran.Chapter, error) {
	for _, chapter := range normalize.Fallback() {
		if chapter.Number == number {
			return chapter, nil
		}
	}
	return quran.Chapter{}, apperr.BadGateway("Quran provider unavailable", cause)
}

// decorate returns a copy of chapter with the derived verse fields filled.
func (service *Service) decorate(chapter quran.Chapter, view View, reciter recitation.Reciter) quran.Chapter {
	verses := make([]quran.Verse, len(chapter.Verses))

	for index, verse := range chapter.Verses {
		if view.Language != "" {
			verse.Translations = singleTranslation(verse, view.Language, service.normalizer.DefaultLanguage())
		}
		if view.Annotate {
			verse.Annotated = service.annotator.Annotate(verse.Arabic)
		}
		if reciter.ID != 0 {
			verse.Audio = service.reciters.Locator(reciter, chapter.Number, verse.Number)
		}
		verses[index] = verse
	}

	chapter.Verses = verses
	return chapter
}

// singleTranslation keeps the translation in language, else in fallback, else
// the first by code, under the language it is actually written in.
func singleTranslation(verse quran.Verse, language, fallback string) map[string]string {
	for _, code := range []string{language, fallback} {
		if text, ok := verse.Translations[code]; ok {
			return map[string]string{code: text}
		}
	}

	code, ok := verse.FirstTranslationCode()
	if !ok {
		return nil
	}
	return map[string]string{code: verse.Translations[code]}
}

// # Annotation

// Annotate returns the tajwid markup of free text.
func (service *Service) Annotate(text string) AnnotatedText {
	return AnnotatedText{Text: text, Annotated: service.annotator.Annotate(text)}
}

// # Reference Resolution

/*
VerseExists classifies a stored (chapter, verse) reference.

Returns:
  - Resolution: valid, stale (outside the chapter or an impossible chapter
    number) or unknown (the chapter is not in the loaded index)
  - error: Only context cancellation
*/
func (service *Service) VerseExists(context context.Context, chapter, verse int) (Resolution, error) {
	if !quran.ValidChapter(chapter) || verse < 1 {
		return ResolutionStale, nil
	}

	listing, err := service.ListChapters(context)
	if err != nil {
		return ResolutionUnknown, err
	}

	for _, summary := range listing.Chapters {
		if summary.Number != chapter {
			continue
		}
		if quran.ValidVerse(summary, verse) {
			return ResolutionValid, nil
		}
		return ResolutionStale, nil
	}
	return ResolutionUnknown, nil
}

// # Cache Warming

/*
Prefetch loads and caches several chapters concurrently.

Description: Invalid and repeated numbers are ignored. Already cached
chapters are fetched again so the cache entry is refreshed.

Returns:
  - int: Number of chapters cached
  - error: The first upstream failure
*/
func (service *Service) Prefetch(context context.Context, numbers []int) (int, error) {
	seen := make(map[int]bool, len(numbers))
	wanted := slice.Filter(numbers, func(number int) bool {
		if !quran.ValidChapter(number) || seen[number] {
			return false
		}
		seen[number] = true
		return true
	})
	if len(wanted) == 0 {
		return 0, nil
	}

	payloads, err := provider.FetchChapters(context, service.source, wanted, service.concurrency)
	if err != nil {
		return 0, err
	}

	cached := 0
	for index, payload := range payloads {
		chapter, ok, _ := service.pick(payload, wanted[index])
		if !ok {
			service.logger.WarnContext(context, "catalog_prefetch_missing", slog.Int("chapter", wanted[index]))
			continue
		}
		if err := service.cache.Set(context, ChapterKey(chapter.Number), chapter); err != nil {
			return cached, err
		}
		cached++
	}

	service.logger.InfoContext(context, "catalog_prefetched",
		slog.Int("requested", len(wanted)),
		slog.Int("cached", cached),
	)
	return cached, nil
}
