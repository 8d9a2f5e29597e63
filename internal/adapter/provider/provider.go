// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package provider fetches raw Quran payloads from upstream sources.

A [Source] returns the decoded JSON document exactly as the upstream shaped it;
turning it into canonical chapters is the normalizer's job. Three sources exist:

  - [HTTPSource]: a REST API with a list endpoint and a per-chapter endpoint.
  - [FileSource]: one JSON file holding the whole Quran.
  - [EmbeddedSource]: the bundled demo chapters, for offline use.
*/
package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// ErrNotFound is returned when the upstream has no such chapter.
var ErrNotFound = errors.New("provider: not found")

// Source yields raw decoded JSON payloads. Implementations must be safe for concurrent use.
type Source interface {
	// ListChapters returns the payload listing every chapter.
	ListChapters(ctx context.Context) (any, error)

	// GetChapter returns the payload holding chapter number with its verses.
	// Sources without a detail endpoint may return the full document.
	GetChapter(ctx context.Context, number int) (any, error)

	// Name identifies the source in logs.
	Name() string
}

// FetchChapters fetches many chapter payloads with at most limit requests in
// flight. Results are returned in the order of numbers. The first error
// cancels the remaining fetches.
func FetchChapters(ctx context.Context, source Source, numbers []int, limit int) ([]any, error) {
	if limit < 1 {
		limit = 1
	}

	payloads := make([]any, len(numbers))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(limit)

	for index, number := range numbers {
		group.Go(func() error {
			payload, err := source.GetChapter(groupCtx, number)
			if err != nil {
				return fmt.Errorf("chapter %d: %w", number, err)
			}
			payloads[index] = payload
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return payloads, nil
}

// Kinds accepted by [Open].
const (
	KindHTTP     = "http"
	KindFile     = "file"
	KindEmbedded = "embedded"
)

// Open builds the source named by kind.
func Open(kind string, httpOptions HTTPOptions, filePath string, logger *slog.Logger) (Source, error) {
	switch kind {
	case KindHTTP:
		return NewHTTPSource(httpOptions, logger), nil
	case KindFile:
		if filePath == "" {
			return nil, errors.New("provider: file source needs a path")
		}
		return NewFileSource(filePath, logger), nil
	case KindEmbedded:
		return NewEmbeddedSource(), nil
	}
	return nil, fmt.Errorf("provider: unknown source kind %q", kind)
}
