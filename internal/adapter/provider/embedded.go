// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package provider

import (
	"bytes"
	"context"

	"github.com/taibuivan/tilawa/internal/quran/normalize"
)

// EmbeddedSource serves the bundled demo chapters. It never touches the network.
type EmbeddedSource struct{}

// NewEmbeddedSource creates an EmbeddedSource.
func NewEmbeddedSource() EmbeddedSource {
	return EmbeddedSource{}
}

// Name implements [Source].
func (EmbeddedSource) Name() string {
	return "embedded"
}

// ListChapters implements [Source].
func (source EmbeddedSource) ListChapters(ctx context.Context) (any, error) {
	return source.decode(ctx)
}

// GetChapter implements [Source]. The demo document holds every chapter it knows.
func (source EmbeddedSource) GetChapter(ctx context.Context, _ int) (any, error) {
	return source.decode(ctx)
}

// decode returns a fresh payload each call so callers may not share maps.
func (EmbeddedSource) decode(ctx context.Context) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return normalize.Decode(bytes.NewReader(normalize.FallbackJSON()))
}
