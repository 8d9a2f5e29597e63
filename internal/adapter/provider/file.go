// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package provider

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/taibuivan/tilawa/internal/quran/normalize"
)

// FileSource serves one JSON document holding the whole Quran. The document
// is read and decoded once, on first use.
type FileSource struct {
	path string
	log  *slog.Logger

	once    sync.Once
	payload any
	err     error
}

// NewFileSource creates a FileSource reading path.
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	return &FileSource{path: path, log: logger.With("adapter", "file")}
}

// Name implements [Source].
func (source *FileSource) Name() string {
	return "file:" + source.path
}

// ListChapters implements [Source].
func (source *FileSource) ListChapters(ctx context.Context) (any, error) {
	return source.load(ctx)
}

// GetChapter implements [Source]. The whole document is returned; the caller
// picks the chapter after normalization.
func (source *FileSource) GetChapter(ctx context.Context, _ int) (any, error) {
	return source.load(ctx)
}

func (source *FileSource) load(ctx context.Context) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	source.once.Do(func() {
		file, err := os.Open(source.path)
		if err != nil {
			source.err = fmt.Errorf("provider: open %s: %w", source.path, err)
			return
		}
		defer file.Close()

		source.payload, source.err = normalize.Decode(file)
		if source.err == nil {
			source.log.InfoContext(ctx, "provider_file_loaded", slog.String("path", source.path))
		}
	})

	return source.payload, source.err
}
