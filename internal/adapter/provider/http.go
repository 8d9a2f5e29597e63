// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package provider

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/tilawa/internal/platform/constants"
	"github.com/taibuivan/tilawa/internal/quran/normalize"
)

// Defaults for the gading.dev API, whose list and detail shapes the default
// alias table covers.
const (
	DefaultBaseURL     = "https://api.quran.gading.dev"
	DefaultListPath    = "/surah"
	DefaultChapterPath = "/surah/{number}"
)

const numberPlaceholder = "{number}"

// maxPayloadBytes bounds one upstream response. A whole-Quran document is a few MB.
const maxPayloadBytes = 32 << 20

// HTTPOptions configures an [HTTPSource]. Zero fields take the defaults.
type HTTPOptions struct {
	BaseURL     string
	ListPath    string
	ChapterPath string
	Timeout     time.Duration
	RetryDelay  time.Duration
}

// HTTPSource fetches payloads from a REST API.
type HTTPSource struct {
	baseURL     string
	listPath    string
	chapterPath string
	retryDelay  time.Duration
	httpClient  *http.Client
	log         *slog.Logger
}

// NewHTTPSource creates an HTTPSource, filling unset options with defaults.
func NewHTTPSource(options HTTPOptions, logger *slog.Logger) *HTTPSource {
	if options.BaseURL == "" {
		options.BaseURL = DefaultBaseURL
	}
	if options.ListPath == "" {
		options.ListPath = DefaultListPath
	}
	if options.ChapterPath == "" {
		options.ChapterPath = DefaultChapterPath
	}
	if options.Timeout <= 0 {
		options.Timeout = constants.DefaultProviderTimeout
	}
	if options.RetryDelay <= 0 {
		options.RetryDelay = constants.ProviderRetryDelay
	}

	return &HTTPSource{
		baseURL:     strings.TrimRight(options.BaseURL, "/"),
		listPath:    options.ListPath,
		chapterPath: options.ChapterPath,
		retryDelay:  options.RetryDelay,
		httpClient:  &http.Client{Timeout: options.Timeout},
		log:         logger.With("adapter", "http"),
	}
}

// Name implements [Source].
func (source *HTTPSource) Name() string {
	return "http:" + source.baseURL
}

// ListChapters implements [Source].
func (source *HTTPSource) ListChapters(ctx context.Context) (any, error) {
	return source.fetch(ctx, source.baseURL+source.listPath)
}

// GetChapter implements [Source].
func (source *HTTPSource) GetChapter(ctx context.Context, number int) (any, error) {
	path := strings.ReplaceAll(source.chapterPath, numberPlaceholder, strconv.Itoa(number))
	return source.fetch(ctx, source.baseURL+path)
}

func (source *HTTPSource) fetch(ctx context.Context, url string) (any, error) {
	source.log.DebugContext(ctx, "provider_request", slog.String("url", url))

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("provider: create request: %w", err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := source.doWithRetry(ctx, request)
	if err != nil {
		source.log.ErrorContext(ctx, "provider_request_failed", slog.String("url", url), slog.String("error", err.Error()))
		return nil, fmt.Errorf("provider: request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider: unexpected status %d from %s", response.StatusCode, url)
	}

	payload, err := normalize.Decode(io.LimitReader(response.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("provider: %w", err)
	}

	source.log.DebugContext(ctx, "provider_response", slog.String("url", url), slog.Int("status", response.StatusCode))
	return payload, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (source *HTTPSource) doWithRetry(ctx context.Context, request *http.Request) (*http.Response, error) {
	response, err := source.httpClient.Do(request)

	shouldRetry := err != nil || (response != nil && response.StatusCode >= 500)
	if !shouldRetry {
		return response, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return response, err
	}

	reason := "network error"
	if err == nil && response != nil {
		reason = fmt.Sprintf("status %d", response.StatusCode)
	}
	source.log.WarnContext(ctx, "provider_retry", slog.String("url", request.URL.String()), slog.String("reason", reason))

	// Close body from the failed attempt before retrying.
	if response != nil && response.Body != nil {
		response.Body.Close()
	}

	timer := time.NewTimer(source.retryDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	return source.httpClient.Do(request)
}
