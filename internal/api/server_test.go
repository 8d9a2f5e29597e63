// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tilawa/internal/api"
	"github.com/taibuivan/tilawa/internal/core/catalog"
	"github.com/taibuivan/tilawa/internal/core/recitation"
	"github.com/taibuivan/tilawa/internal/library/reader"
	"github.com/taibuivan/tilawa/internal/platform/config"
	"github.com/taibuivan/tilawa/internal/platform/sec"
	"github.com/taibuivan/tilawa/internal/users/session"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// unusedRepository fails every call. Reader routes in these tests stop at the
// session check or never touch storage.
type unusedRepository struct{ reader.Repository }

func newRouter(t *testing.T, health api.HealthDependencies) http.Handler {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	tokens, err := sec.NewTokenService("0123456789abcdef0123456789abcdef", "tilawa.test", time.Hour)
	require.NoError(t, err)

	catalogService, err := catalog.NewService(catalog.Dependencies{Logger: discard()})
	require.NoError(t, err)

	liveness, readiness := api.NewHealthHandlers(health, discard())
	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Session:    session.NewHandler(session.NewService(tokens, discard())),
		Catalog:    catalog.NewHandler(catalogService),
		Recitation: recitation.NewHandler(catalogService.Reciters(), catalogService),
		Reader:     reader.NewHandler(reader.NewService(unusedRepository{}, catalogService, catalogService.Reciters(), discard())),
	}

	cfg := &config.Config{Environment: "development"}
	return api.NewRouter(ctx, cfg, discard(), tokens, handlers)
}

func get(router http.Handler, target, token string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestRouter_Routes(t *testing.T) {
	router := newRouter(t, api.HealthDependencies{})

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"health", "/health", http.StatusOK},
		{"ready_without_checks", "/ready", http.StatusOK},
		{"chapters", "/api/v1/chapters", http.StatusOK},
		{"chapter_by_slug", "/api/v1/chapters/al-fatihah", http.StatusOK},
		{"verse", "/api/v1/chapters/1/verses/1", http.StatusOK},
		{"reciters", "/api/v1/reciters", http.StatusOK},
		{"playlist", "/api/v1/chapters/1/playlist", http.StatusOK},
		{"reader_requires_session", "/api/v1/reader/settings", http.StatusUnauthorized},
		{"unknown_route", "/api/v2/chapters", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := get(router, tt.target, "")
			assert.Equal(t, tt.want, recorder.Code, recorder.Body.String())
		})
	}
}

func TestRouter_SessionLifecycle(t *testing.T) {
	router := newRouter(t, api.HealthDependencies{})

	request := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader(""))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var created struct {
		Data session.Session `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	require.NotEmpty(t, created.Data.Token)

	recorder = get(router, "/api/v1/sessions/current", created.Data.Token)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), created.Data.SessionID)

	recorder = get(router, "/api/v1/sessions/current", "forged.token.value")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestReadiness(t *testing.T) {
	healthy := func() error { return nil }
	down := func() error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		deps       api.HealthDependencies
		wantStatus int
		wantBody   string
	}{
		{"all_ready", api.HealthDependencies{CheckDatabase: healthy, CheckCache: healthy}, http.StatusOK, `"status":"ready"`},
		{"database_down", api.HealthDependencies{CheckDatabase: down, CheckCache: healthy}, http.StatusServiceUnavailable, `"status":"degraded"`},
		{"cache_down", api.HealthDependencies{CheckDatabase: healthy, CheckCache: down}, http.StatusServiceUnavailable, `connection refused`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := get(newRouter(t, tt.deps), "/ready", "")
			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.wantBody)
		})
	}
}
