// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

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

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tilawa/internal/platform/apperr"
	"github.com/taibuivan/tilawa/internal/platform/middleware"
	"github.com/taibuivan/tilawa/internal/platform/sec"
	"github.com/taibuivan/tilawa/internal/users/session"
	"github.com/taibuivan/tilawa/pkg/uuid"
)

const secret = "0123456789abcdef0123456789abcdef"

func newTokens(t *testing.T) *sec.TokenService {
	t.Helper()
	tokens, err := sec.NewTokenService(secret, "tilawa.test", time.Hour)
	require.NoError(t, err)
	return tokens
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type failingIssuer struct{}

func (failingIssuer) IssueToken(string) (string, time.Time, error) {
	return "", time.Time{}, errors.New("signer offline")
}

func TestService_Start(t *testing.T) {
	tokens := newTokens(t)
	service := session.NewService(tokens, discard())

	first, err := service.Start(context.Background())
	require.NoError(t, err)
	second, err := service.Start(context.Background())
	require.NoError(t, err)

	assert.True(t, uuid.Valid(first.SessionID))
	assert.NotEqual(t, first.SessionID, second.SessionID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), first.ExpiresAt, time.Minute)

	claims, err := tokens.VerifyToken(first.Token)
	require.NoError(t, err)
	assert.Equal(t, first.SessionID, claims.SessionID)
}

func TestService_Refresh(t *testing.T) {
	tokens := newTokens(t)
	service := session.NewService(tokens, discard())

	id := uuid.New()
	refreshed, err := service.Refresh(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, refreshed.SessionID)

	claims, err := tokens.VerifyToken(refreshed.Token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.SessionID)

	_, err = service.Refresh(context.Background(), "not-a-uuid")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
}

func TestService_IssuerFailure(t *testing.T) {
	_, err := session.NewService(failingIssuer{}, discard()).Start(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperr.As(err).HTTPStatus)
}

func newRouter(t *testing.T) (http.Handler, *sec.TokenService) {
	t.Helper()

	tokens := newTokens(t)
	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokens))
	router.Mount("/sessions", session.NewHandler(session.NewService(tokens, discard())).Routes())
	return router, tokens
}

func TestHandler_Lifecycle(t *testing.T) {
	router, _ := newRouter(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/sessions", nil))
	require.Equal(t, http.StatusCreated, recorder.Code)

	var started struct {
		Data session.Session `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &started))
	require.NotEmpty(t, started.Data.Token)

	request := httptest.NewRequest(http.MethodGet, "/sessions/current", nil)
	request.Header.Set("Authorization", "Bearer "+started.Data.Token)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	var current struct {
		Data session.Session `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &current))
	assert.Equal(t, started.Data.SessionID, current.Data.SessionID)
	assert.Empty(t, current.Data.Token)
	assert.False(t, strings.Contains(recorder.Body.String(), `"token"`))

	request = httptest.NewRequest(http.MethodPost, "/sessions/refresh", nil)
	request.Header.Set("Authorization", "bearer "+started.Data.Token)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	var refreshed struct {
		Data session.Session `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &refreshed))
	assert.Equal(t, started.Data.SessionID, refreshed.Data.SessionID)
}

func TestHandler_RequiresSession(t *testing.T) {
	router, _ := newRouter(t)

	for _, target := range []string{"/sessions/current", "/sessions/refresh"} {
		method := http.MethodGet
		if strings.HasSuffix(target, "refresh") {
			method = http.MethodPost
		}

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(method, target, nil))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, target)
	}
}
