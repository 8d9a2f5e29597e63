// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/taibuivan/tilawa/internal/platform/ctxutil"
	"github.com/taibuivan/tilawa/internal/platform/middleware"
	"github.com/taibuivan/tilawa/internal/platform/sec"
)

var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get("X-Request-ID"))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Request-ID", "client-supplied")
	handler.ServeHTTP(httptest.NewRecorder(), request)
	assert.Equal(t, "client-supplied", seen)
}

func TestRealIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"remote_addr", nil, "192.0.2.1"},
		{"real_ip", map[string]string{"X-Real-IP": "203.0.113.7"}, "203.0.113.7"},
		{"forwarded_first_hop", map[string]string{"X-Forwarded-For": "198.51.100.2, 10.0.0.1"}, "198.51.100.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			for key, value := range tt.headers {
				request.Header.Set(key, value)
			}
			assert.Equal(t, tt.want, middleware.RealIP(request))
		})
	}
}

/*
TestRateLimitWith verifies the bucket per IP and that the sweeper stops with its context.
*/
func TestRateLimitWith(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimitWith(ctx, 1, 1)(okHandler)

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "RATE_LIMITED")

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.Header.Set("X-Real-IP", "203.0.113.9")
	third := httptest.NewRecorder()
	handler.ServeHTTP(third, other)
	assert.Equal(t, http.StatusOK, third.Code)

	cancel()
}

func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

type corsConfig struct {
	development bool
	origins     []string
}

func (c corsConfig) IsDevelopment() bool      { return c.development }
func (c corsConfig) AllowedOrigins() []string { return c.origins }

func TestCORS(t *testing.T) {
	tests := []struct {
		name   string
		cfg    corsConfig
		origin string
		want   string
	}{
		{"development_allows_any", corsConfig{development: true}, "http://localhost:5173", "*"},
		{"production_allows_listed", corsConfig{origins: []string{"https://tilawa.app"}}, "https://tilawa.app", "https://tilawa.app"},
		{"production_rejects_other", corsConfig{origins: []string{"https://tilawa.app"}}, "https://evil.test", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/api/v1/chapters", nil)
			request.Header.Set("Origin", tt.origin)

			recorder := httptest.NewRecorder()
			middleware.CORS(tt.cfg)(okHandler).ServeHTTP(recorder, request)

			assert.Equal(t, tt.want, recorder.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

type stubVerifier map[string]string

func (stub stubVerifier) VerifyToken(token string) (*sec.SessionClaims, error) {
	if sessionID, ok := stub[token]; ok {
		return &sec.SessionClaims{SessionID: sessionID}, nil
	}
	return nil, errors.New("unknown token")
}

func TestAuthenticate(t *testing.T) {
	verifier := stubVerifier{"good": "session-1"}

	var seen string
	handler := middleware.Authenticate(verifier)(middleware.RequireSession(http.HandlerFunc(
		func(writer http.ResponseWriter, request *http.Request) {
			seen = ctxutil.GetSessionID(request.Context())
			writer.WriteHeader(http.StatusNoContent)
		},
	)))

	tests := []struct {
		name   string
		header string
		status int
		want   string
	}{
		{"anonymous_rejected_by_require", "", http.StatusUnauthorized, ""},
		{"valid_token", "Bearer good", http.StatusNoContent, "session-1"},
		{"lowercase_scheme", "bearer good", http.StatusNoContent, "session-1"},
		{"wrong_scheme", "Basic good", http.StatusUnauthorized, ""},
		{"unknown_token", "Bearer bad", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			request := httptest.NewRequest(http.MethodGet, "/api/v1/reader/bookmarks", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.status, recorder.Code)
			assert.Equal(t, tt.want, seen)
		})
	}
}
