// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tilawa/internal/core/catalog"
	"github.com/taibuivan/tilawa/internal/quran"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	router := chi.NewRouter()
	catalog.NewHandler(newService(t, newStubSource(t))).RegisterRoutes(router)
	return router
}

func serve(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var request *http.Request
	if body == "" {
		request = httptest.NewRequest(method, target, nil)
	} else {
		request = httptest.NewRequest(method, target, strings.NewReader(body))
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestHandler_Status(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{"list", http.MethodGet, "/chapters", "", http.StatusOK},
		{"search", http.MethodGet, "/chapters/search?q=baqa", "", http.StatusOK},
		{"chapter_by_number", http.MethodGet, "/chapters/2", "", http.StatusOK},
		{"chapter_by_slug", http.MethodGet, "/chapters/al-baqarah?annotate=true", "", http.StatusOK},
		{"chapter_unknown_slug", http.MethodGet, "/chapters/al-kahf", "", http.StatusNotFound},
		{"chapter_malformed_slug", http.MethodGet, "/chapters/al_kahf", "", http.StatusBadRequest},
		{"chapter_out_of_range", http.MethodGet, "/chapters/999", "", http.StatusNotFound},
		{"bad_reciter", http.MethodGet, "/chapters/2?reciter=abc", "", http.StatusBadRequest},
		{"unknown_reciter", http.MethodGet, "/chapters/2?reciter=77", "", http.StatusBadRequest},
		{"verse", http.MethodGet, "/chapters/2/verses/2", "", http.StatusOK},
		{"verse_not_a_number", http.MethodGet, "/chapters/2/verses/x", "", http.StatusBadRequest},
		{"verse_missing", http.MethodGet, "/chapters/2/verses/3", "", http.StatusNotFound},
		{"annotate", http.MethodPost, "/annotate", `{"text":"قُلْ هُوَ"}`, http.StatusOK},
		{"annotate_blank", http.MethodPost, "/annotate", `{"text":"  "}`, http.StatusBadRequest},
		{"annotate_malformed", http.MethodPost, "/annotate", `{"text":`, http.StatusBadRequest},
	}

	router := newRouter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(t, router, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.status, recorder.Code, recorder.Body.String())
		})
	}
}

func TestHandler_ChapterBody(t *testing.T) {
	recorder := serve(t, newRouter(t), http.MethodGet, "/chapters/al-baqarah?annotate=true&lang=EN&reciter=1", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data quran.Chapter `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	assert.Equal(t, "public, max-age=3600", recorder.Header().Get("Cache-Control"))
	assert.Contains(t, recorder.Body.String(), `<span class=`)

	assert.Equal(t, 2, body.Data.Number)
	require.Len(t, body.Data.Verses, 2)
	assert.NotEmpty(t, body.Data.Verses[0].Annotated)
	assert.Equal(t, map[string]string{"en": "Alif, Lam, Meem."}, body.Data.Verses[0].Translations)
	assert.Equal(t, "https://everyayah.com/data/Alafasy_128kbps/002001.mp3", body.Data.Verses[0].Audio)
}

func TestHandler_ListAndSearchBody(t *testing.T) {
	router := newRouter(t)

	var listing struct {
		Data catalog.Listing `json:"data"`
	}
	recorder := serve(t, router, http.MethodGet, "/chapters", "")
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &listing))
	assert.False(t, listing.Data.Fallback)
	assert.Len(t, listing.Data.Chapters, 3)

	var search struct {
		Data []quran.ChapterSummary `json:"data"`
	}
	recorder = serve(t, router, http.MethodGet, "/chapters/search?q=zzz", "")
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &search))
	assert.NotNil(t, search.Data)
	assert.Empty(t, search.Data)
}
