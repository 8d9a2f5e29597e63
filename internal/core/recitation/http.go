// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recitation

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tilawa/internal/platform/apperr"
	"github.com/taibuivan/tilawa/internal/platform/constants"
	requestutil "github.com/taibuivan/tilawa/internal/platform/request"
	"github.com/taibuivan/tilawa/internal/platform/respond"
	"github.com/taibuivan/tilawa/internal/platform/validate"
	"github.com/taibuivan/tilawa/internal/quran"
	"github.com/taibuivan/tilawa/pkg/convert"
)

// ChapterLookup resolves the verse count of a chapter for playlists.
type ChapterLookup interface {
	Summary(context context.Context, number int) (quran.ChapterSummary, error)
}

// # Handler Implementation

// Handler serves the reciter list and chapter playlists.
type Handler struct {
	catalog  *Catalog
	chapters ChapterLookup
}

// NewHandler constructs a new recitation [Handler].
func NewHandler(catalog *Catalog, chapters ChapterLookup) *Handler {
	return &Handler{catalog: catalog, chapters: chapters}
}

// RegisterRoutes attaches the recitation endpoints to the v1 router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/reciters", handler.listReciters)
	router.Get("/chapters/{number}/playlist", handler.playlist)
	router.Get("/chapters/{number}/verses/{verse}/next", handler.next)
}

/*
GET /api/v1/reciters.

Response:
  - 200: []Reciter
*/
func (handler *Handler) listReciters(writer http.ResponseWriter, request *http.Request) {
	respond.Cacheable(writer, handler.catalog.List(), constants.CatalogMaxAge)
}

/*
GET /api/v1/chapters/{number}/playlist.

Request:
  - reciter: int (defaults to the default reciter)
  - from: int (starting verse, defaults to 1)

Response:
  - 200: Playlist
  - 400: VALIDATION_ERROR on a bad chapter number or unknown reciter
  - 404: Chapter not found
*/
func (handler *Handler) playlist(writer http.ResponseWriter, request *http.Request) {
	number, err := requestutil.IntParam(request, "number")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	query := request.URL.Query()
	reciter, err := handler.catalog.Select(convert.ToIntD(query.Get("reciter"), 0))
	if err != nil {
		if errors.Is(err, ErrUnknownReciter) {
			respond.Error(writer, request, validate.RequiredError("reciter", "No reciter with this id"))
			return
		}
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.chapters.Summary(request.Context(), number)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, handler.catalog.Playlist(chapter, reciter, convert.ToIntD(query.Get("from"), 1)))
}

/*
GET /api/v1/chapters/{number}/verses/{verse}/next.

Description: What plays once the given verse ends.

Request:
  - repeat: none | one | all (default none)
  - autoplay: bool (default true, continue into the next chapter)
  - reciter: int

Response:
  - 200: Following
  - 204: Playback stops
  - 400: VALIDATION_ERROR
  - 404: Chapter or verse not found
*/
func (handler *Handler) next(writer http.ResponseWriter, request *http.Request) {
	number, err := requestutil.IntParam(request, "number")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	verse, err := requestutil.IntParam(request, "verse")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	query := request.URL.Query()
	mode, err := ParseRepeatMode(query.Get("repeat"))
	if err != nil {
		respond.Error(writer, request, validate.RequiredError("repeat", "Must be one of: "+strings.Join(RepeatModes(), ", ")))
		return
	}

	reciter, err := handler.catalog.Select(convert.ToIntD(query.Get("reciter"), 0))
	if err != nil {
		respond.Error(writer, request, validate.RequiredError("reciter", "No reciter with this id"))
		return
	}

	chapter, err := handler.chapters.Summary(request.Context(), number)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if !quran.ValidVerse(chapter, verse) {
		respond.Error(writer, request, apperr.NotFound("Verse"))
		return
	}

	cue, playing := Advance(Cue{Chapter: number, Verse: verse}, chapter.VerseCount, mode, convert.ToBoolD(query.Get("autoplay"), true))
	if !playing {
		respond.NoContent(writer)
		return
	}

	respond.OK(writer, Following{
		Cue:   cue,
		Audio: handler.catalog.Locator(reciter, cue.Chapter, cue.Verse),
	})
}
