// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tilawa/internal/platform/constants"
	requestutil "github.com/taibuivan/tilawa/internal/platform/request"
	"github.com/taibuivan/tilawa/internal/platform/respond"
	"github.com/taibuivan/tilawa/internal/platform/validate"
	"github.com/taibuivan/tilawa/pkg/convert"
)

// maxAnnotateRunes bounds free text sent to the annotator.
const maxAnnotateRunes = 20000

// # Handler Implementation

// Handler exposes the chapter catalogue and the annotator over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a new catalog [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the catalogue endpoints to the v1 router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/chapters", handler.listChapters)
	router.Get("/chapters/search", handler.searchChapters)
	router.Get("/chapters/{number}", handler.getChapter)
	router.Get("/chapters/{number}/verses/{verse}", handler.getVerse)

	router.Post("/annotate", handler.annotate)
}

/*
GET /api/v1/chapters.

Response:
  - 200: Listing (fallback=true when demo chapters are shown)
*/
func (handler *Handler) listChapters(writer http.ResponseWriter, request *http.Request) {
	listing, err := handler.service.ListChapters(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if listing.Fallback {
		respond.OK(writer, listing)
		return
	}
	respond.Cacheable(writer, listing, constants.CatalogMaxAge)
}

/*
GET /api/v1/chapters/search?q=.

Response:
  - 200: []quran.ChapterSummary
*/
func (handler *Handler) searchChapters(writer http.ResponseWriter, request *http.Request) {
	chapters, err := handler.service.Search(request.Context(), request.URL.Query().Get("q"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chapters)
}

/*
GET /api/v1/chapters/{number}.

Description: {number} also accepts a chapter slug.

Request:
  - annotate: bool (fill tajwid markup)
  - lang: string (keep one translation language)
  - reciter: int (fill audio locators)

Response:
  - 200: quran.Chapter
  - 404: Chapter not found
  - 502: Upstream unavailable and chapter not in the demo set
*/
func (handler *Handler) getChapter(writer http.ResponseWriter, request *http.Request) {
	view, err := parseView(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	number, err := handler.service.ResolveNumber(request.Context(), requestutil.Param(request, "number"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.GetChapter(request.Context(), number, view)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Cacheable(writer, chapter, constants.CatalogMaxAge)
}

/*
GET /api/v1/chapters/{number}/verses/{verse}.

Response:
  - 200: quran.Verse
  - 404: Chapter or verse not found
*/
func (handler *Handler) getVerse(writer http.ResponseWriter, request *http.Request) {
	view, err := parseView(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	verse, err := requestutil.IntParam(request, "verse")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	number, err := handler.service.ResolveNumber(request.Context(), requestutil.Param(request, "number"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.service.GetVerse(request.Context(), number, verse, view)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Cacheable(writer, found, constants.CatalogMaxAge)
}

type annotateRequest struct {
	Text string `json:"text"`
}

/*
POST /api/v1/annotate.

Request:
  - text: string (Arabic text, required)

Response:
  - 200: AnnotatedText
*/
func (handler *Handler) annotate(writer http.ResponseWriter, request *http.Request) {
	var input annotateRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("text", input.Text).MaxLen("text", input.Text, maxAnnotateRunes)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, handler.service.Annotate(input.Text))
}

func parseView(request *http.Request) (View, error) {
	query := request.URL.Query()

	view := View{
		Annotate: convert.ToBool(query.Get("annotate")),
		Language: strings.ToLower(strings.TrimSpace(query.Get("lang"))),
	}

	validator := &validate.Validator{}
	validator.MaxLen("lang", view.Language, 8)

	if raw := strings.TrimSpace(query.Get("reciter")); raw != "" {
		reciter, err := strconv.Atoi(raw)
		validator.Custom("reciter", err != nil || reciter < 1, "Must be a positive integer")
		view.Reciter = reciter
	}

	return view, validator.Err()
}
