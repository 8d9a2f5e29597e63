// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tilawa/internal/platform/middleware"
	requestutil "github.com/taibuivan/tilawa/internal/platform/request"
	"github.com/taibuivan/tilawa/internal/platform/respond"
	"github.com/taibuivan/tilawa/internal/platform/validate"
	"github.com/taibuivan/tilawa/pkg/pagination"
)

// Handler implements the HTTP layer for reader state.
type Handler struct {
	service *Service
}

// NewHandler constructs a new reader [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the reader endpoints. Every route needs a session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession)

		// Bookmarks
		r.Get("/bookmarks", handler.listBookmarks)
		r.Post("/bookmarks", handler.toggleBookmark)
		r.Delete("/bookmarks/{chapter}/{verse}", handler.removeBookmark)

		// Reading positions
		r.Get("/positions", handler.listPositions)
		r.Get("/positions/{chapter}", handler.getPosition)
		r.Put("/positions/{chapter}", handler.recordPosition)

		// Settings
		r.Get("/settings", handler.getSettings)
		r.Patch("/settings", handler.updateSettings)
		r.Delete("/settings", handler.resetSettings)
		r.Post("/settings/repeat", handler.cycleRepeat)

		r.Post("/import", handler.importSnapshot)
	})

	return router
}

// # Bookmark Endpoints

/*
GET /api/v1/reader/bookmarks.

Request:
  - page, limit: query parameters

Response:
  - 200: []Bookmark with pagination meta
  - 401: No session
*/
func (handler *Handler) listBookmarks(writer http.ResponseWriter, request *http.Request) {
	sessionID, err := requestutil.RequiredSessionID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	bookmarks, total, err := handler.service.ListBookmarks(request.Context(), sessionID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, bookmarks, pagination.NewMeta(page.Page, page.Limit, total))
}

/*
POST /api/v1/reader/bookmarks.

Request:
  - body: VerseRef

Response:
  - 200: BookmarkState
  - 400: Invalid JSON or reference
*/
func (handler *Handler) toggleBookmark(writer http.ResponseWriter, request *http.Request) {
	sessionID, err := requestutil.RequiredSessionID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var ref VerseRef
	if err := requestutil.DecodeJSON(writer, request, &ref); err != nil {
		respond.Error(writer, request, err)
		return
	}

	state, err := handler.service.ToggleBookmark(request.Context(), sessionID, ref)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, state)
}

/*
DELETE /api/v1/reader/bookmarks/{chapter}/{verse}.

Response:
  - 204: Removed
  - 404: No such bookmark
*/
func (handler *Handler) removeBookmark(writer http.ResponseWriter, request *http.Request) {
	sessionID, err := requestutil.RequiredSessionID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	ref, err := verseRefParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemoveBookmark(request.Context(), sessionID, ref); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func verseRefParams(request *http.Request) (VerseRef, error) {
	chapter, err := requestutil.IntParam(request, "chapter")
	if err != nil {
		return VerseRef{}, err
	}
	verse, err := requestutil.IntParam(request, "verse")
	if err != nil {
		return VerseRef{}, err
	}
	return VerseRef{Chapter: chapter, Verse: verse}, nil
}

// # Position Endpoints

/*
GET /api/v1/reader/positions.

Response:
  - 200: map of chapter number to last read verse
*/
func (handler *Handler) listPositions(writer http.ResponseWriter, request *http.Request) {
	sessionID, err := requestutil.RequiredSessionID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	positions, err := handler.service.Positions(request.Context(), sessionID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, positions)
}

// GET /api/v1/reader/positions/{chapter}.
func (handler *Handler) getPosition(writer http.ResponseWriter, request *http.Request) {
	sessionID, err := requestutil.RequiredSessionID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := requestutil.IntParam(request, "chapter")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	position, err := handler.service.Position(request.Context(), sessionID, chapter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, position)
}

type recordPositionRequest struct {
	Verse int `json:"verse"`
}

/*
PUT /api/v1/reader/positions/{chapter}.

Request:
  - body: {"verse": n}

Response:
  - 200: Position
  - 400: Invalid chapter or verse
*/
func (handler *Handler) recordPosition(writer http.ResponseWriter, request *http.Request) {
	sessionID, err := requestutil.RequiredSessionID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := requestutil.IntParam(request, "chapter")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input recordPositionRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	position, err := handler.service.RecordPosition(request.Context(), sessionID, VerseRef{Chapter: chapter, Verse: input.Verse})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, position)
}

// # Settings Endpoints

// GET /api/v1/reader/settings.
func (handler *Handler) getSettings(writer http.ResponseWriter, request *http.Request) {
	sessionID, err := requestutil.RequiredSessionID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	settings, err := handler.service.Settings(request.Context(), sessionID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, settings)
}

/*
PATCH /api/v1/reader/settings.

Request:
  - body: SettingsPatch (partial JSON)

Response:
  - 200: Settings after the patch
  - 400: Empty patch or invalid values
*/
func (handler *Handler) updateSettings(writer http.ResponseWriter, request *http.Request) {
	sessionID, err := requestutil.RequiredSessionID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch SettingsPatch
	if err := requestutil.DecodeJSON(writer, request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if patch.Empty() {
		respond.Error(writer, request, validate.RequiredError("settings", "At least one setting is required"))
		return
	}

	settings, err := handler.service.UpdateSettings(request.Context(), sessionID, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, settings)
}

// DELETE /api/v1/reader/settings restores the defaults and returns them.
func (handler *Handler) resetSettings(writer http.ResponseWriter, request *http.Request) {
	sessionID, err := requestutil.RequiredSessionID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	settings, err := handler.service.ResetSettings(request.Context(), sessionID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, settings)
}

// POST /api/v1/reader/settings/repeat.
func (handler *Handler) cycleRepeat(writer http.ResponseWriter, request *http.Request) {
	sessionID, err := requestutil.RequiredSessionID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	settings, err := handler.service.CycleRepeat(request.Context(), sessionID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, settings)
}

// # Import

/*
POST /api/v1/reader/import.

Request:
  - body: Snapshot (browser storage keys)

Response:
  - 200: ImportReport
*/
func (handler *Handler) importSnapshot(writer http.ResponseWriter, request *http.Request) {
	sessionID, err := requestutil.RequiredSessionID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var snapshot Snapshot
	if err := requestutil.DecodeJSON(writer, request, &snapshot); err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.service.Import(request.Context(), sessionID, snapshot)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, report)
}
