// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tilawa/internal/platform/ctxutil"
	"github.com/taibuivan/tilawa/internal/platform/middleware"
	"github.com/taibuivan/tilawa/internal/platform/respond"
)

// Handler implements the session endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new session [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for the session endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.start)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession)
		r.Get("/current", handler.current)
		r.Post("/refresh", handler.refresh)
	})

	return router
}

/*
POST /api/v1/sessions.

Response:
  - 201: Session (token, session_id, expires_at)
*/
func (handler *Handler) start(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.service.Start(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, session)
}

/*
GET /api/v1/sessions/current.

Response:
  - 200: Session without its token
  - 401: No session
*/
func (handler *Handler) current(writer http.ResponseWriter, request *http.Request) {
	claims := ctxutil.GetSession(request.Context())

	current := Session{SessionID: claims.SessionID}
	if claims.ExpiresAt != nil {
		current.ExpiresAt = claims.ExpiresAt.Time
	}
	respond.OK(writer, current)
}

/*
POST /api/v1/sessions/refresh.

Response:
  - 200: Session with a new token for the same session id
  - 401: No session
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.service.Refresh(request.Context(), ctxutil.GetSessionID(request.Context()))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, session)
}
