// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session issues anonymous reading sessions.

There are no accounts. A session is a server-generated UUID signed into a
bearer token; bookmarks, reading positions and settings are keyed by it. Losing
the token loses the reader state, exactly like clearing browser storage.

# Endpoints

  - POST /sessions         : Starts a session and returns its token.
  - GET  /sessions/current : Echoes the verified session.
  - POST /sessions/refresh : Re-signs the current session with a fresh expiry.
*/
package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/tilawa/internal/platform/apperr"
	"github.com/taibuivan/tilawa/internal/platform/validate"
	"github.com/taibuivan/tilawa/pkg/uuid"
)

// Session is the token handed to a client together with what it encodes.
type Session struct {
	Token     string    `json:"token,omitempty"`
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Issuer signs session tokens. [sec.TokenService] implements it.
type Issuer interface {
	IssueToken(sessionID string) (string, time.Time, error)
}

// # Service Layer

// Service starts and refreshes sessions.
type Service struct {
	issuer Issuer
	logger *slog.Logger
}

// NewService constructs a new session [Service].
func NewService(issuer Issuer, logger *slog.Logger) *Service {
	return &Service{issuer: issuer, logger: logger}
}

// Start creates a new session id and signs it.
func (service *Service) Start(context context.Context) (Session, error) {
	session, err := service.sign(uuid.New())
	if err != nil {
		return Session{}, err
	}

	service.logger.DebugContext(context, "session_started", slog.String("session_id", session.SessionID))
	return session, nil
}

/*
Refresh signs an existing session id again with a new expiry.

Parameters:
  - context: context.Context
  - sessionID: string (the verified id from the current token)

Returns:
  - Session: The re-signed session
  - error: VALIDATION_ERROR when the id is not a UUID
*/
func (service *Service) Refresh(context context.Context, sessionID string) (Session, error) {
	validator := &validate.Validator{}
	if err := validator.UUID("session_id", sessionID).Err(); err != nil {
		return Session{}, err
	}

	session, err := service.sign(sessionID)
	if err != nil {
		return Session{}, err
	}

	service.logger.DebugContext(context, "session_refreshed", slog.String("session_id", sessionID))
	return session, nil
}

func (service *Service) sign(sessionID string) (Session, error) {
	token, expiresAt, err := service.issuer.IssueToken(sessionID)
	if err != nil {
		return Session{}, apperr.Internal(err)
	}
	return Session{Token: token, SessionID: sessionID, ExpiresAt: expiresAt}, nil
}
