// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/taibuivan/tilawa/internal/platform/apperr"
	"github.com/taibuivan/tilawa/internal/platform/constants"
	"github.com/taibuivan/tilawa/internal/platform/ctxutil"
	"github.com/taibuivan/tilawa/internal/platform/respond"
	"github.com/taibuivan/tilawa/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify session tokens in middleware.
//
// Defining it here decouples the middleware from [sec.TokenService], so
// handler tests can inject a stub.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.SessionClaims, error)
}

// Authenticate extracts and verifies the session token from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, parse and verify the token via [TokenVerifier].
//  4. Inject [*sec.SessionClaims] into the request context for downstream use.
//
// # Parameters
//   - verifier: The TokenVerifier instance.
//
// # Returns
//   - An [http.Handler] middleware.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			scheme, tokenStr, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(tokenStr) == "" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(strings.TrimSpace(tokenStr))
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired session"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			if recorder, ok := writer.(*statusRecorder); ok {
				recorder.sessionID = claims.SessionID
			}

			ctx := ctxutil.WithSession(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireSession blocks requests that carry no verified session.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetSession(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Session required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
