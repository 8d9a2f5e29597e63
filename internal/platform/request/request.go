// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/tilawa/internal/platform/apperr"
	"github.com/taibuivan/tilawa/internal/platform/ctxutil"
	"github.com/taibuivan/tilawa/internal/platform/validate"
)

// maxBodyBytes bounds JSON request bodies. Reader imports are the largest payloads.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - writer: http.ResponseWriter (used to cap the body size)
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBodyBytes)
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
IntParam retrieves a named URL parameter as a positive integer.

Returns:
  - int: The parsed value
  - error: A VALIDATION_ERROR naming the parameter if it is not a positive integer
*/
func IntParam(request *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(chi.URLParam(request, name))
	if err != nil || value < 1 {
		return 0, validate.RequiredError(name, "Must be a positive integer")
	}
	return value, nil
}

/*
SessionID returns the session id of the request, or "" when anonymous.
*/
func SessionID(request *http.Request) string {
	return ctxutil.GetSessionID(request.Context())
}

/*
RequiredSessionID ensures the request carries a verified session.

Returns:
  - string: Session UUID
  - error: apperr.Unauthorized if the request is anonymous
*/
func RequiredSessionID(request *http.Request) (string, error) {
	sessionID := ctxutil.GetSessionID(request.Context())
	if sessionID == "" {
		return "", apperr.Unauthorized("Session required")
	}
	return sessionID, nil
}
