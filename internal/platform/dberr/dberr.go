// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/taibuivan/tilawa/internal/platform/apperr"
)

// PostgreSQL SQLSTATE codes classified by [Wrap].
const (
	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
	codeOutOfRange      = "22003"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Constraint violations carry a client-meaningful status
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case codeUniqueViolation:
			conflict := apperr.Conflict("Resource already exists")
			conflict.Cause = err
			return conflict
		case codeCheckViolation, codeOutOfRange:
			unprocessable := apperr.Unprocessable("Value rejected by storage constraint")
			unprocessable.Cause = err
			return unprocessable
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
