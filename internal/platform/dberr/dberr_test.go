// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tilawa/internal/platform/apperr"
	"github.com/taibuivan/tilawa/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"no_rows", pgx.ErrNoRows, http.StatusNotFound},
		{"wrapped_no_rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), http.StatusNotFound},
		{"unique_violation", &pgconn.PgError{Code: "23505"}, http.StatusConflict},
		{"check_violation", &pgconn.PgError{Code: "23514"}, http.StatusUnprocessableEntity},
		{"numeric_out_of_range", &pgconn.PgError{Code: "22003"}, http.StatusUnprocessableEntity},
		{"other_pg_error", &pgconn.PgError{Code: "42P01"}, http.StatusInternalServerError},
		{"plain_error", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tt.err, "list bookmarks")

			appError := apperr.As(wrapped)
			require.NotNil(t, appError)
			assert.Equal(t, tt.status, appError.HTTPStatus)
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "noop"))
}
