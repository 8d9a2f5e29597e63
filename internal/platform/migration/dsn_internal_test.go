// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToPgx5DSN(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@localhost:5432/tilawa":   "pgx5://u:p@localhost:5432/tilawa",
		"postgresql://u:p@localhost:5432/tilawa": "pgx5://u:p@localhost:5432/tilawa",
		"pgx5://u:p@localhost:5432/tilawa":       "pgx5://u:p@localhost:5432/tilawa",
		"host=localhost dbname=tilawa":           "host=localhost dbname=tilawa",
	}

	for input, want := range tests {
		assert.Equal(t, want, convertToPgx5DSN(input), input)
	}
}
