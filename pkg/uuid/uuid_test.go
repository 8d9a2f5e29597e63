// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	googleuuid "github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tilawa/pkg/uuid"
)

func TestNew(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	assert.NotEqual(t, first, second)
	assert.True(t, uuid.Valid(first))

	parsed, err := googleuuid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, googleuuid.Version(7), parsed.Version())
}

func TestValid(t *testing.T) {
	assert.False(t, uuid.Valid(""))
	assert.False(t, uuid.Valid("session-1"))
	assert.True(t, uuid.Valid("0190b6f0-7c1a-7000-8000-000000000000"))
}
