package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modlingo/modlingo/internal/auth"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, auth.CheckPasswordHash("hunter2", hash))
	assert.False(t, auth.CheckPasswordHash("wrong", hash))
	assert.False(t, auth.CheckPasswordHash("hunter2", "not-a-hash"))
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, auth.ValidatePassword("short"))
	assert.NoError(t, auth.ValidatePassword("longenough"))
}
