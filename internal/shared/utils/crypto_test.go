package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hashed, err := HashPassword("motdepasse123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hashed, "$2a$"))
	assert.NotEqual(t, "motdepasse123", hashed)
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestVerifyPassword(t *testing.T) {
	hashed, err := HashPassword("motdepasse123")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("motdepasse123", hashed))
	assert.False(t, VerifyPassword("autre", hashed))
	assert.False(t, VerifyPassword("motdepasse123", "pas-un-hash"))
}
