package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("pw1secret", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "pw1secret", hash)

	assert.True(t, CheckPasswordHash("pw1secret", hash))
	assert.False(t, CheckPasswordHash("pw2secret", hash))
	assert.False(t, CheckPasswordHash("pw1secret", "not-a-hash"))
}

func TestHashEmbedsCost(t *testing.T) {
	hash, err := HashPassword("pw1secret", 6)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 6, cost)

	// Cost zero falls back to the library default.
	hash, err = HashPassword("pw1secret", 0)
	require.NoError(t, err)
	cost, err = bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestHashUsesFreshSalt(t *testing.T) {
	first, err := HashPassword("pw1secret", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPassword("pw1secret", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
