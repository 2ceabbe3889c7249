package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashVerifyRoundTrip(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	ok, err := hasher.Verify("secret1", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyMismatchIsNotAnError(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)

	ok, err := hasher.Verify("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyMalformedHashIsAnError(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	ok, err := hasher.Verify("secret1", "not-a-bcrypt-hash")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestCostFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultCost, NewPasswordHasher(0).Cost())
	assert.Equal(t, DefaultCost, NewPasswordHasher(99).Cost())
	assert.Equal(t, bcrypt.MinCost, NewPasswordHasher(bcrypt.MinCost).Cost())
	assert.Equal(t, 12, NewPasswordHasher(12).Cost())
}
