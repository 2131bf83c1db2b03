package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndCompare(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	password := []byte("secret123")

	hash, err := h.Hash(password)
	require.NoError(t, err)
	assert.NotEqual(t, string(password), hash)
	assert.NoError(t, h.Compare(hash, password))
}

func TestHasher_SaltsEachHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	a, err := h.Hash([]byte("same"))
	require.NoError(t, err)
	b, err := h.Hash([]byte("same"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHasher_CompareWrongPassword(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	hash, err := h.Hash([]byte("secret123"))
	require.NoError(t, err)
	assert.ErrorIs(t, h.Compare(hash, []byte("wrong")), bcrypt.ErrMismatchedHashAndPassword)
}

func TestHasher_CostClamp(t *testing.T) {
	assert.Equal(t, 12, NewHasher(12).Cost)
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(0).Cost)
	assert.Equal(t, bcrypt.MinCost, NewHasher(2).Cost)
	assert.Equal(t, bcrypt.MaxCost, NewHasher(99).Cost)
}

func TestHasher_RejectsOverlongPassword(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	_, err := h.Hash([]byte(strings.Repeat("x", MaxPasswordBytes+1)))
	assert.Error(t, err)
}
