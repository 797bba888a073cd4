package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndCompare(t *testing.T) {
	h := New(bcrypt.MinCost)
	hashed, err := h.Hash("Passw0rd!")
	require.NoError(t, err)

	assert.True(t, h.Compare(hashed, "Passw0rd!"))
	assert.False(t, h.Compare(hashed, "passw0rd!"))

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestNew_InvalidCostFallsBack(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, New(0).Cost())
	assert.Equal(t, bcrypt.DefaultCost, New(99).Cost())
	assert.Equal(t, 12, New(12).Cost())
}

func TestHasher_DigestLongIdentifier(t *testing.T) {
	h := New(bcrypt.MinCost)
	long := strings.Repeat("x", 200) + "@example.com"

	a, err := h.Digest(long)
	require.NoError(t, err)
	b, err := h.Digest(long)
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "salted digests differ")
	assert.NotContains(t, a, "example.com")
}
