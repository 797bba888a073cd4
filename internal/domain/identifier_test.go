package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentifier_Phone(t *testing.T) {
	id, err := ParseIdentifier(" 13900001111 ")
	require.NoError(t, err)
	assert.Equal(t, Identifier{Value: "13900001111", Kind: KindPhone}, id)
}

func TestParseIdentifier_EmailIsLowerCased(t *testing.T) {
	id, err := ParseIdentifier("Alice@Example.COM")
	require.NoError(t, err)
	assert.Equal(t, Identifier{Value: "alice@example.com", Kind: KindEmail}, id)
}

func TestParseIdentifier_Invalid(t *testing.T) {
	for _, raw := range []string{"", "   ", "12345", "a@", "1390000111x"} {
		_, err := ParseIdentifier(raw)
		require.Error(t, err, raw)
		assert.True(t, errors.Is(err, ErrBadRequest), raw)
	}
}

func TestIdentifier_Masked(t *testing.T) {
	assert.Equal(t, "139****1111", Identifier{Value: "13900001111", Kind: KindPhone}.Masked())
	assert.Equal(t, "a***@b.com", Identifier{Value: "alice@b.com", Kind: KindEmail}.Masked())
}

func TestIdentifier_ValidCode(t *testing.T) {
	phone := Identifier{Value: "13900001111", Kind: KindPhone}
	assert.True(t, phone.ValidCode("654321"))
	assert.False(t, phone.ValidCode("65432"))
	assert.False(t, phone.ValidCode(""))

	email := Identifier{Value: "a@b.com", Kind: KindEmail}
	assert.True(t, email.ValidCode("opaque-token"))
	assert.False(t, email.ValidCode(""))
}

func TestActivationToken_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tok := &ActivationToken{ExpiresAt: now.Add(5 * time.Minute)}

	assert.False(t, tok.Expired(now))
	assert.Equal(t, 5*time.Minute, tok.Remaining(now))
	assert.True(t, tok.Expired(now.Add(5*time.Minute)), "expiry instant itself is expired")
	assert.Equal(t, time.Duration(0), tok.Remaining(now.Add(time.Hour)))
}
