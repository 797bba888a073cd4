// Package hash wraps bcrypt as the one-way hashing primitive for passwords
// and email activation tokens.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes with a fixed bcrypt work factor.
type Hasher struct {
	cost int
}

// New returns a Hasher. A cost outside bcrypt's range falls back to bcrypt.DefaultCost.
func New(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Cost is the effective work factor.
func (h *Hasher) Cost() int { return h.cost }

// Hash returns the bcrypt hash of s. Inputs longer than bcrypt's 72-byte
// limit are rejected.
func (h *Hasher) Hash(s string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(s), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(b), nil
}

// Compare reports whether plain matches hashed.
func (h *Hasher) Compare(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// Digest derives an opaque activation token from an identifier. The
// identifier is reduced with SHA-256 first so long addresses stay within
// bcrypt's input limit; the bcrypt salt makes every token distinct.
func (h *Hasher) Digest(identifier string) (string, error) {
	sum := sha256.Sum256([]byte(identifier))
	return h.Hash(hex.EncodeToString(sum[:]))
}
