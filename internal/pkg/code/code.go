// Package code generates numeric verification codes.
package code

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// PhoneDigits is the length of an SMS verification code.
const PhoneDigits = 6

// Numeric returns a uniformly random, zero-padded decimal string of the given length.
func Numeric(digits int) (string, error) {
	if digits < 1 || digits > 18 {
		return "", fmt.Errorf("code length %d out of range", digits)
	}
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%0*d", digits, n.Int64()), nil
}
