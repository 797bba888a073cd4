package code

import (
	"testing"

	"github.com/itsharenotes/signup/internal/pkg/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumeric_PhoneFormat(t *testing.T) {
	for i := 0; i < 200; i++ {
		c, err := Numeric(PhoneDigits)
		require.NoError(t, err)
		assert.True(t, validate.PhoneCode(c), c)
	}
}

func TestNumeric_OutOfRange(t *testing.T) {
	_, err := Numeric(0)
	assert.Error(t, err)
	_, err = Numeric(19)
	assert.Error(t, err)
}
