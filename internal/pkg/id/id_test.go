package id

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Unique(t *testing.T) {
	a, b := New(), New()
	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
}

func TestNewAt_EncodesTimestamp(t *testing.T) {
	at := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)
	parsed, err := ulid.Parse(NewAt(at))
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(at), parsed.Time())
}
