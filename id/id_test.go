package id

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsValidULID(t *testing.T) {
	t.Parallel()

	s := New()
	assert.Len(t, s, 26)
	assert.True(t, Valid(s))
}

// Not parallel: NewAt with an old timestamp resets the monotonic run.
func TestNewIsMonotonic(t *testing.T) {
	prev := New()
	for i := 0; i < 100; i++ {
		next := New()
		assert.Greater(t, next, prev)
		prev = next
	}
}

func TestNewAtCarriesTimestamp(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	s, err := NewAt(at)
	require.NoError(t, err)
	u, err := ulid.ParseStrict(s)
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(at), u.Time())
}

func TestValid(t *testing.T) {
	t.Parallel()

	assert.False(t, Valid(""))
	assert.False(t, Valid("not-a-ulid"))
}

func TestNewAtOutOfRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		at   time.Time
	}{
		{"before epoch", time.Date(1969, 12, 31, 23, 0, 0, 0, time.UTC)},
		{"past max", ulid.Time(ulid.MaxTime()).Add(time.Second)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewAt(tt.at)
			assert.ErrorIs(t, err, ErrTimeRange)
			assert.Empty(t, s)
		})
	}
}

func TestNewAtEpoch(t *testing.T) {
	t.Parallel()

	s, err := NewAt(time.Unix(0, 0))
	require.NoError(t, err)
	assert.True(t, Valid(s))
}
