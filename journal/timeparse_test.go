package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	t.Parallel()

	want := time.Date(2024, 6, 3, 14, 30, 0, 0, time.UTC)
	for _, in := range []string{
		"2024-06-03T14:30:00Z",
		"2024-06-03T16:30:00+02:00",
		"2024-06-03 14:30:00+00:00",
		"2024-06-03T14:30:00",
		"2024-06-03 14:30:00",
		"2024-06-03 14:30",
		"  2024-06-03T14:30  ",
	} {
		got, err := ParseTime(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%q parsed as %s", in, got)
	}

	d, err := ParseTime("2024-06-03")
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC).Equal(d))

	_, err = ParseTime("06/03/2024")
	assert.Error(t, err)
}

func TestParseTimeIn(t *testing.T) {
	t.Parallel()

	est := time.FixedZone("EST", -5*60*60)

	got, err := ParseTimeIn("2024-01-10 09:30", est)
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 1, 10, 14, 30, 0, 0, time.UTC).Equal(got))

	// An explicit offset wins over loc.
	got, err = ParseTimeIn("2024-01-10T09:30:00Z", est)
	require.NoError(t, err)
	assert.Equal(t, 9, got.UTC().Hour())
}

func TestLooseTimeScan(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		src       any
		wantSet   bool
		malformed bool
	}{
		{name: "null", src: nil},
		{name: "time", src: ts, wantSet: true},
		{name: "zero time", src: time.Time{}, malformed: true},
		{name: "text", src: "2024-01-01 12:00:00", wantSet: true},
		{name: "bytes", src: []byte("2024-01-01T12:00:00Z"), wantSet: true},
		{name: "blank", src: "  "},
		{name: "garbage", src: "soon", malformed: true},
		{name: "number", src: int64(42), malformed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lt looseTime
			require.NoError(t, lt.Scan(tt.src))
			assert.Equal(t, tt.wantSet, lt.t != nil)
			assert.Equal(t, tt.malformed, lt.malformed)
			if tt.wantSet {
				assert.True(t, ts.Equal(*lt.t))
			}
		})
	}
}
