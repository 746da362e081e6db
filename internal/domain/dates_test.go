package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStartOfDay(t *testing.T) {
	in := time.Date(2025, 3, 14, 23, 59, 58, 123, time.Local)
	out := StartOfDay(in)

	require.Equal(t, 2025, out.Year())
	require.Equal(t, time.March, out.Month())
	require.Equal(t, 14, out.Day())
	require.Equal(t, 0, out.Hour())
	require.Equal(t, 0, out.Minute())
	require.Equal(t, 0, out.Second())
	require.Equal(t, 0, out.Nanosecond())
}

func TestSameDay(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want bool
	}{
		{
			name: "same calendar day, different times",
			a:    time.Date(2025, 3, 14, 0, 0, 1, 0, time.Local),
			b:    time.Date(2025, 3, 14, 23, 59, 59, 0, time.Local),
			want: true,
		},
		{
			name: "adjacent days across midnight",
			a:    time.Date(2025, 3, 14, 23, 59, 59, 0, time.Local),
			b:    time.Date(2025, 3, 15, 0, 0, 0, 0, time.Local),
			want: false,
		},
		{
			name: "same day different year",
			a:    time.Date(2024, 3, 14, 12, 0, 0, 0, time.Local),
			b:    time.Date(2025, 3, 14, 12, 0, 0, 0, time.Local),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SameDay(tt.a, tt.b))
		})
	}
}

func TestDayKeyRoundTrip(t *testing.T) {
	in := time.Date(2025, 1, 2, 15, 4, 5, 0, time.Local)

	key := DayKey(in)
	require.Equal(t, "2025-01-02", key)

	parsed, err := ParseDay(key)
	require.NoError(t, err)
	require.True(t, SameDay(in, parsed))
	require.Equal(t, 0, parsed.Hour())
}

func TestParseDayRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "2025-13-01", "not-a-date", "2025/01/02"} {
		_, err := ParseDay(s)
		require.Error(t, err, "input %q", s)
	}
}
