package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewEntryRetroactivity(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 30, 0, 0, time.Local)

	tests := []struct {
		name            string
		date            time.Time
		wantRetroactive bool
	}{
		{
			name:            "dated yesterday is retroactive",
			date:            time.Date(2025, 6, 9, 18, 0, 0, 0, time.Local),
			wantRetroactive: true,
		},
		{
			name:            "dated today is not retroactive",
			date:            time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local),
			wantRetroactive: false,
		},
		{
			name: "dated today late evening is not retroactive",
			// Time of day on the chosen date carries no meaning.
			date:            time.Date(2025, 6, 10, 23, 59, 0, 0, time.Local),
			wantRetroactive: false,
		},
		{
			name:            "dated last month is retroactive",
			date:            time.Date(2025, 5, 1, 0, 0, 0, 0, time.Local),
			wantRetroactive: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := NewEntry(uuid.New(), "title", "content", tt.date, now)
			require.Equal(t, tt.wantRetroactive, entry.IsRetroactive)
		})
	}
}

func TestEntryRetroactivityPinnedThroughClone(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 30, 0, 0, time.Local)
	entry := NewEntry(uuid.New(), "t", "c", now.AddDate(0, 0, -3), now)
	require.True(t, entry.IsRetroactive)

	// Simulate the edit path: clone, change fields, the flag rides along.
	edited := entry.Clone()
	edited.Title = "edited"
	edited.Date = now
	require.True(t, edited.IsRetroactive)
}

func TestEntryIsFromToday(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.Local)

	today := NewEntry(uuid.New(), "", "", now, now)
	require.True(t, today.IsFromToday(now))
	require.False(t, today.IsFromToday(now.AddDate(0, 0, 1)))

	yesterday := NewEntry(uuid.New(), "", "", now.AddDate(0, 0, -1), now)
	require.False(t, yesterday.IsFromToday(now))
}

func TestEntryCloneIsDeep(t *testing.T) {
	entry := NewEntry(uuid.New(), "t", "c", time.Now(), time.Now())
	entry.Images = []string{"a", "b"}

	clone := entry.Clone()
	clone.Images[0] = "mutated"

	require.Equal(t, "a", entry.Images[0])
}
