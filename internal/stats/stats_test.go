package stats

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/prn-tf/chronicle/internal/domain"
)

var testNow = time.Date(2025, 6, 10, 15, 0, 0, 0, time.Local)

// entryOn builds a minimal entry dated daysAgo days before testNow.
func entryOn(daysAgo int, retroactive bool) *domain.Entry {
	return &domain.Entry{
		ID:            uuid.New(),
		Date:          domain.StartOfDay(testNow).AddDate(0, 0, -daysAgo),
		CreatedAt:     testNow,
		IsRetroactive: retroactive,
	}
}

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name    string
		entries []*domain.Entry
		want    int
	}{
		{
			name:    "no entries",
			entries: nil,
			want:    0,
		},
		{
			name:    "single entry today",
			entries: []*domain.Entry{entryOn(0, false)},
			want:    1,
		},
		{
			name: "three consecutive days ending today",
			entries: []*domain.Entry{
				entryOn(0, false), entryOn(1, false), entryOn(2, false),
			},
			want: 3,
		},
		{
			name: "gap stops the walk",
			entries: []*domain.Entry{
				entryOn(0, false), entryOn(1, false), entryOn(3, false),
			},
			want: 2,
		},
		{
			name:    "no entry today means zero even with history",
			entries: []*domain.Entry{entryOn(1, false), entryOn(2, false)},
			want:    0,
		},
		{
			name: "retroactive entry today does not start a streak",
			entries: []*domain.Entry{
				entryOn(0, true), entryOn(1, false), entryOn(2, false),
			},
			want: 0,
		},
		{
			name: "retroactive backfill does not bridge a gap",
			entries: []*domain.Entry{
				entryOn(0, false), entryOn(1, true), entryOn(2, false),
			},
			want: 1,
		},
		{
			name: "streak longer than the activity window",
			entries: func() []*domain.Entry {
				var es []*domain.Entry
				for i := 0; i < 40; i++ {
					es = append(es, entryOn(i, false))
				}
				return es
			}(),
			want: 40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CurrentStreak(tt.entries, testNow))
		})
	}
}

func TestActivityCalendars(t *testing.T) {
	entries := []*domain.Entry{
		entryOn(0, false),
		entryOn(3, true),
		entryOn(27, false),
		entryOn(30, false), // outside the window
	}

	activity, retroactive := ActivityCalendars(entries, testNow)

	require.True(t, activity[0])
	require.True(t, activity[3])
	require.True(t, activity[27])
	require.False(t, activity[1])

	require.False(t, retroactive[0])
	require.True(t, retroactive[3])
	require.False(t, retroactive[27])
}

func TestMostFrequentWord(t *testing.T) {
	entry := func(content string) *domain.Entry {
		return &domain.Entry{Content: content}
	}

	tests := []struct {
		name    string
		entries []*domain.Entry
		want    string
	}{
		{
			name:    "no entries",
			entries: nil,
			want:    domain.NoFrequentWord,
		},
		{
			name:    "only stop words and short tokens",
			entries: []*domain.Entry{entry("the and a of to it is")},
			want:    domain.NoFrequentWord,
		},
		{
			name:    "highest count wins",
			entries: []*domain.Entry{entry("coffee coffee morning coffee morning walk")},
			want:    "coffee",
		},
		{
			name: "tie breaks toward first encountered",
			entries: []*domain.Entry{
				entry("mountain river"),
				entry("river mountain"),
			},
			want: "mountain",
		},
		{
			name:    "case and punctuation folded",
			entries: []*domain.Entry{entry("Rain! rain, RAIN... sunshine")},
			want:    "rain",
		},
		{
			name:    "counting spans entries",
			entries: []*domain.Entry{entry("garden walk"), entry("garden rest"), entry("garden")},
			want:    "garden",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, MostFrequentWord(tt.entries))
		})
	}
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize("The quick-thinking Fox; -- jumped over 12 lazy dogs!")
	require.Equal(t, []string{"quickthinking", "fox", "jumped", "lazy", "dogs"}, tokens)
}

func TestFavoriteEntriesCap(t *testing.T) {
	var entries []*domain.Entry
	for i := 0; i < 8; i++ {
		e := entryOn(i, false)
		e.IsFavorite = true
		entries = append(entries, e)
	}
	entries = append(entries, entryOn(9, false))

	favs := FavoriteEntries(entries)
	require.Len(t, favs, domain.MaxFavoriteEntries)

	// Encounter order preserved.
	for i, f := range favs {
		require.Equal(t, entries[i].ID, f.ID)
	}
}

func TestCompute(t *testing.T) {
	e1 := entryOn(0, false)
	e1.Content = "wrote some words today"
	e1.Images = []string{"a", "b"}
	e1.IsFavorite = true

	e2 := entryOn(1, false)
	e2.Content = "more words"
	e2.Images = []string{"c"}

	s := Compute([]*domain.Entry{e1, e2}, testNow)

	require.Equal(t, 2, s.TotalEntries)
	require.Equal(t, 6, s.TotalWords)
	require.Equal(t, 3, s.TotalMediaUploaded)
	require.Equal(t, 2, s.CurrentStreak)
	require.Equal(t, "words", s.MostFrequentWord)
	require.Len(t, s.FavoriteEntries, 1)
	require.True(t, s.ActivityCalendar[0])
	require.True(t, s.ActivityCalendar[1])
	require.False(t, s.ActivityCalendar[2])
}
