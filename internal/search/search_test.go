package search

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/prn-tf/chronicle/internal/domain"
)

func makeEntry(title, content string) *domain.Entry {
	return &domain.Entry{
		ID:      uuid.New(),
		Title:   title,
		Content: content,
		Date:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local),
	}
}

func titles(entries []*domain.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Title
	}
	return out
}

func TestSearch(t *testing.T) {
	morning := makeEntry("Morning pages", "coffee and drizzle")
	hike := makeEntry("Hike", "a long walk in the rain")
	locked := makeEntry("Morning secret", "private thoughts")
	locked.IsLocked = true

	entries := []*domain.Entry{morning, hike, locked}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "empty query returns all including locked",
			query: "",
			want:  []string{"Morning pages", "Hike", "Morning secret"},
		},
		{
			name:  "whitespace query returns all",
			query: "   ",
			want:  []string{"Morning pages", "Hike", "Morning secret"},
		},
		{
			name:  "title match case-insensitive",
			query: "MORNING",
			want:  []string{"Morning pages"},
		},
		{
			name:  "content match",
			query: "rain",
			want:  []string{"Hike"},
		},
		{
			name:  "no match",
			query: "snow",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(entries, tt.query)
			require.Equal(t, tt.want, titles(got))
		})
	}
}

func TestSearchExcludesLockedWithMatchingPlaintext(t *testing.T) {
	// The locked entry's stored title happens to contain the query in the
	// clear; it must still never surface.
	locked := makeEntry("vacation plans", "beach house")
	locked.IsLocked = true

	got := Search([]*domain.Entry{locked}, "vacation")
	require.Empty(t, got)
}

func TestSortByFavorite(t *testing.T) {
	a := makeEntry("A", "")
	b := makeEntry("B", "")
	b.IsFavorite = true
	c := makeEntry("C", "")

	sorter := NewSorter(language.English)

	// Conventional favorites-first view.
	got := sorter.Sort([]*domain.Entry{a, b, c}, ByFavorite, false)
	require.Equal(t, []string{"B", "A", "C"}, titles(got))

	// Equal favorite status retains input order on both flips.
	got = sorter.Sort([]*domain.Entry{a, b, c}, ByFavorite, true)
	require.Equal(t, []string{"A", "C", "B"}, titles(got))
}

func TestSortByDate(t *testing.T) {
	old := makeEntry("old", "")
	old.Date = time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)
	mid := makeEntry("mid", "")
	mid.Date = time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	recent := makeEntry("recent", "")
	recent.Date = time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)

	sorter := NewSorter(language.English)

	got := sorter.Sort([]*domain.Entry{mid, recent, old}, ByDate, true)
	require.Equal(t, []string{"old", "mid", "recent"}, titles(got))

	got = sorter.Sort([]*domain.Entry{mid, recent, old}, ByDate, false)
	require.Equal(t, []string{"recent", "mid", "old"}, titles(got))
}

func TestSortByTitle(t *testing.T) {
	entries := []*domain.Entry{
		makeEntry("banana", ""),
		makeEntry("Apple", ""),
		makeEntry("cherry", ""),
	}

	sorter := NewSorter(language.English)
	got := sorter.Sort(entries, ByTitle, true)
	require.Equal(t, []string{"Apple", "banana", "cherry"}, titles(got))
}

func TestSortDoesNotMutateInput(t *testing.T) {
	a := makeEntry("second", "")
	a.Date = time.Date(2025, 2, 1, 0, 0, 0, 0, time.Local)
	b := makeEntry("first", "")
	b.Date = time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)

	in := []*domain.Entry{a, b}
	_ = NewSorter(language.English).Sort(in, ByDate, true)

	require.Equal(t, []string{"second", "first"}, titles(in))
}

func TestParseCriteria(t *testing.T) {
	require.Equal(t, ByDate, ParseCriteria(""))
	require.Equal(t, ByDate, ParseCriteria("bogus"))
	require.Equal(t, ByTitle, ParseCriteria(" Title "))
	require.Equal(t, ByFavorite, ParseCriteria("favorite"))
	require.Equal(t, ByDate, ParseCriteria("date"))
}
