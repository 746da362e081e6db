// Package stats computes the derived statistics view over a user's entry
// set. Every function here is pure: the result depends only on the entry
// list and the supplied reference time.
package stats

import (
	"strings"
	"time"
	"unicode"

	"github.com/prn-tf/chronicle/internal/domain"
)

// Compute builds the full statistics view for an entry set. The now
// parameter anchors "today" for the streak and activity calendars.
func Compute(entries []*domain.Entry, now time.Time) *domain.Stats {
	s := &domain.Stats{
		TotalEntries:     len(entries),
		TotalWords:       TotalWords(entries),
		CurrentStreak:    CurrentStreak(entries, now),
		MostFrequentWord: MostFrequentWord(entries),
		FavoriteEntries:  FavoriteEntries(entries),
	}
	for _, e := range entries {
		s.TotalMediaUploaded += len(e.Images)
	}
	s.ActivityCalendar, s.RetroactiveActivity = ActivityCalendars(entries, now)
	return s
}

// TotalWords sums whitespace-separated tokens over all entry content.
// Content is counted as stored; locked entries contribute their ciphertext
// tokens, matching the behavior of the statistics view they feed.
func TotalWords(entries []*domain.Entry) int {
	total := 0
	for _, e := range entries {
		total += len(strings.Fields(e.Content))
	}
	return total
}

// FavoriteEntries returns the favorite shortlist: entries flagged favorite,
// in encounter order, capped at domain.MaxFavoriteEntries.
func FavoriteEntries(entries []*domain.Entry) []*domain.Entry {
	out := make([]*domain.Entry, 0, domain.MaxFavoriteEntries)
	for _, e := range entries {
		if !e.IsFavorite {
			continue
		}
		out = append(out, e)
		if len(out) == domain.MaxFavoriteEntries {
			break
		}
	}
	return out
}

// CurrentStreak counts consecutive calendar days ending today that each hold
// at least one non-retroactive entry. Retroactive entries never contribute:
// if the only entry dated today was added retroactively the streak is zero.
// The backward walk is unbounded; it stops at the first gap.
func CurrentStreak(entries []*domain.Entry, now time.Time) int {
	days := make(map[string]bool, len(entries))
	for _, e := range entries {
		if !e.IsRetroactive {
			days[domain.DayKey(e.Date)] = true
		}
	}

	day := domain.StartOfDay(now)
	if !days[domain.DayKey(day)] {
		return 0
	}

	streak := 1
	for {
		day = day.AddDate(0, 0, -1)
		if !days[domain.DayKey(day)] {
			return streak
		}
		streak++
	}
}

// ActivityCalendars builds the 28-day activity and retroactive-activity
// calendars. Index 0 is today, index i is today minus i days. A day can be
// marked in both calendars when its only entry is retroactive.
func ActivityCalendars(entries []*domain.Entry, now time.Time) (activity, retroactive [domain.ActivityWindow]bool) {
	all := make(map[string]bool, len(entries))
	retro := make(map[string]bool)
	for _, e := range entries {
		key := domain.DayKey(e.Date)
		all[key] = true
		if e.IsRetroactive {
			retro[key] = true
		}
	}

	today := domain.StartOfDay(now)
	for i := 0; i < domain.ActivityWindow; i++ {
		key := domain.DayKey(today.AddDate(0, 0, -i))
		activity[i] = all[key]
		retroactive[i] = retro[key]
	}
	return activity, retroactive
}

// MostFrequentWord tokenizes every entry's content and returns the
// highest-count qualifying token. Tokens are lowercased, stripped of
// non-word runes, and dropped when shorter than three runes or present in
// the stop-word set. Ties break toward the token that first reached the
// winning count during the scan. Returns domain.NoFrequentWord when nothing
// qualifies.
func MostFrequentWord(entries []*domain.Entry) string {
	counts := make(map[string]int)
	best := domain.NoFrequentWord
	bestCount := 0

	for _, e := range entries {
		for _, token := range Tokenize(e.Content) {
			counts[token]++
			if counts[token] > bestCount {
				best = token
				bestCount = counts[token]
			}
		}
	}
	return best
}

// Tokenize splits content into qualifying word-frequency tokens: lowercase,
// non-word runes stripped, length > 2, not a stop word.
func Tokenize(content string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return unicode.ToLower(r)
		case unicode.IsSpace(r):
			return r
		default:
			return -1
		}
	}, content)

	var out []string
	for _, token := range strings.Fields(cleaned) {
		if len([]rune(token)) <= 2 {
			continue
		}
		if stopWords[token] {
			continue
		}
		out = append(out, token)
	}
	return out
}
