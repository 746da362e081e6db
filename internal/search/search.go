// Package search implements free-text filtering and multi-criteria sorting
// over journal entries.
package search

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/prn-tf/chronicle/internal/domain"
)

// Criteria selects the sort key.
type Criteria string

const (
	// ByDate sorts on the entry's calendar date.
	ByDate Criteria = "date"

	// ByTitle sorts on the title with locale-aware collation.
	ByTitle Criteria = "title"

	// ByFavorite groups favorites together; with ascending=false the
	// favorites come first, which is the conventional presentation.
	ByFavorite Criteria = "favorite"
)

// ParseCriteria maps a query-string value onto a Criteria, defaulting to
// ByDate for unknown input.
func ParseCriteria(s string) Criteria {
	switch Criteria(strings.ToLower(strings.TrimSpace(s))) {
	case ByTitle:
		return ByTitle
	case ByFavorite:
		return ByFavorite
	default:
		return ByDate
	}
}

// Search filters entries by a free-text query. A query that trims to empty
// returns the full set unfiltered. Otherwise entries match on a
// case-insensitive substring of title or content. Locked entries are
// excluded from results entirely: their fields hold ciphertext and must not
// be substring-matched or leaked.
func Search(entries []*domain.Entry, query string) []*domain.Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return entries
	}

	out := make([]*domain.Entry, 0, len(entries))
	for _, e := range entries {
		if e.IsLocked {
			continue
		}
		if strings.Contains(strings.ToLower(e.Title), q) ||
			strings.Contains(strings.ToLower(e.Content), q) {
			out = append(out, e)
		}
	}
	return out
}

// Sorter sorts entries without mutating the input, stable with respect to
// equal keys. Title comparison is locale-aware.
type Sorter struct {
	collator *collate.Collator
}

// NewSorter creates a Sorter collating titles for the given language.
func NewSorter(tag language.Tag) *Sorter {
	return &Sorter{collator: collate.New(tag)}
}

// Sort returns a sorted copy of entries. The ascending flag negates the
// comparator's sign: ascending=true yields oldest-first / A-to-Z /
// favorites-last; ascending=false the reverse, so the conventional
// favorites-first and newest-first views use ascending=false.
func (s *Sorter) Sort(entries []*domain.Entry, criteria Criteria, ascending bool) []*domain.Entry {
	out := make([]*domain.Entry, len(entries))
	copy(out, entries)

	cmp := s.comparator(criteria)
	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if !ascending {
			c = -c
		}
		return c < 0
	})
	return out
}

// comparator returns the ascending-orientation comparator for a criteria.
func (s *Sorter) comparator(criteria Criteria) func(a, b *domain.Entry) int {
	switch criteria {
	case ByTitle:
		return func(a, b *domain.Entry) int {
			return s.collator.CompareString(a.Title, b.Title)
		}
	case ByFavorite:
		return func(a, b *domain.Entry) int {
			switch {
			case a.IsFavorite && !b.IsFavorite:
				return 1
			case !a.IsFavorite && b.IsFavorite:
				return -1
			default:
				return 0
			}
		}
	default: // ByDate
		return func(a, b *domain.Entry) int {
			switch {
			case a.Date.Before(b.Date):
				return -1
			case a.Date.After(b.Date):
				return 1
			default:
				return 0
			}
		}
	}
}
