package domain

import "time"

// DayFormat is the wire and storage representation of a calendar date.
// Dates serialize in the user's local timezone, not UTC, to avoid day-shift
// bugs around midnight.
const DayFormat = "2006-01-02"

// StartOfDay strips the time-of-day portion, returning local midnight of the
// same calendar date.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two timestamps fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsToday reports whether t falls on the current local calendar day.
func IsToday(t time.Time) bool {
	return SameDay(t, time.Now())
}

// DayKey formats a timestamp as its local calendar date (YYYY-MM-DD).
func DayKey(t time.Time) string {
	return t.Format(DayFormat)
}

// ParseDay parses a YYYY-MM-DD string into local midnight of that date.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DayFormat, s, time.Local)
}
