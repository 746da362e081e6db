// Package domain contains the core business entities for Chronicle.
// These are pure Go structs with no external dependencies beyond identifiers,
// representing the fundamental concepts of the journaling system.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Entry represents a single dated journal entry.
// Entries are owned exclusively by the user identified by UserID; the core
// never operates across users.
type Entry struct {
	// ID is the unique identifier for the entry, assigned by the
	// repository on creation and immutable thereafter.
	ID uuid.UUID `json:"id"`

	// UserID identifies the owning user.
	UserID uuid.UUID `json:"user_id"`

	// Date is the calendar day the entry is "about", chosen by the user.
	// Time-of-day carries no significance; comparisons happen at local
	// calendar-date granularity.
	Date time.Time `json:"date"`

	// CreatedAt is the timestamp of actual creation. Set once, never
	// updated, and preserved verbatim through every edit.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last persisted mutation.
	UpdatedAt time.Time `json:"updated_at"`

	// Title is the entry title. Ciphertext when IsLocked is true.
	Title string `json:"title"`

	// Content is the free-text body. Ciphertext when IsLocked is true.
	Content string `json:"content"`

	// Images is the ordered list of opaque image references. Ordering is
	// significant: the first images (up to MaxCoverPhotos) act as cover
	// photos for preview thumbnails.
	Images []string `json:"images"`

	// IsLocked indicates the title and content are encrypted and must be
	// decrypted before display.
	IsLocked bool `json:"is_locked"`

	// IsFavorite is a user toggle, independent of lock state.
	IsFavorite bool `json:"is_favorite"`

	// IsRetroactive records whether the entry was dated earlier than the
	// day it was created. Computed once at creation and persisted; edits
	// carry the original value through unchanged. Retroactive entries are
	// excluded from streak computation.
	IsRetroactive bool `json:"is_retroactive"`
}

// NewEntry creates an unpersisted Entry for the given user. The retroactive
// flag is fixed here, at creation time, by comparing the chosen date against
// the current calendar day.
func NewEntry(userID uuid.UUID, title, content string, date time.Time, now time.Time) *Entry {
	return &Entry{
		UserID:        userID,
		Date:          StartOfDay(date),
		CreatedAt:     now,
		UpdatedAt:     now,
		Title:         title,
		Content:       content,
		Images:        []string{},
		IsRetroactive: StartOfDay(date).Before(StartOfDay(now)),
	}
}

// IsFromToday reports whether the entry's date is the current calendar day,
// which is the condition for the entry being editable once persisted.
func (e *Entry) IsFromToday(now time.Time) bool {
	return SameDay(e.Date, now)
}

// Clone returns a deep copy of the entry. Lock and unlock operations work on
// copies so callers never observe a half-transformed entry.
func (e *Entry) Clone() *Entry {
	c := *e
	c.Images = make([]string, len(e.Images))
	copy(c.Images, e.Images)
	return &c
}
