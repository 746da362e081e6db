package domain

import (
	"errors"
	"fmt"
)

// Domain errors - these represent business rule violations. They are
// distinct from infrastructure errors (database, network, etc.).
var (
	// ErrEntryNotFound indicates the requested entry does not exist.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrEditWindowClosed indicates an attempt to persist changes to an
	// already-existing entry whose date is not the current calendar day.
	ErrEditWindowClosed = errors.New("entry can only be edited on its own day")

	// ErrCoverLimitExceeded indicates an attempt to mark a cover photo
	// beyond the MaxCoverPhotos limit. Non-fatal; the cover set stays
	// unchanged.
	ErrCoverLimitExceeded = errors.New("cover photo limit reached")

	// ErrCoverIndexOutOfRange indicates a cover index that does not
	// address a position in the entry's image list.
	ErrCoverIndexOutOfRange = errors.New("cover index out of range")

	// ErrUndecryptable indicates decryption of a locked entry failed,
	// from a wrong key or corrupted ciphertext. Callers must treat this
	// as a distinct failure state, not as an empty-but-valid entry.
	ErrUndecryptable = errors.New("entry could not be decrypted")

	// ErrEntryNotLocked indicates an unlock was attempted on an entry
	// that is not locked.
	ErrEntryNotLocked = errors.New("entry is not locked")

	// ErrProfileNotFound indicates no profile record exists for the user.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrUsernameTooLong indicates a username above MaxUsernameLength.
	ErrUsernameTooLong = errors.New("username exceeds maximum length")

	// ErrImageNotFound indicates the requested image reference does not
	// resolve to stored content.
	ErrImageNotFound = errors.New("image not found")
)

// DomainError wraps a domain error with additional context.
type DomainError struct {
	// Err is the underlying domain error.
	Err error

	// Message provides additional context.
	Message string

	// Resource identifies the affected resource (e.g., entry id).
	Resource string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Err.Error(), e.Message, e.Resource)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is/errors.As.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError with context.
func NewDomainError(err error, message, resource string) *DomainError {
	return &DomainError{Err: err, Message: message, Resource: resource}
}
