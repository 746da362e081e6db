// Package service provides business logic services for Chronicle.
package service

import "errors"

// Common service errors.
var (
	// ErrInvalidInput indicates a request that failed validation before
	// reaching the repository.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEntryBusy indicates another mutation of the same entry is in
	// flight and the per-entry lock could not be acquired.
	ErrEntryBusy = errors.New("entry is busy")

	// ErrInternalError wraps unexpected repository or storage failures.
	ErrInternalError = errors.New("internal server error")
)
