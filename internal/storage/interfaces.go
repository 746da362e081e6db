// Package storage defines interfaces for image storage backends.
// Images are content-addressed: the storage key is the SHA-256 hash of the
// image bytes, so uploading the same picture twice stores it once.
package storage

import (
	"context"
	"io"
)

// ImageStore defines the interface for image storage backends.
// Implementations include the local filesystem and S3-compatible object stores.
type ImageStore interface {
	// Store stores image content from a reader and returns the content hash
	// (64 hex characters). If an image with the same hash already exists,
	// no new object is created.
	Store(ctx context.Context, reader io.Reader, size int64) (key string, err error)

	// Retrieve retrieves an image by its content hash.
	// Returns a ReadCloser that must be closed after use.
	// Returns domain.ErrImageNotFound if no image with that hash exists.
	Retrieve(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes an image by its content hash.
	Delete(ctx context.Context, key string) error

	// Exists checks whether an image with the given hash exists.
	Exists(ctx context.Context, key string) (bool, error)
}
