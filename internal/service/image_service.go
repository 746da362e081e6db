package service

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/prn-tf/chronicle/internal/metrics"
	"github.com/prn-tf/chronicle/internal/storage"
)

// ImageService handles image uploads and downloads. Stored images are
// referenced by opaque content-hash keys held in Entry.Images; the service
// itself knows nothing about entries.
type ImageService struct {
	store   storage.ImageStore
	maxSize int64
	logger  zerolog.Logger
}

// NewImageService creates a new ImageService. maxSize caps a single upload
// in bytes; zero means unlimited.
func NewImageService(store storage.ImageStore, maxSize int64, logger zerolog.Logger) *ImageService {
	return &ImageService{
		store:   store,
		maxSize: maxSize,
		logger:  logger.With().Str("service", "image").Logger(),
	}
}

// Upload stores an image and returns its reference key.
func (s *ImageService) Upload(ctx context.Context, reader io.Reader, size int64) (string, error) {
	if s.maxSize > 0 && size > s.maxSize {
		return "", fmt.Errorf("%w: image exceeds %d bytes", ErrInvalidInput, s.maxSize)
	}
	if s.maxSize > 0 {
		reader = io.LimitReader(reader, s.maxSize+1)
	}

	key, err := s.store.Store(ctx, reader, size)
	metrics.RecordEntryOperation("image_upload", err)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to store image")
		return "", fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	return key, nil
}

// Download opens a stored image for reading. The caller must close the
// returned reader.
func (s *ImageService) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.store.Retrieve(ctx, key)
}
