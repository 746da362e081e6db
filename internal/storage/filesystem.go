package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/prn-tf/chronicle/internal/domain"
)

// FilesystemStore stores images on the local filesystem under a sharded
// directory layout. Writes go to a temporary file first and are renamed
// into place, so a crash mid-upload never leaves a partial image visible.
type FilesystemStore struct {
	basePath string
	logger   zerolog.Logger
}

// NewFilesystemStore creates a filesystem-backed image store rooted at basePath.
// The base and temp directories are created if they do not exist.
func NewFilesystemStore(basePath string, logger zerolog.Logger) (*FilesystemStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(basePath, ".tmp"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	return &FilesystemStore{
		basePath: basePath,
		logger:   logger.With().Str("storage", "filesystem").Logger(),
	}, nil
}

// Store writes the image content to disk and returns its SHA-256 hash.
func (s *FilesystemStore) Store(ctx context.Context, reader io.Reader, size int64) (string, error) {
	tmp, err := os.CreateTemp(filepath.Join(s.basePath, ".tmp"), "upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	hasher := sha256.New()
	written, err := io.Copy(io.MultiWriter(tmp, hasher), reader)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	if size > 0 && written != size {
		return "", fmt.Errorf("size mismatch: expected %d bytes, wrote %d", size, written)
	}

	key := hex.EncodeToString(hasher.Sum(nil))
	finalPath := computePath(s.basePath, key)

	// Same content already stored.
	if _, err := os.Stat(finalPath); err == nil {
		return key, nil
	}

	if err := os.MkdirAll(shardDir(s.basePath, key), 0o755); err != nil {
		return "", fmt.Errorf("failed to create shard directory: %w", err)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return "", fmt.Errorf("failed to finalize image: %w", err)
	}

	s.logger.Debug().Str("key", key).Int64("size", written).Msg("image stored")
	return key, nil
}

// Retrieve opens the stored image for reading.
func (s *FilesystemStore) Retrieve(ctx context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(computePath(s.basePath, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return f, nil
}

// Delete removes the stored image. Deleting a missing image is not an error.
func (s *FilesystemStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(computePath(s.basePath, key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// Exists reports whether an image with the given hash is stored.
func (s *FilesystemStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := os.Stat(computePath(s.basePath, key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat image: %w", err)
	}
	return true, nil
}

var _ ImageStore = (*FilesystemStore)(nil)
