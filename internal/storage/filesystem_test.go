package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/prn-tf/chronicle/internal/domain"
)

func TestComputePath(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{
			name: "full hash sharded on two levels",
			key:  "abcdef0123456789",
			want: filepath.Join("/data", "ab", "cd", "abcdef0123456789"),
		},
		{
			name: "short key placed at the root",
			key:  "abc",
			want: filepath.Join("/data", "abc"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, computePath("/data", tt.key))
		})
	}
}

func TestFilesystemStore_RoundTrip(t *testing.T) {
	store, err := NewFilesystemStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	ctx := context.Background()
	content := []byte("image payload")
	sum := sha256.Sum256(content)
	wantKey := hex.EncodeToString(sum[:])

	key, err := store.Store(ctx, bytes.NewReader(content), int64(len(content)))
	require.NoError(t, err)
	require.Equal(t, wantKey, key)

	exists, err := store.Exists(ctx, key)
	require.NoError(t, err)
	require.True(t, exists)

	rc, err := store.Retrieve(ctx, key)
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, content, got)
}

func TestFilesystemStore_Deduplicates(t *testing.T) {
	store, err := NewFilesystemStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	ctx := context.Background()
	content := []byte("same bytes twice")

	first, err := store.Store(ctx, bytes.NewReader(content), int64(len(content)))
	require.NoError(t, err)
	second, err := store.Store(ctx, bytes.NewReader(content), int64(len(content)))
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestFilesystemStore_SizeMismatch(t *testing.T) {
	store, err := NewFilesystemStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	content := []byte("short")
	_, err = store.Store(context.Background(), bytes.NewReader(content), int64(len(content))+10)
	require.Error(t, err)
}

func TestFilesystemStore_MissingImage(t *testing.T) {
	store, err := NewFilesystemStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	ctx := context.Background()
	missing := hex.EncodeToString(bytes.Repeat([]byte{0xab}, 32))

	_, err = store.Retrieve(ctx, missing)
	require.ErrorIs(t, err, domain.ErrImageNotFound)

	exists, err := store.Exists(ctx, missing)
	require.NoError(t, err)
	require.False(t, exists)

	// Deleting what is not there is fine.
	require.NoError(t, store.Delete(ctx, missing))
}

func TestFilesystemStore_NoPartialFilesAfterStore(t *testing.T) {
	base := t.TempDir()
	store, err := NewFilesystemStore(base, zerolog.Nop())
	require.NoError(t, err)

	_, err = store.Store(context.Background(), bytes.NewReader([]byte("payload")), 7)
	require.NoError(t, err)

	leftovers, err := os.ReadDir(filepath.Join(base, ".tmp"))
	require.NoError(t, err)
	require.Empty(t, leftovers)
}
