package bolt_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/storage"
	"github.com/aaravmahajanofficial/storefront/internal/storage/bolt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) storage.BlobStore {
	t.Helper()

	db, err := bolt.Open(filepath.Join(t.TempDir(), "nested", "blobs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return bolt.NewBlobStore(db, "http://localhost:8080/")
}

func TestBlobStore(t *testing.T) {
	t.Run("Success - Put then Get", func(t *testing.T) {
		// Arrange
		s := newStore(t)
		blob := storage.Blob{ContentType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}

		// Act
		url, err := s.Put(t.Context(), "profile_photos/abc", blob)
		require.NoError(t, err)
		got, getErr := s.Get(t.Context(), "profile_photos/abc")

		// Assert
		require.NoError(t, getErr)
		assert.Equal(t, "http://localhost:8080/api/v1/blobs/profile_photos/abc", url)
		assert.Equal(t, blob, *got)
	})

	t.Run("Success - Put replaces", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Put(t.Context(), "k", storage.Blob{ContentType: "image/png", Data: []byte("one")})
		require.NoError(t, err)
		_, err = s.Put(t.Context(), "k", storage.Blob{ContentType: "image/jpeg", Data: []byte("two")})
		require.NoError(t, err)

		got, err := s.Get(t.Context(), "k")

		require.NoError(t, err)
		assert.Equal(t, "two", string(got.Data))
		assert.Equal(t, "image/jpeg", got.ContentType)
	})

	t.Run("Failure - Missing blob", func(t *testing.T) {
		s := newStore(t)

		_, err := s.Get(t.Context(), "nope")

		require.ErrorIs(t, err, storage.ErrBlobNotFound)
	})

	t.Run("Failure - Empty key", func(t *testing.T) {
		s := newStore(t)

		_, err := s.Put(t.Context(), "/", storage.Blob{Data: []byte("x")})

		require.Error(t, err)
	})

	t.Run("Failure - Cancelled context", func(t *testing.T) {
		s := newStore(t)
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		_, err := s.Put(ctx, "k", storage.Blob{Data: []byte("x")})

		require.ErrorIs(t, err, context.Canceled)
	})
}
