package bolt

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/storage"
	bolt "go.etcd.io/bbolt"
)

const (
	dataBucket = "blobs"
	typeBucket = "blob_types"

	// BlobRoute is where the HTTP layer serves blobs from.
	BlobRoute = "/api/v1/blobs/"
)

// Open opens (or creates) the bolt file at path, creating its directory.
func Open(path string) (*bolt.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt file %s: %w", path, err)
	}

	return db, nil
}

type blobStore struct {
	db      *bolt.DB
	baseURL string
}

// NewBlobStore keeps blobs in db and hands out URLs under baseURL.
func NewBlobStore(db *bolt.DB, baseURL string) storage.BlobStore {
	return &blobStore{db: db, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *blobStore) Put(ctx context.Context, key string, blob storage.Blob) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key = strings.Trim(key, "/")
	if key == "" {
		return "", fmt.Errorf("blob key is required")
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		data, err := tx.CreateBucketIfNotExists([]byte(dataBucket))
		if err != nil {
			return err
		}

		types, err := tx.CreateBucketIfNotExists([]byte(typeBucket))
		if err != nil {
			return err
		}

		if err := data.Put([]byte(key), blob.Data); err != nil {
			return err
		}

		return types.Put([]byte(key), []byte(blob.ContentType))
	})
	if err != nil {
		return "", fmt.Errorf("failed to store blob %s: %w", key, err)
	}

	return s.url(key), nil
}

func (s *blobStore) Get(ctx context.Context, key string) (*storage.Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key = strings.Trim(key, "/")

	var blob *storage.Blob

	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(dataBucket))
		if data == nil {
			return storage.ErrBlobNotFound
		}

		v := data.Get([]byte(key))
		if v == nil {
			return storage.ErrBlobNotFound
		}

		blob = &storage.Blob{Data: append([]byte(nil), v...)}

		if types := tx.Bucket([]byte(typeBucket)); types != nil {
			blob.ContentType = string(types.Get([]byte(key)))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return blob, nil
}

func (s *blobStore) url(key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}

	return s.baseURL + BlobRoute + strings.Join(segments, "/")
}
