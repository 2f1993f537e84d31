// Package storage holds binary objects such as profile photos.
package storage

import (
	"context"
	"errors"
)

var ErrBlobNotFound = errors.New("storage: blob not found")

type Blob struct {
	ContentType string
	Data        []byte
}

// BlobStore keeps blobs under slash-separated keys. Put returns the URL the
// blob can be fetched from.
type BlobStore interface {
	Put(ctx context.Context, key string, blob Blob) (string, error)
	Get(ctx context.Context, key string) (*Blob, error)
}
