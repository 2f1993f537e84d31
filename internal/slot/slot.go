// Package slot stores one opaque value under a fixed key. Carts use it to
// survive restarts.
package slot

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("slot: no value stored")

// Slot is a single durable value. Get returns ErrNotFound when nothing has
// been stored or the value was removed. Remove on an empty slot is not an
// error.
type Slot interface {
	Get(ctx context.Context) ([]byte, error)
	Set(ctx context.Context, data []byte) error
	Remove(ctx context.Context) error
}

// Factory binds a Slot to an owner, typically a user id.
type Factory func(owner string) Slot
