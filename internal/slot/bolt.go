package slot

import (
	"context"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

const cartBucket = "cartItems"

type boltSlot struct {
	db     *bolt.DB
	bucket []byte
	key    []byte
}

// NewBolt returns a slot stored under key in the named bucket of db. The
// bucket is created on first write.
func NewBolt(db *bolt.DB, bucket, key string) Slot {
	return &boltSlot{db: db, bucket: []byte(bucket), key: []byte(key)}
}

// BoltFactory keys every owner's slot inside the shared cart bucket.
func BoltFactory(db *bolt.DB) Factory {
	return func(owner string) Slot {
		return NewBolt(db, cartBucket, owner)
	}
}

func (s *boltSlot) Get(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return ErrNotFound
		}

		v := b.Get(s.key)
		if v == nil {
			return ErrNotFound
		}

		// v is only valid inside the transaction.
		data = append([]byte(nil), v...)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}

func (s *boltSlot) Set(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(s.bucket)
		if err != nil {
			return err
		}

		return b.Put(s.key, data)
	})
	if err != nil {
		return fmt.Errorf("failed to write slot %s/%s: %w", s.bucket, s.key, err)
	}

	return nil
}

func (s *boltSlot) Remove(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return nil
		}

		return b.Delete(s.key)
	})
	if err != nil {
		return fmt.Errorf("failed to remove slot %s/%s: %w", s.bucket, s.key, err)
	}

	return nil
}
