package slot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/cache"
)

// cacheSlot keeps the value in a Cache. The stored bytes must be valid JSON
// since the cache encodes values as JSON.
type cacheSlot struct {
	cache cache.Cache
	key   string
	ttl   time.Duration
}

func NewCache(c cache.Cache, key string, ttl time.Duration) Slot {
	return &cacheSlot{cache: c, key: key, ttl: ttl}
}

// CacheFactory keys every owner's slot as cartItems:<owner>.
func CacheFactory(c cache.Cache, ttl time.Duration) Factory {
	return func(owner string) Slot {
		return NewCache(c, cache.Key(cache.CartKeyPrefix, owner), ttl)
	}
}

func (s *cacheSlot) Get(ctx context.Context) ([]byte, error) {
	var raw json.RawMessage

	found, err := s.cache.Get(ctx, s.key, &raw)
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, ErrNotFound
	}

	return raw, nil
}

func (s *cacheSlot) Set(ctx context.Context, data []byte) error {
	if !json.Valid(data) {
		return fmt.Errorf("slot %s: value is not valid JSON", s.key)
	}

	return s.cache.Set(ctx, s.key, json.RawMessage(data), s.ttl)
}

func (s *cacheSlot) Remove(ctx context.Context) error {
	return s.cache.Delete(ctx, s.key)
}
