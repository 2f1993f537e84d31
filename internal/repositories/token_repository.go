package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/cache"
)

// TokenRepository remembers signed-out tokens until they would have expired.
type TokenRepository interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type tokenRepository struct {
	cache cache.Cache
	now   func() time.Time
}

func NewTokenRepo(c cache.Cache) TokenRepository {
	return &tokenRepository{cache: c, now: time.Now}
}

func (r *tokenRepository) Revoke(ctx context.Context, tokenID string, until time.Time) error {

	ttl := until.Sub(r.now())
	if ttl <= 0 {
		return nil
	}

	if err := r.cache.Set(ctx, cache.Key(cache.RevokedTokenKeyPrefix, tokenID), true, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

func (r *tokenRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {

	var revoked bool

	found, err := r.cache.Get(ctx, cache.Key(cache.RevokedTokenKeyPrefix, tokenID), &revoked)
	if err != nil {
		return false, fmt.Errorf("failed to check token: %w", err)
	}

	return found && revoked, nil
}
