package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/cache"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Unix(1_700_000_100, 0)

func TestCheckLoginRateLimit(t *testing.T) {
	cfg := config.RateConfig{MaxAttempts: 3, WindowSize: 60 * time.Second}
	key := "login_attempts:a@example.com"
	now := fixedNow.Unix()

	setup := func(t *testing.T) (*redisRepository, redismock.ClientMock) {
		t.Helper()

		client, mock := redismock.NewClientMock()
		repo := NewRateLimitRepo(client, cfg).(*redisRepository)
		repo.now = func() time.Time { return fixedNow }

		return repo, mock
	}

	expectPipeline := func(mock redismock.ClientMock, count int64) {
		mock.ExpectZRemRangeByScore(key, "0", "1700000040").SetVal(0)
		mock.ExpectZAdd(key, redis.Z{Score: float64(now), Member: now}).SetVal(1)
		mock.ExpectZCard(key).SetVal(count)
		mock.ExpectExpire(key, cfg.WindowSize).SetVal(true)
	}

	t.Run("Success - Under the limit", func(t *testing.T) {
		// Arrange
		repo, mock := setup(t)
		expectPipeline(mock, 1)

		// Act
		limit, err := repo.CheckLoginRateLimit(t.Context(), "a@example.com")

		// Assert
		require.NoError(t, err)
		assert.True(t, limit.Allowed)
		assert.Equal(t, 2, limit.Remaining)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Over the limit", func(t *testing.T) {
		// Arrange
		repo, mock := setup(t)
		expectPipeline(mock, 4)
		mock.ExpectZRangeArgsWithScores(redis.ZRangeArgs{Key: key, Start: 0, Stop: 0}).
			SetVal([]redis.Z{{Score: float64(now - 20), Member: "x"}})

		// Act
		limit, err := repo.CheckLoginRateLimit(t.Context(), "a@example.com")

		// Assert
		require.NoError(t, err)
		assert.False(t, limit.Allowed)
		assert.Equal(t, 40, limit.RetryAfter)
	})

	t.Run("Failure - Pipeline error", func(t *testing.T) {
		repo, mock := setup(t)
		mock.ExpectZRemRangeByScore(key, "0", "1700000040").SetErr(errors.New("redis down"))

		_, err := repo.CheckLoginRateLimit(t.Context(), "a@example.com")

		require.Error(t, err)
	})
}

func TestTokenRepository(t *testing.T) {
	setup := func(t *testing.T) (*tokenRepository, redismock.ClientMock) {
		t.Helper()

		client, mock := redismock.NewClientMock()
		c := cache.NewRedisCache(client, &config.CacheConfig{DefaultTTL: time.Minute})
		repo := NewTokenRepo(c).(*tokenRepository)
		repo.now = func() time.Time { return fixedNow }

		return repo, mock
	}

	t.Run("Success - Revoke until expiry", func(t *testing.T) {
		repo, mock := setup(t)
		mock.ExpectSet("revoked_token:jti-1", []byte("true"), 2*time.Hour).SetVal("OK")

		err := repo.Revoke(t.Context(), "jti-1", fixedNow.Add(2*time.Hour))

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Expired token is not stored", func(t *testing.T) {
		repo, mock := setup(t)

		err := repo.Revoke(t.Context(), "jti-1", fixedNow.Add(-time.Minute))

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Revoked", func(t *testing.T) {
		repo, mock := setup(t)
		mock.ExpectGet("revoked_token:jti-1").SetVal("true")

		revoked, err := repo.IsRevoked(t.Context(), "jti-1")

		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("Success - Not revoked", func(t *testing.T) {
		repo, mock := setup(t)
		mock.ExpectGet("revoked_token:jti-2").RedisNil()

		revoked, err := repo.IsRevoked(t.Context(), "jti-2")

		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("Failure - Redis error", func(t *testing.T) {
		repo, mock := setup(t)
		mock.ExpectGet("revoked_token:jti-3").SetErr(errors.New("redis down"))

		_, err := repo.IsRevoked(t.Context(), "jti-3")

		require.Error(t, err)
	})
}
