package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/redis/go-redis/v9"
)

// RateLimit is the outcome of one login attempt check.
type RateLimit struct {
	Allowed    bool
	Remaining  int
	RetryAfter int
}

type RateLimitRepository interface {
	CheckLoginRateLimit(ctx context.Context, email string) (RateLimit, error)
}

type redisRepository struct {
	client redis.Cmdable
	cfg    config.RateConfig
	now    func() time.Time
}

func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {

	slog.Info("Connecting to Redis", slog.String("url", fmt.Sprintf("redis://%s:<password>@%s:%s", cfg.RedisConnect.Username, cfg.RedisConnect.Host, cfg.RedisConnect.Port)))

	opt, err := redis.ParseURL(cfg.RedisConnect.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opt.DB = cfg.RedisConnect.DB

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("✅ Successfully connected to Redis")

	return client, nil
}

func NewRateLimitRepo(client redis.Cmdable, cfg config.RateConfig) RateLimitRepository {
	return &redisRepository{client: client, cfg: cfg, now: time.Now}
}

// CheckLoginRateLimit records an attempt for email in a sliding window kept
// as a sorted set of attempt timestamps.
func (r *redisRepository) CheckLoginRateLimit(ctx context.Context, email string) (RateLimit, error) {

	logger := middleware.LoggerFromContext(ctx)

	key := "login_attempts:" + email
	now := r.now().Unix()
	window := int64(r.cfg.WindowSize.Seconds())
	windowStart := now - window

	pipe := r.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, r.cfg.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("Redis pipeline execution failed for rate limit", slog.String("key", key), slog.Any("error", err))
		return RateLimit{}, fmt.Errorf("redis pipeline error for rate limit check: %w", err)
	}

	attempts := count.Val()

	if attempts > r.cfg.MaxAttempts {
		scores, err := r.client.ZRangeArgsWithScores(ctx, redis.ZRangeArgs{Key: key, Start: 0, Stop: 0}).Result()
		if err != nil || len(scores) == 0 {
			logger.Error("Failed to get oldest attempt time for rate limit", slog.String("key", key), slog.Any("error", err))
			return RateLimit{RetryAfter: int(window)}, fmt.Errorf("failed to get oldest attempt time: %w", err)
		}

		retryAfter := max(int64(scores[0].Score)+window-now, 0)

		logger.Warn("Rate limit exceeded for user", slog.String("email", email), slog.Int64("attempts", attempts))

		return RateLimit{RetryAfter: int(retryAfter)}, nil
	}

	return RateLimit{Allowed: true, Remaining: int(r.cfg.MaxAttempts - attempts)}, nil
}
