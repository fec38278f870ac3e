package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/storefront-catalog/internal/config"
	"github.com/redis/go-redis/v9"
)

const loginAttemptsPrefix = "login_attempts"

// RateLimiter keeps a sliding window of sign-in attempts per email in a
// sorted set scored by attempt time in milliseconds.
type RateLimiter struct {
	client *redis.Client
	cfg    *config.RateConfig
	now    func() time.Time
}

func NewRateLimiter(client *redis.Client, cfg *config.RateConfig) *RateLimiter {
	return newRateLimiter(client, cfg, time.Now)
}

func newRateLimiter(client *redis.Client, cfg *config.RateConfig, now func() time.Time) *RateLimiter {
	return &RateLimiter{client: client, cfg: cfg, now: now}
}

// CheckLoginRateLimit records an attempt and reports whether it is allowed,
// how many attempts are left, and how long to wait once none are.
func (r *RateLimiter) CheckLoginRateLimit(ctx context.Context, email string) (bool, int, time.Duration, error) {

	key := Key(loginAttemptsPrefix, email)

	now := r.now()
	nowMs := now.UnixMilli()

	// only attempts after windowStart are counted
	windowStart := nowMs - r.cfg.WindowSize.Milliseconds()

	pipe := r.client.Pipeline()

	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(nowMs), Member: strconv.FormatInt(now.UnixNano(), 10)})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, r.cfg.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, 0, fmt.Errorf("failed to record login attempt for %s: %w", key, err)
	}

	attempts := count.Val()
	if attempts <= r.cfg.MaxAttempts {
		return true, int(r.cfg.MaxAttempts - attempts), 0, nil
	}

	oldest, err := r.client.ZRangeWithScores(ctx, key, 0, 0).Result()
	if err != nil {
		return false, 0, 0, fmt.Errorf("failed to read oldest login attempt for %s: %w", key, err)
	}

	if len(oldest) == 0 {
		return false, 0, r.cfg.WindowSize, nil
	}

	retryAfter := r.cfg.WindowSize - time.Duration(nowMs-int64(oldest[0].Score))*time.Millisecond
	if retryAfter < 0 {
		retryAfter = 0
	}

	return false, 0, retryAfter, nil
}
