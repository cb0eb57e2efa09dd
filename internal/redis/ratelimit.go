package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Key pattern: ratelimit:alert:{fingerprint}, expiring after the window.

// AlertLimitConfig bounds how many alerts with the same fingerprint are sent
// per window.
type AlertLimitConfig struct {
	Limit  int
	Window time.Duration
}

// DefaultAlertLimitConfig returns sensible defaults
func DefaultAlertLimitConfig() AlertLimitConfig {
	return AlertLimitConfig{
		Limit:  5,
		Window: 60 * time.Second,
	}
}

// AlertLimiter throttles repeated alerts across every instance sharing the
// Redis server.
type AlertLimiter struct {
	client *goredis.Client
	config AlertLimitConfig
}

func NewAlertLimiter(client *goredis.Client, config AlertLimitConfig) *AlertLimiter {
	if config.Limit < 1 || config.Window < time.Second {
		config = DefaultAlertLimitConfig()
	}
	return &AlertLimiter{client: client, config: config}
}

// Allow consumes one slot for the fingerprint and reports whether the alert
// may be sent.
func (r *AlertLimiter) Allow(ctx context.Context, fingerprint string) (bool, error) {
	return r.checkLimit(ctx, alertKey(fingerprint), r.config.Limit, r.config.Window)
}

func alertKey(fingerprint string) string {
	sum := sha256.Sum256([]byte(fingerprint))
	return fmt.Sprintf("ratelimit:alert:%s", hex.EncodeToString(sum[:8]))
}

var limitScript = goredis.NewScript(`
	local key = KEYS[1]
	local limit = tonumber(ARGV[1])
	local window = tonumber(ARGV[2])

	local current = tonumber(redis.call('GET', key) or '0')
	if current >= limit then
		return 0
	end

	if redis.call('INCR', key) == 1 then
		redis.call('EXPIRE', key, window)
	end
	return 1
`)

// checkLimit performs an atomic fixed-window counter check
func (r *AlertLimiter) checkLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	allowed, err := limitScript.Run(ctx, r.client, []string{key}, limit, int(window.Seconds())).Int64()
	if err != nil {
		return false, fmt.Errorf("rate limit check failed: %w", err)
	}
	return allowed == 1, nil
}
