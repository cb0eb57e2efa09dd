package redis

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestAlertKeyIsStable(t *testing.T) {
	a := alertKey("AppError|synchronous error")
	b := alertKey("AppError|synchronous error")
	c := alertKey("AppError|asynchronous error")

	if a != b {
		t.Fatalf("same fingerprint must map to the same key")
	}
	if a == c {
		t.Fatalf("different fingerprints must map to different keys")
	}
	if !strings.HasPrefix(a, "ratelimit:alert:") {
		t.Fatalf("unexpected key: %s", a)
	}
}

func TestNewAlertLimiterDefaults(t *testing.T) {
	l := NewAlertLimiter(nil, AlertLimitConfig{Limit: 0, Window: time.Millisecond})
	if l.config != DefaultAlertLimitConfig() {
		t.Fatalf("expected defaults, got %+v", l.config)
	}
	l = NewAlertLimiter(nil, AlertLimitConfig{Limit: 2, Window: time.Minute})
	if l.config.Limit != 2 {
		t.Fatalf("expected explicit config to be kept")
	}
}

func TestAlertLimiterAllow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewClient(Config{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewAlertLimiter(client, AlertLimitConfig{Limit: 2, Window: time.Minute})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(ctx, "AppError|boom")
		if err != nil || !allowed {
			t.Fatalf("call %d: expected allowed, got %v %v", i, allowed, err)
		}
	}

	allowed, err := limiter.Allow(ctx, "AppError|boom")
	if err != nil || allowed {
		t.Fatalf("expected third call to be throttled, got %v %v", allowed, err)
	}

	allowed, err = limiter.Allow(ctx, "AppError|other")
	if err != nil || !allowed {
		t.Fatalf("other fingerprints must have their own window, got %v %v", allowed, err)
	}

	if ttl := mr.TTL(alertKey("AppError|boom")); ttl != time.Minute {
		t.Fatalf("expected window ttl, got %v", ttl)
	}

	mr.FastForward(time.Minute)

	allowed, err = limiter.Allow(ctx, "AppError|boom")
	if err != nil || !allowed {
		t.Fatalf("expected counter to reset after the window, got %v %v", allowed, err)
	}
}

func TestAlertLimiterReportsRedisFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewClient(Config{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	limiter := NewAlertLimiter(client, DefaultAlertLimitConfig())
	if _, err := limiter.Allow(context.Background(), "AppError|boom"); err == nil {
		t.Fatalf("expected an error when redis is unreachable")
	}
}
