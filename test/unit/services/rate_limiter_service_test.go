package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	impl "github.com/avatarctic/profile-lookup/internal/application/services"
	"github.com/avatarctic/profile-lookup/test/mocks"
)

func TestRateLimiter_AllowsUpToBurstThenBlocks(t *testing.T) {
	count := 0
	start := time.Now().Truncate(time.Minute)
	repo := &mocks.RateLimitRepositoryMock{IncrementWindowFn: func(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
		if clientKey != "10.0.0.1" || keyPrefix != "rl" {
			t.Fatalf("unexpected key %q prefix %q", clientKey, keyPrefix)
		}
		count++
		return count, start, nil
	}}
	svc := impl.NewRateLimiterService(repo, &impl.RateLimiterConfig{RequestsPerMinute: 2, BurstMultiplier: 1.5, KeyPrefix: "rl"}, nil)

	for i := 1; i <= 3; i++ {
		allowed, remaining, limit, reset, err := svc.Allow(context.Background(), "10.0.0.1")
		if err != nil || !allowed {
			t.Fatalf("request %d: expected allowed, got allowed=%v err=%v", i, allowed, err)
		}
		if limit != 2 || remaining != 3-i {
			t.Fatalf("request %d: limit=%d remaining=%d", i, limit, remaining)
		}
		if !reset.Equal(start.Add(time.Minute)) {
			t.Fatalf("unexpected reset %v", reset)
		}
	}
	allowed, remaining, _, _, err := svc.Allow(context.Background(), "10.0.0.1")
	if err != nil || allowed || remaining != 0 {
		t.Fatalf("expected blocked request, got allowed=%v remaining=%d err=%v", allowed, remaining, err)
	}
}

func TestRateLimiter_FailsOpenOnStoreError(t *testing.T) {
	repo := &mocks.RateLimitRepositoryMock{IncrementWindowFn: func(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
		return 0, time.Time{}, errors.New("redis down")
	}}
	svc := impl.NewRateLimiterService(repo, nil, nil)
	allowed, _, limit, _, err := svc.Allow(context.Background(), "c")
	if err == nil || !allowed {
		t.Fatalf("expected fail-open with error, got allowed=%v err=%v", allowed, err)
	}
	if limit != 60 {
		t.Fatalf("expected default limit 60, got %d", limit)
	}
}
