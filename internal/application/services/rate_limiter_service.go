package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/avatarctic/profile-lookup/internal/core/ports"
)

// RateLimiterService implements a fixed-window limiter per client key with a single static policy.
type RateLimiterService struct {
	repo            ports.RateLimitRepository
	limit           int
	burstMultiplier float64
	window          time.Duration
	keyPrefix       string
	logger          *logrus.Logger
}

// RateLimiterConfig groups configuration parameters for the rate limiter.
type RateLimiterConfig struct {
	RequestsPerMinute int
	BurstMultiplier   float64
	Window            time.Duration
	KeyPrefix         string
}

func NewRateLimiterService(repo ports.RateLimitRepository, cfg *RateLimiterConfig, logger *logrus.Logger) *RateLimiterService {
	limit := 60
	bm := 1.0
	w := time.Minute
	kp := "ratelimit:client"
	if cfg != nil {
		if cfg.RequestsPerMinute > 0 {
			limit = cfg.RequestsPerMinute
		}
		if cfg.BurstMultiplier > 0 {
			bm = cfg.BurstMultiplier
		}
		if cfg.Window > 0 {
			w = cfg.Window
		}
		if cfg.KeyPrefix != "" {
			kp = cfg.KeyPrefix
		}
	}
	return &RateLimiterService{repo: repo, limit: limit, burstMultiplier: bm, window: w, keyPrefix: kp, logger: logger}
}

func (s *RateLimiterService) Allow(ctx context.Context, clientKey string) (bool, int, int, time.Time, error) {
	ttl := s.window * 2
	count, windowStart, err := s.repo.IncrementWindow(ctx, clientKey, s.window, s.keyPrefix, ttl)
	reset := windowStart.Add(s.window)
	burst := int(float64(s.limit) * s.burstMultiplier)
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"client": clientKey}).WithError(err).Error("rate limiter: failed to increment window")
		}
		// fail open
		return true, burst, s.limit, reset, err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"client": clientKey, "count": count, "burst": burst}).Debug("rate limiter window state")
	}
	if count > burst {
		return false, 0, s.limit, reset, nil
	}
	return true, burst - count, s.limit, reset, nil
}
