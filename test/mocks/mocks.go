package mocks

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/avatarctic/profile-lookup/internal/core/domain/profile"
	"github.com/avatarctic/profile-lookup/internal/core/ports"
)

// UpstreamClientMock is a lightweight mock for UpstreamClient that counts calls
type UpstreamClientMock struct {
	NameValue string
	FetchFn   func(ctx context.Context, key string) (*ports.UpstreamResponse, error)

	calls atomic.Int32
}

func (m *UpstreamClientMock) Name() string {
	if m.NameValue != "" {
		return m.NameValue
	}
	return "mock"
}

func (m *UpstreamClientMock) Fetch(ctx context.Context, key string) (*ports.UpstreamResponse, error) {
	m.calls.Add(1)
	if m.FetchFn != nil {
		return m.FetchFn(ctx, key)
	}
	return nil, fmt.Errorf("FetchFn not implemented")
}

// Calls reports how many times Fetch has been invoked.
func (m *UpstreamClientMock) Calls() int { return int(m.calls.Load()) }

// StaticUpstream returns a mock that always answers with status and body.
func StaticUpstream(status int, body string) *UpstreamClientMock {
	return &UpstreamClientMock{FetchFn: func(ctx context.Context, key string) (*ports.UpstreamResponse, error) {
		return &ports.UpstreamResponse{StatusCode: status, Body: []byte(body)}, nil
	}}
}

// ProfileLookupServiceMock mocks ports.ProfileLookupService
type ProfileLookupServiceMock struct {
	LookupProfileFn func(ctx context.Context, username string) (*profile.CanonicalProfile, error)
}

func (m *ProfileLookupServiceMock) LookupProfile(ctx context.Context, username string) (*profile.CanonicalProfile, error) {
	if m.LookupProfileFn != nil {
		return m.LookupProfileFn(ctx, username)
	}
	return nil, fmt.Errorf("LookupProfileFn not implemented")
}

// PhotoLookupServiceMock mocks ports.PhotoLookupService
type PhotoLookupServiceMock struct {
	LookupPhotoFn func(ctx context.Context, phone, countryCode string) (*ports.PhotoLookupResult, error)
}

func (m *PhotoLookupServiceMock) LookupPhoto(ctx context.Context, phone, countryCode string) (*ports.PhotoLookupResult, error) {
	if m.LookupPhotoFn != nil {
		return m.LookupPhotoFn(ctx, phone, countryCode)
	}
	return nil, fmt.Errorf("LookupPhotoFn not implemented")
}

// RateLimiterServiceMock mocks ports.RateLimiterService
type RateLimiterServiceMock struct {
	AllowFn func(ctx context.Context, clientKey string) (bool, int, int, time.Time, error)
}

func (m *RateLimiterServiceMock) Allow(ctx context.Context, clientKey string) (bool, int, int, time.Time, error) {
	if m.AllowFn != nil {
		return m.AllowFn(ctx, clientKey)
	}
	return true, 1, 1, time.Now().Add(time.Minute), nil
}

// RateLimitRepositoryMock mocks ports.RateLimitRepository
type RateLimitRepositoryMock struct {
	IncrementWindowFn func(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error)
}

func (m *RateLimitRepositoryMock) IncrementWindow(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
	if m.IncrementWindowFn != nil {
		return m.IncrementWindowFn(ctx, clientKey, window, keyPrefix, ttl)
	}
	return 1, time.Now().Truncate(window), nil
}

// HealthCheckerMock mocks ports.HealthChecker
type HealthCheckerMock struct {
	NameValue string
	CheckFn   func(ctx context.Context) error
}

func (m *HealthCheckerMock) Name() string { return m.NameValue }

func (m *HealthCheckerMock) Check(ctx context.Context) error {
	if m.CheckFn != nil {
		return m.CheckFn(ctx)
	}
	return nil
}

var (
	_ ports.UpstreamClient       = (*UpstreamClientMock)(nil)
	_ ports.ProfileLookupService = (*ProfileLookupServiceMock)(nil)
	_ ports.PhotoLookupService   = (*PhotoLookupServiceMock)(nil)
	_ ports.RateLimiterService   = (*RateLimiterServiceMock)(nil)
	_ ports.RateLimitRepository  = (*RateLimitRepositoryMock)(nil)
	_ ports.HealthChecker        = (*HealthCheckerMock)(nil)
)
