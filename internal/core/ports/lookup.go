package ports

import (
	"context"

	"github.com/avatarctic/profile-lookup/internal/core/domain/profile"
)

// ProfileLookupService resolves a social handle to its canonical profile.
type ProfileLookupService interface {
	LookupProfile(ctx context.Context, username string) (*profile.CanonicalProfile, error)
}

// PhotoLookupService resolves a phone number to its profile photo. Failures other
// than validation are absorbed into a placeholder result.
type PhotoLookupService interface {
	LookupPhoto(ctx context.Context, phone, countryCode string) (*PhotoLookupResult, error)
}

// PhotoLookupResult carries the photo and whether it came from the cache or the fallback.
type PhotoLookupResult struct {
	Photo    profile.PhotoResult
	Cached   bool
	Fallback bool
}

// LookupMetrics records pipeline outcomes per endpoint.
type LookupMetrics interface {
	CacheHit(endpoint string)
	CacheMiss(endpoint string)
	UpstreamOutcome(endpoint, outcome string)
	Fallback(endpoint string)
	CacheSize(endpoint string, size int)
}
