package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/avatarctic/profile-lookup/internal/application/normalizer"
	"github.com/avatarctic/profile-lookup/internal/core/domain/identifier"
	"github.com/avatarctic/profile-lookup/internal/core/domain/profile"
	"github.com/avatarctic/profile-lookup/internal/core/ports"
)

const (
	PhotoEndpoint = "whatsapp-photo"

	DefaultPhotoFallbackURL = "https://i.postimg.cc/gcNd6QBM/img1.jpg"
)

// PhotoLookupService is best-effort: any failure past validation is answered
// with a private placeholder photo.
type PhotoLookupService struct {
	pipeline *LookupPipeline[profile.PhotoResult]
}

func NewPhotoLookupService(client ports.UpstreamClient, cache ports.LookupCache[profile.PhotoResult], fallbackURL string, metrics ports.LookupMetrics, logger *logrus.Logger) *PhotoLookupService {
	if fallbackURL == "" {
		fallbackURL = DefaultPhotoFallbackURL
	}
	placeholder := profile.PhotoResult{URL: fallbackURL, IsPrivate: true}
	return &PhotoLookupService{
		pipeline: NewLookupPipeline(PipelineConfig[profile.PhotoResult]{
			Endpoint: PhotoEndpoint,
			Kind:     identifier.KindPhoneNumber,
			Cache:    cache,
			Upstream: client,
			Normalize: func(payload []byte, _ string) (profile.PhotoResult, error) {
				res, err := normalizer.NormalizePhoto(payload)
				if err != nil {
					return profile.PhotoResult{}, err
				}
				return *res, nil
			},
			Fallback: func(error) (profile.PhotoResult, bool) { return placeholder, true },
			Metrics:  metrics,
			Logger:   logger,
		}),
	}
}

func (s *PhotoLookupService) LookupPhoto(ctx context.Context, phone, countryCode string) (*ports.PhotoLookupResult, error) {
	photo, out, err := s.pipeline.Lookup(ctx, phone, countryCode)
	if err != nil {
		return nil, err
	}
	return &ports.PhotoLookupResult{Photo: photo, Cached: out.Cached, Fallback: out.Fallback}, nil
}
