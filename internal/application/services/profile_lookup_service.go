package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/avatarctic/profile-lookup/internal/application/normalizer"
	"github.com/avatarctic/profile-lookup/internal/core/domain/identifier"
	"github.com/avatarctic/profile-lookup/internal/core/domain/profile"
	"github.com/avatarctic/profile-lookup/internal/core/ports"
)

const ProfileEndpoint = "instagram-profile"

// ProfileLookupService surfaces every failure to the caller; it has no fallback.
type ProfileLookupService struct {
	pipeline *LookupPipeline[*profile.CanonicalProfile]
}

func NewProfileLookupService(client ports.UpstreamClient, cache ports.LookupCache[*profile.CanonicalProfile], metrics ports.LookupMetrics, logger *logrus.Logger) *ProfileLookupService {
	return &ProfileLookupService{
		pipeline: NewLookupPipeline(PipelineConfig[*profile.CanonicalProfile]{
			Endpoint:  ProfileEndpoint,
			Kind:      identifier.KindHandle,
			Cache:     cache,
			Upstream:  client,
			Normalize: normalizer.NormalizeProfile,
			Metrics:   metrics,
			Logger:    logger,
		}),
	}
}

func (s *ProfileLookupService) LookupProfile(ctx context.Context, username string) (*profile.CanonicalProfile, error) {
	p, _, err := s.pipeline.Lookup(ctx, username, "")
	if err != nil {
		return nil, err
	}
	return p, nil
}
