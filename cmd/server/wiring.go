package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	config "github.com/avatarctic/profile-lookup/configs"
	"github.com/avatarctic/profile-lookup/internal/application/services"
	"github.com/avatarctic/profile-lookup/internal/core/domain/profile"
	"github.com/avatarctic/profile-lookup/internal/core/ports"
	"github.com/avatarctic/profile-lookup/internal/infrastructure/health"
	"github.com/avatarctic/profile-lookup/internal/infrastructure/memcache"
	"github.com/avatarctic/profile-lookup/internal/infrastructure/metrics"
	"github.com/avatarctic/profile-lookup/internal/infrastructure/upstream"
)

type lookupServices struct {
	profiles *services.ProfileLookupService
	photos   *services.PhotoLookupService
	checkers []ports.HealthChecker
}

// buildLookupServices wires both lookup pipelines. reg may be nil, in which
// case pipeline metrics are not recorded.
func buildLookupServices(cfg *config.Config, reg prometheus.Registerer, logger *logrus.Logger) (*lookupServices, error) {
	var lookupMetrics ports.LookupMetrics
	if reg != nil {
		m, err := metrics.NewLookupMetrics(reg)
		if err != nil {
			return nil, err
		}
		lookupMetrics = m
	}

	evicted := func(endpoint string) memcache.Option {
		return memcache.WithEvictionHook(func(key string) {
			logger.WithFields(logrus.Fields{"endpoint": endpoint, "key": key}).Debug("cache entry evicted")
		})
	}
	profileCache := memcache.NewTTLCache[*profile.CanonicalProfile](cfg.Cache.ProfileTTL, cfg.Cache.Capacity, evicted(services.ProfileEndpoint))
	photoCache := memcache.NewTTLCache[profile.PhotoResult](cfg.Cache.PhotoTTL, cfg.Cache.Capacity, evicted(services.PhotoEndpoint))

	instagram := upstream.NewInstagramClient(providerConfig(cfg.Instagram), logger)
	whatsapp := upstream.NewWhatsAppClient(providerConfig(cfg.WhatsApp), logger)

	return &lookupServices{
		profiles: services.NewProfileLookupService(instagram, profileCache, lookupMetrics, logger),
		photos:   services.NewPhotoLookupService(whatsapp, photoCache, cfg.Photo.FallbackURL, lookupMetrics, logger),
		checkers: []ports.HealthChecker{
			health.NewCacheHealthChecker("profile-cache", profileCache.Len, profileCache.Capacity()),
			health.NewCacheHealthChecker("photo-cache", photoCache.Len, photoCache.Capacity()),
		},
	}, nil
}

func providerConfig(p config.ProviderConfig) upstream.Config {
	return upstream.Config{BaseURL: p.BaseURL, Host: p.Host, APIKey: p.APIKey, Timeout: p.Timeout}
}
