package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	config "github.com/avatarctic/profile-lookup/configs"
	"github.com/avatarctic/profile-lookup/internal/application/services"
	"github.com/avatarctic/profile-lookup/internal/core/ports"
	"github.com/avatarctic/profile-lookup/internal/infrastructure/health"
	"github.com/avatarctic/profile-lookup/internal/infrastructure/httpserver"
	"github.com/avatarctic/profile-lookup/internal/infrastructure/redis"
	"github.com/avatarctic/profile-lookup/internal/infrastructure/repositories"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "serve",
		Short:        "Start the HTTP lookup API.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(parent context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := newLogger(&cfg.Log)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info("Starting profile lookup service...")

	ctx, stop := signal.NotifyContext(contextOrBackground(parent), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lookups, err := buildLookupServices(cfg, prometheus.DefaultRegisterer, logger)
	if err != nil {
		return fmt.Errorf("failed to build lookup services: %w", err)
	}
	checkers := lookups.checkers

	var rateLimiter ports.RateLimiterService
	if cfg.RateLimit.Enabled {
		redisClient, err := redis.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		logger.Info("Connected to Redis successfully")

		rateLimiter = services.NewRateLimiterService(
			repositories.NewRateLimitRedisRepository(redisClient),
			&services.RateLimiterConfig{
				RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
				BurstMultiplier:   cfg.RateLimit.BurstMultiplier,
				Window:            cfg.RateLimit.Window,
				KeyPrefix:         cfg.RateLimit.KeyPrefix,
			},
			logger,
		)
		checkers = append(checkers, health.NewRedisHealthChecker(redisClient))
	}

	server := httpserver.NewServer(&httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		TLSCertFile:  cfg.Server.TLSCertFile,
		TLSKeyFile:   cfg.Server.TLSKeyFile,
		Environment:  cfg.Server.Environment,
	}, logger, httpserver.ServerDeps{
		ProfileService:     lookups.profiles,
		PhotoService:       lookups.photos,
		RateLimiterService: rateLimiter,
		HealthCheckers:     checkers,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server exited")
	return nil
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
