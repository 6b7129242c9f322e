package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/profile-lookup/internal/core/ports"
	customMiddleware "github.com/avatarctic/profile-lookup/internal/infrastructure/httpserver/middleware"
)

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	TLSCertFile  string
	TLSKeyFile   string
	Environment  string
}

// ServerDeps lists the services the HTTP layer needs. RateLimiterService may be
// nil to disable inbound rate limiting.
type ServerDeps struct {
	ProfileService     ports.ProfileLookupService
	PhotoService       ports.PhotoLookupService
	RateLimiterService ports.RateLimiterService
	HealthCheckers     []ports.HealthChecker
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	profileService ports.ProfileLookupService
	photoService   ports.PhotoLookupService
	middleware     *customMiddleware.MiddlewareCollection
	healthCheckers []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()
	e.HideBanner = true

	server := &Server{
		echo:           e,
		config:         serverConfig,
		logger:         logger,
		profileService: deps.ProfileService,
		photoService:   deps.PhotoService,
		healthCheckers: deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			deps.RateLimiterService,
			logger,
			GetRequestsTotal(),
			GetRequestDuration(),
		),
	}

	e.HTTPErrorHandler = server.handleError
	server.setupMiddleware()
	server.setupRoutes()

	return server
}
