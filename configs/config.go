package configs

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Instagram ProviderConfig
	WhatsApp  ProviderConfig
	Cache     CacheConfig
	Photo     PhotoConfig
	Redis     RedisConfig
	Log       LogConfig
	RateLimit RateLimitConfig
}

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

// ProviderConfig describes one RapidAPI-hosted upstream.
type ProviderConfig struct {
	BaseURL string
	Host    string
	APIKey  string
	Timeout time.Duration
}

type CacheConfig struct {
	Capacity   int
	ProfileTTL time.Duration
	PhotoTTL   time.Duration
}

type PhotoConfig struct {
	FallbackURL string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	// Pool and timeout settings
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolTimeout  time.Duration
	IdleTimeout  time.Duration
}

type LogConfig struct {
	Level  string
	Format string // json or text
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	BurstMultiplier   float64
	Window            time.Duration
	KeyPrefix         string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			TLSCertFile:  getEnv("TLS_CERT_FILE", ""),
			TLSKeyFile:   getEnv("TLS_KEY_FILE", ""),
			Environment:  getEnv("APP_ENV", "development"),
		},
		Instagram: ProviderConfig{
			BaseURL: getEnv("INSTAGRAM_API_BASE_URL", "https://instagram120.p.rapidapi.com"),
			Host:    getEnv("INSTAGRAM_API_HOST", "instagram120.p.rapidapi.com"),
			APIKey:  getEnv("INSTAGRAM_API_KEY", os.Getenv("RAPIDAPI_KEY")),
			Timeout: getDurationEnv("INSTAGRAM_API_TIMEOUT", 10*time.Second),
		},
		WhatsApp: ProviderConfig{
			BaseURL: getEnv("WHATSAPP_API_BASE_URL", "https://whatsapp-data.p.rapidapi.com"),
			Host:    getEnv("WHATSAPP_API_HOST", "whatsapp-data.p.rapidapi.com"),
			APIKey:  getEnv("WHATSAPP_API_KEY", os.Getenv("RAPIDAPI_KEY")),
			Timeout: getDurationEnv("WHATSAPP_API_TIMEOUT", 10*time.Second),
		},
		Cache: CacheConfig{
			Capacity:   getIntEnv("CACHE_CAPACITY", 100),
			ProfileTTL: getDurationEnv("CACHE_PROFILE_TTL", 10*time.Minute),
			PhotoTTL:   getDurationEnv("CACHE_PHOTO_TTL", 5*time.Minute),
		},
		Photo: PhotoConfig{
			FallbackURL: getEnv("PHOTO_FALLBACK_URL", "https://i.postimg.cc/gcNd6QBM/img1.jpg"),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getIntEnv("REDIS_DB", 0),
			PoolSize:     getIntEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: getIntEnv("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDurationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDurationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDurationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
			PoolTimeout:  getDurationEnv("REDIS_POOL_TIMEOUT", 4*time.Second),
			IdleTimeout:  getDurationEnv("REDIS_IDLE_TIMEOUT", 5*time.Minute),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		RateLimit: RateLimitConfig{
			Enabled:           getBoolEnv("RATE_LIMIT_ENABLED", false),
			RequestsPerMinute: getIntEnv("RATE_LIMIT_RPM", 60),
			BurstMultiplier:   getFloatEnv("RATE_LIMIT_BURST", 1.0),
			Window:            getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
			KeyPrefix:         getEnv("RATE_LIMIT_KEY_PREFIX", "ratelimit:client"),
		},
	}

	return cfg, nil
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.Instagram.APIKey == "" {
		errs = append(errs, errors.New("INSTAGRAM_API_KEY (or RAPIDAPI_KEY) is not set"))
	}
	if c.WhatsApp.APIKey == "" {
		errs = append(errs, errors.New("WHATSAPP_API_KEY (or RAPIDAPI_KEY) is not set"))
	}
	if c.Cache.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("CACHE_CAPACITY must be positive, got %d", c.Cache.Capacity))
	}
	if c.Cache.ProfileTTL <= 0 || c.Cache.PhotoTTL <= 0 {
		errs = append(errs, errors.New("cache TTLs must be positive"))
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
