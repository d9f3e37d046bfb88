package config

import (
	"directions-route-service/internal/domain"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort         = "8080"
	DefaultAppEnv       = "development"
	DefaultBaseURL      = "https://maps.googleapis.com/maps/api"
	DefaultTimeout      = 10 * time.Second
	DefaultMaxInFlight  = 8
	DefaultCacheTTL     = 10 * time.Minute
	DefaultPathTopic    = "route.paths"
	DefaultShutdownWait = 10 * time.Second
)

// Config is the process configuration, read from the environment.
type Config struct {
	APIKey            string
	Port              string
	AppEnv            string
	DirectionsBaseURL string
	DirectionsTimeout time.Duration
	DefaultTravelMode domain.TravelMode
	MaxInFlight       int64
	CacheTTL          time.Duration
	DatabaseURL       string
	RedisAddr         string
	KafkaBrokers      []string
	KafkaPathTopic    string
	ShutdownTimeout   time.Duration
}

// LoadDotenv reads .env into the environment when present.
// It reports whether a file was loaded; a missing file is not an error.
func LoadDotenv(files ...string) bool {
	return godotenv.Load(files...) == nil
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load builds a Config from the environment. It does not read .env;
// call LoadDotenv first.
func Load() (*Config, error) {
	timeout, err := duration("DIRECTIONS_TIMEOUT", DefaultTimeout)
	if err != nil {
		return nil, err
	}
	ttl, err := duration("CACHE_TTL", DefaultCacheTTL)
	if err != nil {
		return nil, err
	}
	shutdown, err := duration("SHUTDOWN_TIMEOUT", DefaultShutdownWait)
	if err != nil {
		return nil, err
	}

	inflight, err := positiveInt("MAX_INFLIGHT", DefaultMaxInFlight)
	if err != nil {
		return nil, err
	}

	mode, err := domain.ParseTravelMode(Get("DEFAULT_TRAVEL_MODE", domain.DefaultTravelMode.String()))
	if err != nil {
		return nil, fmt.Errorf("config: DEFAULT_TRAVEL_MODE: %w", err)
	}

	return &Config{
		APIKey:            os.Getenv("GOOGLE_MAPS_API_KEY"),
		Port:              Get("PORT", DefaultPort),
		AppEnv:            Get("APP_ENV", DefaultAppEnv),
		DirectionsBaseURL: Get("DIRECTIONS_BASE_URL", DefaultBaseURL),
		DirectionsTimeout: timeout,
		DefaultTravelMode: mode,
		MaxInFlight:       inflight,
		CacheTTL:          ttl,
		DatabaseURL:       Get("DATABASE_URL", ""),
		RedisAddr:         Get("REDIS_ADDR", ""),
		KafkaBrokers:      list(Get("KAFKA_BROKERS", "")),
		KafkaPathTopic:    Get("KAFKA_PATH_TOPIC", DefaultPathTopic),
		ShutdownTimeout:   shutdown,
	}, nil
}

func duration(key string, fallback time.Duration) (time.Duration, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: %s: must be positive, got %s", key, raw)
	}
	return d, nil
}

func positiveInt(key string, fallback int64) (int64, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("config: %s: must be positive, got %d", key, n)
	}
	return n, nil
}

func list(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
