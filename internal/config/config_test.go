package config

import (
	"directions-route-service/internal/domain"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"GOOGLE_MAPS_API_KEY", "PORT", "APP_ENV", "DIRECTIONS_BASE_URL", "DIRECTIONS_TIMEOUT",
	"DEFAULT_TRAVEL_MODE", "MAX_INFLIGHT", "CACHE_TTL", "DATABASE_URL", "REDIS_ADDR",
	"KAFKA_BROKERS", "KAFKA_PATH_TOPIC", "SHUTDOWN_TIMEOUT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.APIKey)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultAppEnv, cfg.AppEnv)
	assert.Equal(t, DefaultBaseURL, cfg.DirectionsBaseURL)
	assert.Equal(t, 10*time.Second, cfg.DirectionsTimeout)
	assert.Equal(t, domain.TravelModeDriving, cfg.DefaultTravelMode)
	assert.Equal(t, int64(8), cfg.MaxInFlight)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, DefaultPathTopic, cfg.KafkaPathTopic)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_MAPS_API_KEY", "abc")
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DIRECTIONS_TIMEOUT", "3s")
	t.Setenv("DEFAULT_TRAVEL_MODE", " Walking ")
	t.Setenv("MAX_INFLIGHT", "2")
	t.Setenv("CACHE_TTL", "1h")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "abc", cfg.APIKey)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, 3*time.Second, cfg.DirectionsTimeout)
	assert.Equal(t, domain.TravelModeWalking, cfg.DefaultTravelMode)
	assert.Equal(t, int64(2), cfg.MaxInFlight)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"DIRECTIONS_TIMEOUT":  "soon",
		"CACHE_TTL":           "-1m",
		"MAX_INFLIGHT":        "0",
		"SHUTDOWN_TIMEOUT":    "10",
		"DEFAULT_TRAVEL_MODE": "flying",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoadInvalidModeKeepsKind(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEFAULT_TRAVEL_MODE", "teleport")

	_, err := Load()
	assert.ErrorIs(t, err, domain.ErrInvalidTravelMode)
}

func TestGet(t *testing.T) {
	t.Setenv("CONFIG_TEST_KEY", "  ")
	assert.Equal(t, "fallback", Get("CONFIG_TEST_KEY", "fallback"))

	t.Setenv("CONFIG_TEST_KEY", "value")
	assert.Equal(t, "value", Get("CONFIG_TEST_KEY", "fallback"))
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, LoadDotenv(filepath.Join(dir, "missing.env")))

	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("CONFIG_DOTENV_KEY=from-file\n"), 0o600))
	t.Setenv("CONFIG_DOTENV_KEY", "")
	require.NoError(t, os.Unsetenv("CONFIG_DOTENV_KEY"))

	assert.True(t, LoadDotenv(path))
	assert.Equal(t, "from-file", Get("CONFIG_DOTENV_KEY", ""))
}
