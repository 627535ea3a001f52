package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.False(t, cfg.IsDev)
	assert.Equal(t, 168*time.Hour, cfg.Auth.SessionTTL)
	assert.True(t, cfg.Auth.UseCurrentRole)
	assert.True(t, cfg.Auth.EventLogEnabled)
	assert.Equal(t, "http://localhost:8000", cfg.Backend.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "partyui", cfg.Postgres.Name)
	assert.True(t, cfg.Postgres.RunMigrationsOnStart)
	assert.Equal(t, "localhost:6379", cfg.Redis.URI)
	assert.False(t, cfg.Redis.UseSentinel)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
}

func TestAppConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DEV", "true")
	t.Setenv("AUTH_SESSION_TTL", "24h")
	t.Setenv("AUTH_USE_CURRENT_ROLE", "false")
	t.Setenv("BACKEND_BASE_URL", "https://party.example.com/")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("REDIS_URI", "redis.internal:6380")
	t.Setenv("HTTP_ADDR", ":9090")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.True(t, cfg.IsDev)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.False(t, cfg.Auth.UseCurrentRole)
	assert.Equal(t, "https://party.example.com", cfg.Backend.BaseURL, "trailing slash trimmed")
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, "redis.internal:6380", cfg.Redis.URI)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
}

func TestAppConfig_DetectDevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.True(t, cfg.IsDev)
}

func TestAuthConfig_SanitizeClampsTinyTTL(t *testing.T) {
	cfg := AuthConfig{SessionTTL: time.Second}
	cfg.Sanitize()
	assert.Equal(t, 168*time.Hour, cfg.SessionTTL)
}

func TestBackendConfig_SanitizeRestoresTimeout(t *testing.T) {
	cfg := BackendConfig{BaseURL: "  http://localhost:8000/ ", Timeout: -time.Second}
	cfg.Sanitize()
	assert.Equal(t, "http://localhost:8000", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}

func TestHTTPConfig_SanitizeDefaultsAddr(t *testing.T) {
	cfg := HTTPConfig{}
	cfg.Sanitize()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}
