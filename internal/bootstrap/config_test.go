package bootstrap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsWithoutEnvFile(t *testing.T) {
	// Run from a directory with no .env so godotenv hits the missing-file path
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 168*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "http://localhost:8000", cfg.Backend.BaseURL)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BACKEND_BASE_URL", "https://party.internal")
	t.Setenv("AUTH_USE_CURRENT_ROLE", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://party.internal", cfg.Backend.BaseURL)
	assert.False(t, cfg.Auth.UseCurrentRole)
}

func TestInitLogger_SetsDefault(t *testing.T) {
	logger := InitLogger()
	require.NotNil(t, logger)
}
