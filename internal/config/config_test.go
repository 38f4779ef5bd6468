package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "devcamper", cfg.Database.Name)
	assert.Equal(t, 5*time.Second, cfg.Database.OperationTimeout)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := `
server:
  port: "8080"
  mode: production
database:
  driver: memory
  operation_timeout: 2s
cors:
  allowed_origins:
    - http://example.com
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	t.Setenv("PORT", "9090")
	t.Setenv("DB_SEED", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 2*time.Second, cfg.Database.OperationTimeout)
	assert.True(t, cfg.Database.Seed)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfigSecondaryEnvName(t *testing.T) {
	t.Setenv("SERVER_MODE", "production")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	t.Run("UnknownDriver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "postgres")
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
	t.Run("BadDuration", func(t *testing.T) {
		t.Setenv("DB_OPERATION_TIMEOUT", "soon")
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
	t.Run("SampleRatioOutOfRange", func(t *testing.T) {
		t.Setenv("OTEL_SAMPLER_RATIO", "1.5")
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}
