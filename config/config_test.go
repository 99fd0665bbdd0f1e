package config

import (
	"testing"
	"time"

	"github.com/Netflix/go-env"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(env.EnvSet{"JWT_SECRET": "s"})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 8081, cfg.InternalPort)
	assert.Equal(t, DefaultDatabaseURL, cfg.DatabaseURL)
	assert.Equal(t, 720*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 30*time.Second, cfg.ReconcileInterval)
	assert.Equal(t, 100, cfg.ReconcileBatch)
	assert.Equal(t, "default", cfg.GroupPolicy)
	assert.Empty(t, cfg.RedisURL)
	assert.False(t, cfg.IsProduction())
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse(env.EnvSet{
		"JWT_SECRET":         "s",
		"HTTP_PORT":          "9000",
		"DATABASE_URL":       ":memory:",
		"RECONCILE_INTERVAL": "5s",
		"APP_ENV":            "production",
	})
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, ":memory:", cfg.DatabaseURL)
	assert.Equal(t, 5*time.Second, cfg.ReconcileInterval)
	assert.True(t, cfg.IsProduction())
}

func TestParseRequiresSecret(t *testing.T) {
	_, err := Parse(env.EnvSet{})
	assert.Error(t, err)
}

func TestParseRejectsInvalidValues(t *testing.T) {
	_, err := Parse(env.EnvSet{"JWT_SECRET": "s", "RECONCILE_BATCH": "0"})
	assert.Error(t, err)
}
