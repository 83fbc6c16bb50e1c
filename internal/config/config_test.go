package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "rentledger", cfg.AppName)
	assert.Equal(t, "rentledger.db", cfg.SQLitePath)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 3000, cfg.HTTPPort)
	assert.False(t, cfg.MigrationsAuto)
	assert.False(t, cfg.UsesPostgres())
	assert.NotEmpty(t, cfg.SessionFile)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/rent")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("MIGRATIONS_AUTO", "true")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.UsesPostgres())
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.True(t, cfg.MigrationsAuto)

	secret, err := cfg.RequireJWTSecret()
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), secret)
}

func TestLoad_RejectsBadPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "70000")

	_, err := Load()
	assert.Error(t, err)
}

func TestRequireJWTSecret_Missing(t *testing.T) {
	cfg := &Config{}
	_, err := cfg.RequireJWTSecret()
	assert.Error(t, err)
}
