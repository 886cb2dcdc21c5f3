package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "DB_DSN", "RATE_LIMIT", "FOODS_API_URL", "FOODS_API_TIMEOUT", "JWT_TTL"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, 50, cfg.Server.RateLimit)
	assert.Equal(t, "http://localhost:8080", cfg.Dashboard.APIURL)
	assert.Equal(t, 10*time.Second, cfg.Dashboard.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "3333")
	t.Setenv("FOODS_API_URL", "http://api.local")
	t.Setenv("FOODS_API_TIMEOUT", "2s")
	t.Setenv("RATE_LIMIT", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3333", cfg.Server.Port)
	assert.Equal(t, "http://api.local", cfg.Dashboard.APIURL)
	assert.Equal(t, 2*time.Second, cfg.Dashboard.Timeout)
	assert.Equal(t, 0, cfg.Server.RateLimit)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("RATE_LIMIT", "lots")
	_, err := Load()
	assert.Error(t, err)
}

func TestInitDB(t *testing.T) {
	db, err := InitDB(DBConfig{Driver: "sqlite", DSN: "file::memory:"})
	require.NoError(t, err)
	assert.NotNil(t, db)

	_, err = InitDB(DBConfig{Driver: "oracle"})
	assert.Error(t, err)
}
