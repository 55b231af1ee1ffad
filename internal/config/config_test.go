package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "access-gate-service", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, "/auth/login", cfg.Routes.LoginPath)
	assert.Equal(t, "/dashboard", cfg.Routes.LandingPath)
	assert.Equal(t, time.Hour, cfg.Auth.SessionTTL())
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("ROUTE_LOGIN_PATH", "/signin")
	t.Setenv("ROUTE_LANDING_PATH", "/home")
	t.Setenv("AUTH_SESSION_TTL_MINUTES", "15")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "/signin", cfg.Routes.LoginPath)
	assert.Equal(t, "/home", cfg.Routes.LandingPath)
	assert.Equal(t, 15*time.Minute, cfg.Auth.SessionTTL())
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadRejectsInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}
