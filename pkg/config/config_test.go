package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests run outside the repo root, so Load always takes the env-only
// path here.

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_ENABLE_VERIFICATION", "false")

	cfg, err := Load("v1.2.3")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.BindAddr)
	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "v1.2.3", cfg.Version)
	assert.Equal(t, "./data", cfg.Store.DataDir)
	assert.Equal(t, "./seed/catalog-seed.yaml", cfg.Seed.Path)
	assert.False(t, cfg.Auth.EnableVerification)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("STORE_DATA_DIR", "/var/lib/catalog")
	t.Setenv("SEED_PATH", "/etc/catalog/seed.yaml")
	t.Setenv("SYNC_SECRET", "sync-secret")
	t.Setenv("AUTH_TOKEN_SECRET", "token-secret")
	t.Setenv("AUTH_ENABLE_VERIFICATION", "true")

	cfg, err := Load("dev")
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "/var/lib/catalog", cfg.Store.DataDir)
	assert.Equal(t, "/etc/catalog/seed.yaml", cfg.Seed.Path)
	assert.Equal(t, "sync-secret", cfg.Seed.SyncSecret)
	assert.Equal(t, "token-secret", cfg.Auth.TokenSecret)
	assert.True(t, cfg.Auth.EnableVerification)
}

func TestLoadRequiresTokenSecretWhenVerifying(t *testing.T) {
	t.Setenv("AUTH_ENABLE_VERIFICATION", "true")
	t.Setenv("AUTH_TOKEN_SECRET", "")

	_, err := Load("dev")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_TOKEN_SECRET")
}
