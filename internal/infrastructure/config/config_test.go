package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "storefront-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "file", cfg.KVStore.Backend)
	assert.Equal(t, "data", cfg.KVStore.Dir)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, 6379, cfg.Redis.Port)
}

func TestValidate_RejectsUnknownBackend(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.KVStore.Backend = "dynamo"

	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kvstore.backend")
}

func TestValidate_ProductionRequirements(t *testing.T) {
	t.Run("rejects default jwt secret", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.App.Env = "production"

		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("rejects short jwt secret", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.App.Env = "production"
		cfg.JWT.Secret = "short"

		require.Error(t, cfg.validate())
	})

	t.Run("rejects wildcard cors origin", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.App.Env = "production"
		cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
		cfg.HTTP.CORSAllowOrigins = []string{"*"}

		require.Error(t, cfg.validate())
	})

	t.Run("rejects memory backend", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.App.Env = "production"
		cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
		cfg.KVStore.Backend = "memory"

		require.Error(t, cfg.validate())
	})

	t.Run("accepts a complete production config", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.App.Env = "production"
		cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
		cfg.KVStore.Backend = "sqlite"
		cfg.HTTP.CORSAllowOrigins = []string{"https://shop.example.com"}

		require.NoError(t, cfg.validate())
	})
}
