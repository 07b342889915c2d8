package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/marcelsud/hookbin/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults without .env", func(t *testing.T) {
		cfg, err := config.Load(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "hookbin", cfg.MongoDatabase)
		assert.Equal(t, "hooks", cfg.MongoCollection)
		assert.Equal(t, "data/webhooks.json", cfg.DataFile)
		assert.Equal(t, 50, cfg.LogLimit)
		assert.True(t, cfg.AutoCreate)
		assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
		assert.Zero(t, cfg.RateLimitPerMinute)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
	})

	t.Run("values from .env", func(t *testing.T) {
		dir := t.TempDir()
		env := "PORT = \"9090\"\nLOG_LIMIT = 5\nAUTO_CREATE = false\nREDIS_ADDR = \"localhost:6379\"\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644))

		cfg, err := config.Load(dir)
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, 5, cfg.LogLimit)
		assert.False(t, cfg.AutoCreate)
		assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("PORT", "7070")
		t.Setenv("MONGODB_URI", "mongodb://db:27017")
		t.Setenv("LOG_LIMIT", "12")

		cfg, err := config.Load(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "7070", cfg.Port)
		assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
		assert.Equal(t, 12, cfg.LogLimit)
	})

	t.Run("invalid log limit", func(t *testing.T) {
		t.Setenv("LOG_LIMIT", "0")

		_, err := config.Load(t.TempDir())
		assert.ErrorContains(t, err, "LOG_LIMIT")
	})

	t.Run("unparseable .env", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT = = ="), 0o644))

		_, err := config.Load(dir)
		assert.ErrorContains(t, err, "reading config file")
	})
}

func TestValidate(t *testing.T) {
	valid := config.Config{Port: "8080", DataFile: "hooks.json", LogLimit: 50, MaxBodyBytes: 1024}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(c *config.Config)
	}{
		{"missing port", func(c *config.Config) { c.Port = "" }},
		{"negative log limit", func(c *config.Config) { c.LogLimit = -1 }},
		{"zero body limit", func(c *config.Config) { c.MaxBodyBytes = 0 }},
		{"negative rate limit", func(c *config.Config) { c.RateLimitPerMinute = -1 }},
		{"no backend", func(c *config.Config) { c.DataFile = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
