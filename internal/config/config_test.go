package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, 8, cfg.Vector.TopK)
	assert.Equal(t, 0.60, cfg.Vector.ScoreThreshold)
	assert.Equal(t, 768, cfg.Embedding.Dimension)
	assert.Equal(t, "google/gemini-embedding-001", cfg.Embedding.Model)
	assert.Equal(t, 2, cfg.Routing.MinLexicalScore)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)

	require.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
vector:
  top_k: 4
  score_threshold: 0.75
routing:
  min_lexical_score: 3
cache:
  driver: redis
  redis:
    addr: cache.internal:6379
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 4, cfg.Vector.TopK)
	assert.Equal(t, 0.75, cfg.Vector.ScoreThreshold)
	assert.Equal(t, 3, cfg.Routing.MinLexicalScore)
	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, "cache.internal:6379", cfg.Cache.Redis.Addr)
	// Unset fields keep their defaults.
	assert.Equal(t, "data/chunks", cfg.Knowledge.DataDir)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8090, cfg.Server.Port)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8181")
	t.Setenv("EMBEDDING_API_KEY", "sk-test")
	t.Setenv("REDIS_URL", "redis://queue.internal:6380")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.Server.Port)
	assert.Equal(t, "sk-test", cfg.Embedding.APIKey)
	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, "queue.internal:6380", cfg.Cache.Redis.Addr)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "bad cache driver", mutate: func(c *Config) { c.Cache.Driver = "etcd" }, wantErr: true},
		{name: "top_k too large", mutate: func(c *Config) { c.Vector.TopK = 100 }, wantErr: true},
		{name: "threshold out of range", mutate: func(c *Config) { c.Vector.ScoreThreshold = 1.5 }, wantErr: true},
		{name: "min score zero", mutate: func(c *Config) { c.Routing.MinLexicalScore = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
