// Package config provides unified configuration loading for the answer engine.
// Supports YAML files, environment variables, and programmatic overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the answer engine.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Knowledge     KnowledgeConfig     `yaml:"knowledge"`
	Vector        VectorConfig        `yaml:"vector"`
	Embedding     EmbeddingConfig     `yaml:"embedding"`
	Generative    GenerativeConfig    `yaml:"generative"`
	Routing       RoutingConfig       `yaml:"routing"`
	Safety        SafetyConfig        `yaml:"safety"`
	Session       SessionConfig       `yaml:"session"`
	Cache         CacheConfig         `yaml:"cache"`
	Callback      CallbackConfig      `yaml:"callback"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	IdleTimeout      time.Duration `yaml:"idle_timeout"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
}

// KnowledgeConfig holds knowledge store settings.
type KnowledgeConfig struct {
	DataDir string `yaml:"data_dir"`
}

// VectorConfig holds vector index settings.
type VectorConfig struct {
	VectorsPath    string  `yaml:"vectors_path"`
	MetadataPath   string  `yaml:"metadata_path"`
	TopK           int     `yaml:"top_k"`
	ScoreThreshold float64 `yaml:"score_threshold"`
}

// EmbeddingConfig holds embedding backend settings.
type EmbeddingConfig struct {
	BaseURL   string        `yaml:"base_url"`
	APIKey    string        `yaml:"api_key"`
	Model     string        `yaml:"model"`
	Dimension int           `yaml:"dimension"`
	Timeout   time.Duration `yaml:"timeout"`
}

// GenerativeConfig holds generative backend settings.
type GenerativeConfig struct {
	Primary     BackendConfig `yaml:"primary"`
	Secondary   BackendConfig `yaml:"secondary"`
	MaxChars    int           `yaml:"max_chars"`
	ContextSize int           `yaml:"context_size"`
}

// BackendConfig describes a single chat-completion backend.
type BackendConfig struct {
	Name    string        `yaml:"name"`
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// RoutingConfig holds routing thresholds.
type RoutingConfig struct {
	MinLexicalScore int `yaml:"min_lexical_score"`
}

// SafetyConfig holds safety taxonomy settings.
type SafetyConfig struct {
	TaxonomyPath string `yaml:"taxonomy_path"`
}

// SessionConfig holds conversation session settings.
type SessionConfig struct {
	MaxSessions int           `yaml:"max_sessions"`
	MaxHistory  int           `yaml:"max_history"`
	TTL         time.Duration `yaml:"ttl"`
}

// CacheConfig holds answer cache settings.
type CacheConfig struct {
	Driver     string        `yaml:"driver"` // memory or redis
	TTL        time.Duration `yaml:"ttl"`
	MaxEntries int           `yaml:"max_entries"`
	Redis      RedisConfig   `yaml:"redis"`
}

// RedisConfig holds Redis-specific settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// CallbackConfig holds callback-request persistence settings.
type CallbackConfig struct {
	SQLitePath string `yaml:"sqlite_path"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	ServiceName string `yaml:"service_name"`
}

// Load reads configuration from a YAML file and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a configuration with sensible defaults for development.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             8090,
			ReadTimeout:      30 * time.Second,
			WriteTimeout:     30 * time.Second,
			IdleTimeout:      120 * time.Second,
			GracefulShutdown: 10 * time.Second,
		},
		Knowledge: KnowledgeConfig{
			DataDir: "data/chunks",
		},
		Vector: VectorConfig{
			VectorsPath:    "data/index/vectors.json",
			MetadataPath:   "data/index/metadata.json",
			TopK:           8,
			ScoreThreshold: 0.60,
		},
		Embedding: EmbeddingConfig{
			BaseURL:   "https://openrouter.ai/api/v1",
			Model:     "google/gemini-embedding-001",
			Dimension: 768,
			Timeout:   30 * time.Second,
		},
		Generative: GenerativeConfig{
			Primary: BackendConfig{
				Name:    "gemini",
				BaseURL: "https://openrouter.ai/api/v1",
				Model:   "google/gemini-2.5-flash-lite",
				Timeout: 30 * time.Second,
			},
			Secondary: BackendConfig{
				Name:    "openai",
				BaseURL: "https://api.openai.com/v1",
				Model:   "gpt-4o-mini",
				Timeout: 30 * time.Second,
			},
			MaxChars:    600,
			ContextSize: 3000,
		},
		Routing: RoutingConfig{
			MinLexicalScore: 2,
		},
		Safety: SafetyConfig{
			TaxonomyPath: "",
		},
		Session: SessionConfig{
			MaxSessions: 4096,
			MaxHistory:  12,
			TTL:         30 * time.Minute,
		},
		Cache: CacheConfig{
			Driver:     "memory",
			TTL:        5 * time.Minute,
			MaxEntries: 10000,
			Redis: RedisConfig{
				Addr:     "localhost:6379",
				DB:       0,
				PoolSize: 10,
			},
		},
		Callback: CallbackConfig{
			SQLitePath: "data/callbacks.db",
		},
		Observability: ObservabilityConfig{
			LogLevel:    "info",
			LogFormat:   "json",
			ServiceName: "answer-engine",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Cache.Driver != "memory" && c.Cache.Driver != "redis" {
		return fmt.Errorf("invalid cache driver: %s", c.Cache.Driver)
	}

	if c.Vector.TopK < 1 || c.Vector.TopK > 50 {
		return fmt.Errorf("vector top_k must be between 1 and 50")
	}

	if c.Vector.ScoreThreshold < -1 || c.Vector.ScoreThreshold > 1 {
		return fmt.Errorf("vector score_threshold must be within [-1, 1]")
	}

	if c.Routing.MinLexicalScore < 1 {
		return fmt.Errorf("min_lexical_score must be at least 1")
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}

	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}

	if v := os.Getenv("KNOWLEDGE_DATA_DIR"); v != "" {
		cfg.Knowledge.DataDir = v
	}

	if v := os.Getenv("VECTOR_INDEX_PATH"); v != "" {
		cfg.Vector.VectorsPath = v
	}

	if v := os.Getenv("VECTOR_METADATA_PATH"); v != "" {
		cfg.Vector.MetadataPath = v
	}

	if v := os.Getenv("EMBEDDING_API_KEY"); v != "" {
		cfg.Embedding.APIKey = v
	}

	if v := os.Getenv("EMBEDDING_MODEL"); v != "" {
		cfg.Embedding.Model = v
	}

	if v := os.Getenv("GENERATIVE_PRIMARY_API_KEY"); v != "" {
		cfg.Generative.Primary.APIKey = v
	}

	if v := os.Getenv("GENERATIVE_SECONDARY_API_KEY"); v != "" {
		cfg.Generative.Secondary.APIKey = v
	}

	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Cache.Driver = "redis"
		cfg.Cache.Redis.Addr = strings.TrimPrefix(v, "redis://")
	}

	if v := os.Getenv("SAFETY_TAXONOMY_PATH"); v != "" {
		cfg.Safety.TaxonomyPath = v
	}

	if v := os.Getenv("CALLBACK_SQLITE_PATH"); v != "" {
		cfg.Callback.SQLitePath = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
}
