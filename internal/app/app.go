// Package app wires configuration into the runtime dependency graph shared
// by the API server and the CLI.
package app

import (
	"fmt"

	"github.com/nietlabs/answer-engine/internal/cache"
	"github.com/nietlabs/answer-engine/internal/config"
	"github.com/nietlabs/answer-engine/internal/embedding"
	"github.com/nietlabs/answer-engine/internal/genai"
	"github.com/nietlabs/answer-engine/internal/knowledge"
	"github.com/nietlabs/answer-engine/internal/observability"
	"github.com/nietlabs/answer-engine/internal/retrieval"
	"github.com/nietlabs/answer-engine/internal/routing"
	"github.com/nietlabs/answer-engine/internal/storage"
)

// App holds the assembled runtime components.
type App struct {
	Config    *config.Config
	Logger    *observability.Logger
	Metrics   *observability.Metrics
	Store     *knowledge.Store
	Engine    *routing.Engine
	Cache     cache.Client
	Callbacks *storage.CallbackStore
}

// Build assembles the engine and its dependencies from config. Optional
// stages degrade instead of failing: a missing embedding key disables the
// vector fallback, missing generative keys disable that backend.
func Build(cfg *config.Config, logger *observability.Logger) (*App, error) {
	metrics := observability.NewMetrics(nil)

	store, err := knowledge.LoadDir(cfg.Knowledge.DataDir, logger)
	if err != nil {
		return nil, fmt.Errorf("loading knowledge base: %w", err)
	}
	metrics.ChunksLoaded.Set(float64(store.Len()))
	metrics.SkippedRecords.Add(float64(store.Skipped()))

	var cacheClient cache.Client
	switch cfg.Cache.Driver {
	case "redis":
		cacheClient, err = cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			PoolSize: cfg.Cache.Redis.PoolSize,
		})
		if err != nil {
			return nil, fmt.Errorf("connecting cache: %w", err)
		}
	default:
		cacheClient = cache.NewMemoryClient(cfg.Cache.MaxEntries)
	}

	var retriever routing.Retriever
	if cfg.Embedding.APIKey != "" {
		embedder, err := embedding.NewClient(embedding.Config{
			APIKey:    cfg.Embedding.APIKey,
			Model:     cfg.Embedding.Model,
			BaseURL:   cfg.Embedding.BaseURL,
			Dimension: cfg.Embedding.Dimension,
			Timeout:   cfg.Embedding.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("building embedder: %w", err)
		}
		index, err := retrieval.LoadIndex(cfg.Vector.VectorsPath, cfg.Vector.MetadataPath, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("vector index unavailable, vector fallback disabled")
		} else {
			retriever = retrieval.NewRetriever(embedder, index, cfg.Vector.TopK, cfg.Vector.ScoreThreshold, logger)
		}
	} else {
		logger.Warn().Msg("no embedding API key, vector fallback disabled")
	}

	var backends []genai.Backend
	for _, bc := range []config.BackendConfig{cfg.Generative.Primary, cfg.Generative.Secondary} {
		if bc.APIKey == "" || bc.Model == "" {
			continue
		}
		b, err := genai.NewChatBackend(genai.ChatConfig{
			Name:    bc.Name,
			BaseURL: bc.BaseURL,
			APIKey:  bc.APIKey,
			Model:   bc.Model,
			Timeout: bc.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("building generative backend: %w", err)
		}
		backends = append(backends, b)
	}
	generator := genai.NewGenerator(cfg.Generative.MaxChars, logger, metrics, backends...)

	gate := routing.NewSafetyGate()
	if cfg.Safety.TaxonomyPath != "" {
		gate, err = routing.LoadSafetyGate(cfg.Safety.TaxonomyPath)
		if err != nil {
			return nil, fmt.Errorf("loading safety taxonomy: %w", err)
		}
	}

	sessions, err := routing.NewSessions(cfg.Session.MaxSessions, cfg.Session.MaxHistory, cfg.Session.TTL)
	if err != nil {
		return nil, fmt.Errorf("building session store: %w", err)
	}

	engine := routing.NewEngine(routing.EngineConfig{
		Store:           store,
		Retriever:       retriever,
		Generator:       generator,
		Cache:           cacheClient,
		CacheTTL:        cfg.Cache.TTL,
		Sessions:        sessions,
		MinLexicalScore: cfg.Routing.MinLexicalScore,
		MaxHistory:      cfg.Session.MaxHistory,
		ContextSize:     cfg.Generative.ContextSize,
		SafetyGate:      gate,
		Logger:          logger,
		Metrics:         metrics,
	})

	callbacks, err := storage.OpenCallbackStore(cfg.Callback.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("opening callback store: %w", err)
	}

	return &App{
		Config:    cfg,
		Logger:    logger,
		Metrics:   metrics,
		Store:     store,
		Engine:    engine,
		Cache:     cacheClient,
		Callbacks: callbacks,
	}, nil
}

// Close releases held resources.
func (a *App) Close() {
	if a.Callbacks != nil {
		if err := a.Callbacks.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("closing callback store")
		}
	}
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("closing cache")
		}
	}
}
