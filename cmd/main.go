package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/davidbz/propwise/internal/cache/memory"
	"github.com/davidbz/propwise/internal/cache/redis"
	"github.com/davidbz/propwise/internal/config"
	"github.com/davidbz/propwise/internal/domain"
	embeddingopenai "github.com/davidbz/propwise/internal/embedding/openai"
	"github.com/davidbz/propwise/internal/http"
	"github.com/davidbz/propwise/internal/http/middleware"
	indexmemory "github.com/davidbz/propwise/internal/index/memory"
	llmopenai "github.com/davidbz/propwise/internal/llm/openai"
	"github.com/davidbz/propwise/internal/observability"
	"github.com/davidbz/propwise/internal/store/sqlite"
)

const (
	indexSetupTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

func main() {
	container := buildContainer()

	// Initialize the logger before anything else logs.
	if err := container.Invoke(func(*zap.Logger) {}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := container.Invoke(func(
		server *http.Server,
		store *sqlite.Store,
		orchestrator *domain.Orchestrator,
		indexCfg *config.IndexConfig,
	) {
		defer func() {
			if closeErr := store.Close(); closeErr != nil {
				observability.FromContext(ctx).Warn("failed to close store", observability.Error(closeErr))
			}
		}()

		if indexCfg.WarmOnStart {
			warmIndex(ctx, store, orchestrator, indexCfg.WarmBatchSize)
		}

		serverErr := make(chan error, 1)
		go func() {
			serverErr <- server.Start()
		}()

		select {
		case err := <-serverErr:
			if err != nil {
				log.Fatalf("Server failed to start: %v", err)
			}
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				observability.FromContext(shutdownCtx).Error("graceful shutdown failed", observability.Error(err))
			}
		}
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}
	if err := container.Provide(newRegistry, dig.As(new(prometheus.Registerer), new(prometheus.Gatherer))); err != nil {
		log.Fatalf("Failed to provide metrics registry: %v", err)
	}
	if err := container.Provide(observability.NewMetrics); err != nil {
		log.Fatalf("Failed to provide metrics: %v", err)
	}
	if err := container.Provide(func(metrics *observability.Metrics) domain.EventPublisher {
		return observability.NewEventBus(metrics)
	}); err != nil {
		log.Fatalf("Failed to provide event bus: %v", err)
	}
	if err := container.Provide(func() domain.Clock {
		return domain.SystemClock{}
	}); err != nil {
		log.Fatalf("Failed to provide clock: %v", err)
	}

	// Cache
	if err := container.Provide(newRedisClient); err != nil {
		log.Fatalf("Failed to provide redis client: %v", err)
	}
	if err := container.Provide(newCacheStore); err != nil {
		log.Fatalf("Failed to provide cache store: %v", err)
	}

	// Persistence
	if err := container.Provide(func(cfg *sqlite.Config, clock domain.Clock) (*sqlite.Store, error) {
		return sqlite.New(*cfg, clock)
	}); err != nil {
		log.Fatalf("Failed to provide sqlite store: %v", err)
	}
	if err := container.Provide(func(store *sqlite.Store) domain.PropertyStore {
		return store
	}); err != nil {
		log.Fatalf("Failed to provide property store: %v", err)
	}

	// OpenAI adapters
	if err := container.Provide(func(cfg *embeddingopenai.Config) (domain.EmbeddingGenerator, error) {
		return embeddingopenai.NewGenerator(*cfg)
	}); err != nil {
		log.Fatalf("Failed to provide embedding generator: %v", err)
	}
	if err := container.Provide(func(cfg *llmopenai.Config) (domain.LLMProvider, error) {
		return llmopenai.NewProvider(*cfg)
	}); err != nil {
		log.Fatalf("Failed to provide LLM provider: %v", err)
	}

	// Vector index
	if err := container.Provide(newSimilarityEngine); err != nil {
		log.Fatalf("Failed to provide similarity engine: %v", err)
	}
	if err := container.Provide(func(engine domain.SimilarityEngine, cfg *domain.VectorIndexConfig) *domain.VectorIndex {
		return domain.NewVectorIndex(engine, *cfg)
	}); err != nil {
		log.Fatalf("Failed to provide vector index: %v", err)
	}

	// Domain Services
	if err := container.Provide(func(cfg *domain.ScoringConfig) *domain.ScoringEngine {
		return domain.NewScoringEngine(*cfg)
	}); err != nil {
		log.Fatalf("Failed to provide scoring engine: %v", err)
	}
	if err := container.Provide(func(
		embedder domain.EmbeddingGenerator,
		index *domain.VectorIndex,
		cfg *domain.SearchConfig,
		timeouts *domain.TimeoutConfig,
	) *domain.SearchAgent {
		return domain.NewSearchAgent(embedder, index, *cfg, *timeouts)
	}); err != nil {
		log.Fatalf("Failed to provide search agent: %v", err)
	}
	if err := container.Provide(func(
		store domain.PropertyStore,
		llm domain.LLMProvider,
		scoring *domain.ScoringEngine,
		timeouts *domain.TimeoutConfig,
	) *domain.InvestmentAgent {
		return domain.NewInvestmentAgent(store, llm, scoring, *timeouts)
	}); err != nil {
		log.Fatalf("Failed to provide investment agent: %v", err)
	}
	if err := container.Provide(func(
		store domain.PropertyStore,
		llm domain.LLMProvider,
		timeouts *domain.TimeoutConfig,
	) *domain.MarketTrendAgent {
		return domain.NewMarketTrendAgent(store, llm, *timeouts)
	}); err != nil {
		log.Fatalf("Failed to provide market trend agent: %v", err)
	}
	if err := container.Provide(newOrchestrator); err != nil {
		log.Fatalf("Failed to provide orchestrator: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(http.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// newRedisClient returns nil when Redis is disabled.
func newRedisClient(cfg *redis.Config) *goredis.Client {
	if !cfg.Enabled {
		return nil
	}
	return redis.NewClient(*cfg)
}

func newCacheStore(
	cfg *domain.CacheStoreConfig,
	memCfg *memory.Config,
	client *goredis.Client,
	clock domain.Clock,
	events domain.EventPublisher,
) *domain.CacheStore {
	backends := make([]domain.CacheBackend, 0, 2)
	if memCfg.Enabled {
		backends = append(backends, memory.NewBackend(*memCfg))
	}
	if client != nil {
		backends = append(backends, redis.NewBackend(client))
	}

	return domain.NewCacheStore(*cfg, clock, events, backends...)
}

// newSimilarityEngine prefers RediSearch and falls back to the in-memory
// engine when Redis is disabled or the index cannot be created.
func newSimilarityEngine(
	cfg *config.IndexConfig,
	redisCfg *redis.Config,
	client *goredis.Client,
	embedder domain.EmbeddingGenerator,
) domain.SimilarityEngine {
	ctx, cancel := context.WithTimeout(context.Background(), indexSetupTimeout)
	defer cancel()

	logger := observability.FromContext(ctx)

	if cfg.Engine == config.IndexEngineRedis && client != nil {
		engine, err := redis.NewVectorSearch(ctx, client, *redisCfg, embedder.Dimension())
		if err == nil {
			logger.Info("using redis similarity engine", observability.String("index", redisCfg.IndexName))
			return engine
		}
		logger.Warn("redis similarity engine unavailable, falling back to memory", observability.Error(err))
	}

	logger.Info("using in-memory similarity engine", observability.Int("dimension", embedder.Dimension()))
	return indexmemory.NewEngine(embedder.Dimension())
}

func newOrchestrator(
	cache *domain.CacheStore,
	ttl *domain.CacheTTLConfig,
	search *domain.SearchAgent,
	investment *domain.InvestmentAgent,
	trends *domain.MarketTrendAgent,
	store domain.PropertyStore,
	events domain.EventPublisher,
	clock domain.Clock,
	timeouts *domain.TimeoutConfig,
) *domain.Orchestrator {
	return domain.NewOrchestrator(domain.OrchestratorDeps{
		Cache:      cache,
		TTL:        *ttl,
		Search:     search,
		Investment: investment,
		Trends:     trends,
		Store:      store,
		Events:     events,
		Clock:      clock,
		Timeouts:   *timeouts,
	})
}

// warmIndex re-indexes every stored property. Failures are logged and skipped.
func warmIndex(ctx context.Context, store domain.PropertyStore, orchestrator *domain.Orchestrator, batchSize int) {
	logger := observability.FromContext(ctx)

	var afterID int64
	indexed, failed := 0, 0
	for {
		page, err := store.ListProperties(ctx, afterID, batchSize)
		if err != nil {
			logger.Error("failed to list properties for warm-up", observability.Error(err))
			return
		}
		if len(page) == 0 {
			break
		}

		for _, property := range page {
			if _, indexErr := orchestrator.IndexProperty(ctx, property.ID); indexErr != nil {
				if errors.Is(indexErr, context.Canceled) {
					return
				}
				failed++
				logger.Warn("failed to index property",
					observability.Int64("property_id", property.ID),
					observability.Error(indexErr))
				continue
			}
			indexed++
		}

		afterID = page[len(page)-1].ID
	}

	logger.Info("vector index warmed",
		observability.Int("indexed", indexed),
		observability.Int("failed", failed))
}
