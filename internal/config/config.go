package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/davidbz/propwise/internal/cache/memory"
	"github.com/davidbz/propwise/internal/cache/redis"
	"github.com/davidbz/propwise/internal/domain"
	embeddingopenai "github.com/davidbz/propwise/internal/embedding/openai"
	llmopenai "github.com/davidbz/propwise/internal/llm/openai"
	"github.com/davidbz/propwise/internal/observability"
	"github.com/davidbz/propwise/internal/store/sqlite"
)

// Index engines.
const (
	IndexEngineRedis  = "redis"
	IndexEngineMemory = "memory"
)

// Config represents the service configuration.
type Config struct {
	Server      ServerConfig
	CORS        CORSConfig
	Logger      observability.LoggerConfig
	Index       IndexConfig
	Redis       redis.Config
	Memory      memory.Config
	SQLite      sqlite.Config
	Embedding   embeddingopenai.Config
	LLM         llmopenai.Config
	TTL         domain.CacheTTLConfig
	CacheStore  domain.CacheStoreConfig
	Timeouts    domain.TimeoutConfig
	Search      domain.SearchConfig
	VectorIndex domain.VectorIndexConfig
	Scoring     domain.ScoringConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int `env:"SERVER_PORT"          envDefault:"8080"`
	ReadTimeout  int `env:"SERVER_READ_TIMEOUT"  envDefault:"30"`
	WriteTimeout int `env:"SERVER_WRITE_TIMEOUT" envDefault:"90"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Authorization"`
	// ExposedHeaders lets browser clients read the cache status and trace ids.
	ExposedHeaders   []string `env:"CORS_EXPOSED_HEADERS"   envSeparator:"," envDefault:"X-Propwise-Cache,X-Propwise-Cache-Timestamp,X-Request-Id,X-Trace-Id"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// IndexConfig selects the similarity engine.
type IndexConfig struct {
	// Engine is "redis" (RediSearch) or "memory". Redis falls back to memory when unreachable.
	Engine string `env:"INDEX_ENGINE" envDefault:"redis"`
	// WarmOnStart re-indexes every stored property at startup.
	WarmOnStart bool `env:"INDEX_WARM_ON_START" envDefault:"false"`
	// WarmBatchSize is the page size used while warming.
	WarmBatchSize int `env:"INDEX_WARM_BATCH_SIZE" envDefault:"100"`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out

	Server      *ServerConfig
	CORS        *CORSConfig
	Logger      *observability.LoggerConfig
	Index       *IndexConfig
	Redis       *redis.Config
	Memory      *memory.Config
	SQLite      *sqlite.Config
	Embedding   *embeddingopenai.Config
	LLM         *llmopenai.Config
	TTL         *domain.CacheTTLConfig
	CacheStore  *domain.CacheStoreConfig
	Timeouts    *domain.TimeoutConfig
	Search      *domain.SearchConfig
	VectorIndex *domain.VectorIndexConfig
	Scoring     *domain.ScoringConfig
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		Server:      &cfg.Server,
		CORS:        &cfg.CORS,
		Logger:      &cfg.Logger,
		Index:       &cfg.Index,
		Redis:       &cfg.Redis,
		Memory:      &cfg.Memory,
		SQLite:      &cfg.SQLite,
		Embedding:   &cfg.Embedding,
		LLM:         &cfg.LLM,
		TTL:         &cfg.TTL,
		CacheStore:  &cfg.CacheStore,
		Timeouts:    &cfg.Timeouts,
		Search:      &cfg.Search,
		VectorIndex: &cfg.VectorIndex,
		Scoring:     &cfg.Scoring,
	}
}
