package redis

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// Config contains Redis connection and index settings.
type Config struct {
	Enabled      bool          `env:"REDIS_ENABLED"       envDefault:"true"`
	Addr         string        `env:"REDIS_ADDR"          envDefault:"localhost:6379"`
	Password     string        `env:"REDIS_PASSWORD"`
	DB           int           `env:"REDIS_DB"            envDefault:"0"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT"  envDefault:"2s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT"  envDefault:"1s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"1s"`
	MaxRetries   int           `env:"REDIS_MAX_RETRIES"   envDefault:"1"`

	IndexName      string `env:"REDIS_INDEX_NAME"      envDefault:"propwise:properties"`
	DocumentPrefix string `env:"REDIS_DOCUMENT_PREFIX" envDefault:"propwise:property:"`
}

// NewClient creates a Redis client. It does not dial.
// RESP2 is used because RediSearch replies are only stable there.
func NewClient(cfg Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Protocol:     2,
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		MaxRetries:   cfg.MaxRetries,
	})
}
