// Package memory provides the in-process cache tier.
package memory

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/davidbz/propwise/internal/domain"
)

// Config configures the in-process cache tier.
type Config struct {
	Enabled bool `env:"CACHE_MEMORY_ENABLED" envDefault:"true"`
	Size    int  `env:"CACHE_MEMORY_SIZE"    envDefault:"1024"`
	// MaxTTL caps how long an entry can stay in memory; per-entry expiry is
	// enforced by the cache envelope.
	MaxTTL time.Duration `env:"CACHE_MEMORY_MAX_TTL" envDefault:"24h"`
}

// Backend is an LRU cache tier with time-based eviction.
type Backend struct {
	lru *expirable.LRU[string, []byte]
}

// NewBackend creates an in-process cache tier.
func NewBackend(cfg Config) *Backend {
	size := cfg.Size
	if size <= 0 {
		size = 1024
	}
	return &Backend{
		lru: expirable.NewLRU[string, []byte](size, nil, cfg.MaxTTL),
	}
}

// Get returns a copy of the stored bytes or domain.ErrCacheMiss.
func (b *Backend) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := b.lru.Get(key)
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return bytes.Clone(value), nil
}

// Set stores value under key. The ttl is bounded by the tier's MaxTTL.
func (b *Backend) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	b.lru.Add(key, bytes.Clone(value))
	return nil
}

// Delete removes key.
func (b *Backend) Delete(_ context.Context, key string) error {
	b.lru.Remove(key)
	return nil
}

// DeletePrefix removes every key starting with prefix.
func (b *Backend) DeletePrefix(_ context.Context, prefix string) (int, error) {
	removed := 0
	for _, key := range b.lru.Keys() {
		if strings.HasPrefix(key, prefix) && b.lru.Remove(key) {
			removed++
		}
	}
	return removed, nil
}

// Ping always succeeds.
func (b *Backend) Ping(context.Context) error {
	return nil
}

// Name returns the tier identifier.
func (b *Backend) Name() string {
	return "memory"
}

// Len returns the number of live entries.
func (b *Backend) Len() int {
	return b.lru.Len()
}
