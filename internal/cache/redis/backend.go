package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davidbz/propwise/internal/domain"
)

const scanBatchSize = 256

// Backend is the network cache tier backed by Redis strings.
type Backend struct {
	client *redis.Client
}

// NewBackend creates a Redis cache tier.
func NewBackend(client *redis.Client) *Backend {
	return &Backend{client: client}
}

// Get returns the stored bytes or domain.ErrCacheMiss.
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := b.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return value, nil
}

// Set stores value under key with ttl, overwriting any prior value.
func (b *Backend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := b.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Delete removes key.
func (b *Backend) Delete(ctx context.Context, key string) error {
	if err := b.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

// DeletePrefix scans for keys starting with prefix and deletes them.
func (b *Backend) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	pattern := escapeGlob(prefix) + "*"
	removed := 0

	var cursor uint64
	for {
		keys, next, err := b.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return removed, fmt.Errorf("redis scan failed: %w", err)
		}

		if len(keys) > 0 {
			n, delErr := b.client.Del(ctx, keys...).Result()
			if delErr != nil {
				return removed, fmt.Errorf("redis del failed: %w", delErr)
			}
			removed += int(n)
		}

		cursor = next
		if cursor == 0 {
			return removed, nil
		}
	}
}

// Ping reports whether Redis is reachable.
func (b *Backend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

// Name returns the tier identifier.
func (b *Backend) Name() string {
	return "redis"
}

// escapeGlob escapes the characters SCAN MATCH treats as pattern syntax.
func escapeGlob(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\', '^':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
