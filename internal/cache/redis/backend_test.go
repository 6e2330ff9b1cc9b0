package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/propwise/internal/cache/redis"
	"github.com/davidbz/propwise/internal/domain"
)

// unreachableConfig points at a port nothing listens on.
func unreachableConfig() redis.Config {
	return redis.Config{
		Addr:         "127.0.0.1:1",
		DialTimeout:  50 * time.Millisecond,
		ReadTimeout:  50 * time.Millisecond,
		WriteTimeout: 50 * time.Millisecond,
		MaxRetries:   -1,
	}
}

func TestBackend_Unreachable(t *testing.T) {
	ctx := context.Background()
	client := redis.NewClient(unreachableConfig())
	defer client.Close()

	backend := redis.NewBackend(client)

	t.Run("should report connection failures as errors, not misses", func(t *testing.T) {
		_, err := backend.Get(ctx, "propwise:v1:investment:1")
		require.Error(t, err)
		require.False(t, errors.Is(err, domain.ErrCacheMiss))
	})

	t.Run("should fail ping", func(t *testing.T) {
		require.Error(t, backend.Ping(ctx))
		require.Equal(t, "redis", backend.Name())
	})

	t.Run("should degrade to compute through the cache store", func(t *testing.T) {
		store := domain.NewCacheStore(domain.CacheStoreConfig{TierTimeout: time.Second}, nil, nil, backend)

		calls := 0
		compute := func(context.Context) ([]byte, error) {
			calls++
			return []byte(`{"ok":true}`), nil
		}

		for range 2 {
			value, info, err := store.GetOrCompute(ctx, "propwise:v1:trend:1year:pune", domain.KindTrend, time.Hour, compute)
			require.NoError(t, err)
			require.JSONEq(t, `{"ok":true}`, string(value))
			require.Equal(t, domain.CacheMiss, info.Status)
		}
		require.Equal(t, 2, calls)

		statuses := store.Status(ctx)
		require.Len(t, statuses, 1)
		require.False(t, statuses[0].Available)
	})
}
