package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/propwise/internal/cache/memory"
	"github.com/davidbz/propwise/internal/domain"
)

func TestBackend(t *testing.T) {
	ctx := context.Background()

	t.Run("should miss unknown keys", func(t *testing.T) {
		b := memory.NewBackend(memory.Config{Size: 8, MaxTTL: time.Hour})

		value, err := b.Get(ctx, "absent")
		require.ErrorIs(t, err, domain.ErrCacheMiss)
		require.Nil(t, value)
	})

	t.Run("should overwrite on set", func(t *testing.T) {
		b := memory.NewBackend(memory.Config{Size: 8, MaxTTL: time.Hour})

		require.NoError(t, b.Set(ctx, "k", []byte("first"), time.Minute))
		require.NoError(t, b.Set(ctx, "k", []byte("second"), time.Minute))

		value, err := b.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, []byte("second"), value)
	})

	t.Run("should not share stored bytes with callers", func(t *testing.T) {
		b := memory.NewBackend(memory.Config{Size: 8, MaxTTL: time.Hour})

		input := []byte("value")
		require.NoError(t, b.Set(ctx, "k", input, time.Minute))
		input[0] = 'X'

		value, err := b.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, []byte("value"), value)
	})

	t.Run("should evict least recently used", func(t *testing.T) {
		b := memory.NewBackend(memory.Config{Size: 2, MaxTTL: time.Hour})

		require.NoError(t, b.Set(ctx, "a", []byte("1"), time.Minute))
		require.NoError(t, b.Set(ctx, "b", []byte("2"), time.Minute))
		require.NoError(t, b.Set(ctx, "c", []byte("3"), time.Minute))

		_, err := b.Get(ctx, "a")
		require.ErrorIs(t, err, domain.ErrCacheMiss)
		require.Equal(t, 2, b.Len())
	})

	t.Run("should delete by prefix", func(t *testing.T) {
		b := memory.NewBackend(memory.Config{Size: 8, MaxTTL: time.Hour})

		require.NoError(t, b.Set(ctx, "propwise:v1:search:a", []byte("1"), time.Minute))
		require.NoError(t, b.Set(ctx, "propwise:v1:search:b", []byte("2"), time.Minute))
		require.NoError(t, b.Set(ctx, "propwise:v1:investment:1", []byte("3"), time.Minute))

		removed, err := b.DeletePrefix(ctx, "propwise:v1:search:")
		require.NoError(t, err)
		require.Equal(t, 2, removed)

		_, err = b.Get(ctx, "propwise:v1:investment:1")
		require.NoError(t, err)
	})

	t.Run("should delete a key", func(t *testing.T) {
		b := memory.NewBackend(memory.Config{Size: 8, MaxTTL: time.Hour})

		require.NoError(t, b.Set(ctx, "k", []byte("v"), time.Minute))
		require.NoError(t, b.Delete(ctx, "k"))

		_, err := b.Get(ctx, "k")
		require.ErrorIs(t, err, domain.ErrCacheMiss)
		require.NoError(t, b.Ping(ctx))
		require.Equal(t, "memory", b.Name())
	})
}
