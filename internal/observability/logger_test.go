package observability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/davidbz/propwise/internal/observability"
)

func TestInitLogger(t *testing.T) {
	t.Run("should reject unknown levels", func(t *testing.T) {
		_, err := observability.InitLogger(&observability.LoggerConfig{Level: "loud"})
		require.Error(t, err)
	})

	t.Run("should build a development logger", func(t *testing.T) {
		logger, err := observability.InitLogger(&observability.LoggerConfig{Development: true, Level: "debug"})
		require.NoError(t, err)
		require.NotNil(t, logger)
	})
}

func TestFromContext(t *testing.T) {
	t.Run("should attach context fields", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)
		observability.SetLogger(zap.New(core))
		t.Cleanup(func() { observability.SetLogger(nil) })

		ctx := observability.WithRequestID(context.Background(), "req-1")
		ctx = observability.WithRequestKind(ctx, "search")
		ctx = observability.WithCacheKey(ctx, "propwise:v1:search:abc")

		observability.FromContext(ctx).Info("hello")

		entries := logs.All()
		require.Len(t, entries, 1)

		fields := entries[0].ContextMap()
		require.Equal(t, "req-1", fields["request_id"])
		require.Equal(t, "search", fields["request_kind"])
		require.Equal(t, "propwise:v1:search:abc", fields["cache_key"])
		require.NotContains(t, fields, "trace_id")
	})
}

func TestGenerateIDs(t *testing.T) {
	t.Run("should generate ids of the expected size", func(t *testing.T) {
		require.Len(t, observability.GenerateTraceID(), 32)
		require.Len(t, observability.GenerateSpanID(), 16)
		require.NotEqual(t, observability.GenerateRequestID(), observability.GenerateRequestID())
	})
}
