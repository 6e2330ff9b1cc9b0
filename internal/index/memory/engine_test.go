package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/propwise/internal/domain"
	"github.com/davidbz/propwise/internal/index/memory"
)

func TestEngine(t *testing.T) {
	ctx := context.Background()

	t.Run("should return nearest first with id tie-break", func(t *testing.T) {
		engine := memory.NewEngine(2)

		_, err := engine.Upsert(ctx, &domain.PropertyRecord{ID: 3}, []float64{0, 1})
		require.NoError(t, err)
		_, err = engine.Upsert(ctx, &domain.PropertyRecord{ID: 2}, []float64{1, 0})
		require.NoError(t, err)
		_, err = engine.Upsert(ctx, &domain.PropertyRecord{ID: 1}, []float64{1, 0})
		require.NoError(t, err)

		neighbors, err := engine.Search(ctx, []float64{1, 0}, 2, domain.Predicate{})
		require.NoError(t, err)
		require.Len(t, neighbors, 2)
		require.Equal(t, int64(1), neighbors[0].Property.ID)
		require.Equal(t, int64(2), neighbors[1].Property.ID)
		require.InDelta(t, 0.0, neighbors[0].Distance, 1e-9)
	})

	t.Run("should replace on upsert", func(t *testing.T) {
		engine := memory.NewEngine(0)

		id, err := engine.Upsert(ctx, &domain.PropertyRecord{ID: 7, City: "Pune"}, []float64{1, 0})
		require.NoError(t, err)
		require.Equal(t, "memory:7", id)

		_, err = engine.Upsert(ctx, &domain.PropertyRecord{ID: 7, City: "Mumbai"}, []float64{0, 1})
		require.NoError(t, err)
		require.Equal(t, 1, engine.Len())

		neighbors, err := engine.Search(ctx, []float64{0, 1}, 5, domain.Predicate{})
		require.NoError(t, err)
		require.Len(t, neighbors, 1)
		require.Equal(t, "Mumbai", neighbors[0].Property.City)
		require.Equal(t, "memory:7", neighbors[0].Property.EmbeddingID)
	})

	t.Run("should reject dimension mismatch", func(t *testing.T) {
		engine := memory.NewEngine(3)

		_, err := engine.Upsert(ctx, &domain.PropertyRecord{ID: 1}, []float64{1, 0})
		require.Error(t, err)

		_, err = engine.Search(ctx, []float64{1, 0}, 1, domain.Predicate{})
		require.Error(t, err)
	})

	t.Run("should apply the predicate during the scan", func(t *testing.T) {
		engine := memory.NewEngine(2)
		require.True(t, engine.NativeFilters())

		for i := range 20 {
			_, err := engine.Upsert(ctx, &domain.PropertyRecord{ID: int64(100 + i), City: "Mumbai"}, []float64{1, 0})
			require.NoError(t, err)
		}
		for i := range 3 {
			_, err := engine.Upsert(ctx, &domain.PropertyRecord{ID: int64(i + 1), City: "Bangalore"}, []float64{0, 1})
			require.NoError(t, err)
		}

		pred, err := domain.NewPredicate(domain.SearchFilters{City: "Bangalore"})
		require.NoError(t, err)

		neighbors, err := engine.Search(ctx, []float64{1, 0}, 2, pred)
		require.NoError(t, err)
		require.Len(t, neighbors, 2)
		require.Equal(t, int64(1), neighbors[0].Property.ID)
		require.Equal(t, int64(2), neighbors[1].Property.ID)
	})
}
