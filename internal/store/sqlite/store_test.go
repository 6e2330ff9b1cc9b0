package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/propwise/internal/domain"
	"github.com/davidbz/propwise/internal/store/sqlite"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func newStore(t *testing.T, clock domain.Clock) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(sqlite.Config{Path: ":memory:"}, clock)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func floatPtr(v float64) *float64 { return &v }

func TestNew(t *testing.T) {
	t.Run("should require a path", func(t *testing.T) {
		store, err := sqlite.New(sqlite.Config{}, nil)
		require.Error(t, err)
		require.Nil(t, store)
	})
}

func TestStore_Properties(t *testing.T) {
	ctx := context.Background()
	clock := &fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	t.Run("should insert and read a property", func(t *testing.T) {
		store := newStore(t, clock)

		id, err := store.UpsertProperty(ctx, &domain.PropertyRecord{
			BuildingName: "Prestige Lakeside",
			PropertyType: "Apartment",
			Address:      "Whitefield",
			City:         "Bangalore",
			Price:        7500000,
			AreaSqft:     1200,
			Bedrooms:     2,
		})
		require.NoError(t, err)
		require.Positive(t, id)

		rec, err := store.GetProperty(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "Prestige Lakeside", rec.BuildingName)
		require.Equal(t, "Bangalore", rec.City)
		require.InDelta(t, 7500000.0, rec.Price, 0.001)
		require.Equal(t, 2, rec.Bedrooms)
		require.Nil(t, rec.InvestmentScore)
		require.Equal(t, clock.now.Unix(), rec.CreatedAt.Unix())
	})

	t.Run("should return not found for missing property", func(t *testing.T) {
		store := newStore(t, clock)

		rec, err := store.GetProperty(ctx, 404)
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.Nil(t, rec)
	})

	t.Run("should replace an existing property", func(t *testing.T) {
		store := newStore(t, clock)

		id, err := store.UpsertProperty(ctx, &domain.PropertyRecord{BuildingName: "A", City: "Pune", Price: 1})
		require.NoError(t, err)

		_, err = store.UpsertProperty(ctx, &domain.PropertyRecord{ID: id, BuildingName: "B", City: "Pune", Price: 2})
		require.NoError(t, err)

		rec, err := store.GetProperty(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "B", rec.BuildingName)
	})

	t.Run("should page through properties", func(t *testing.T) {
		store := newStore(t, clock)

		for _, name := range []string{"A", "B", "C"} {
			_, err := store.UpsertProperty(ctx, &domain.PropertyRecord{BuildingName: name, City: "Pune", Price: 1})
			require.NoError(t, err)
		}

		first, err := store.ListProperties(ctx, 0, 2)
		require.NoError(t, err)
		require.Len(t, first, 2)

		rest, err := store.ListProperties(ctx, first[1].ID, 2)
		require.NoError(t, err)
		require.Len(t, rest, 1)
		require.Equal(t, "C", rest[0].BuildingName)
	})

	t.Run("should write back embedding id", func(t *testing.T) {
		store := newStore(t, clock)

		id, err := store.UpsertProperty(ctx, &domain.PropertyRecord{BuildingName: "A", City: "Pune", Price: 1})
		require.NoError(t, err)

		require.NoError(t, store.SetEmbeddingID(ctx, id, "memory:1"))
		require.ErrorIs(t, store.SetEmbeddingID(ctx, id+100, "x"), domain.ErrNotFound)

		rec, err := store.GetProperty(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "memory:1", rec.EmbeddingID)
	})
}

func TestStore_SaveAnalysis(t *testing.T) {
	ctx := context.Background()
	clock := &fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	t.Run("should persist analysis and write back investment score", func(t *testing.T) {
		store := newStore(t, clock)

		id, err := store.UpsertProperty(ctx, &domain.PropertyRecord{BuildingName: "A", City: "Pune", Price: 1})
		require.NoError(t, err)

		analysis := &domain.InvestmentAnalysis{
			PropertyID:       id,
			ROI5Year:         40,
			ROI10Year:        95,
			AppreciationRate: 6,
			RentalYield:      3,
			RiskScore:        35,
			InvestmentScore:  83,
			Recommendation:   domain.RecommendBuy,
			Narrative:        "Strong location.",
		}
		require.NoError(t, store.SaveAnalysis(ctx, analysis))

		rec, err := store.GetProperty(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, rec.InvestmentScore)
		require.InDelta(t, 83.0, *rec.InvestmentScore, 0.001)

		latest, err := store.LatestAnalysis(ctx, id)
		require.NoError(t, err)
		require.Equal(t, *analysis, *latest)
	})

	t.Run("should reject analysis of unknown property", func(t *testing.T) {
		store := newStore(t, clock)

		err := store.SaveAnalysis(ctx, &domain.InvestmentAnalysis{PropertyID: 99})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestStore_GetHistoricalSignals(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := &fixedClock{now: now}

	t.Run("should aggregate listings, price change, risk and searches", func(t *testing.T) {
		store := newStore(t, clock)

		listings := []struct {
			price   float64
			created time.Time
			city    string
		}{
			{price: 4000000, created: now.AddDate(0, -10, 0), city: "Bangalore"},
			{price: 6000000, created: now.AddDate(0, -2, 0), city: "bangalore"},
			{price: 9000000, created: now.AddDate(-2, 0, 0), city: "Bangalore"},
			{price: 1000000, created: now.AddDate(0, -1, 0), city: "Pune"},
		}
		var firstID int64
		for i, l := range listings {
			id, err := store.UpsertProperty(ctx, &domain.PropertyRecord{
				BuildingName: "Listing",
				City:         l.city,
				Price:        l.price,
				CreatedAt:    l.created,
			})
			require.NoError(t, err)
			if i == 0 {
				firstID = id
			}
		}

		require.NoError(t, store.SaveAnalysis(ctx, &domain.InvestmentAnalysis{
			PropertyID: firstID, RiskScore: 40, Recommendation: domain.RecommendHold,
		}))

		require.NoError(t, store.RecordSearch(ctx, &domain.SearchHistoryEntry{
			Query: "2 bhk", City: "Bangalore", MaxPrice: floatPtr(8000000), SearchedAt: now.AddDate(0, 0, -3),
		}))
		require.NoError(t, store.RecordSearch(ctx, &domain.SearchHistoryEntry{
			Query: "villa", City: "Bangalore", SearchedAt: now.AddDate(-2, 0, 0),
		}))

		signals, err := store.GetHistoricalSignals(ctx, "  BANGALORE ", domain.Timeframe1Year)
		require.NoError(t, err)
		require.Equal(t, "bangalore", signals.City)
		require.Equal(t, 2, signals.ListingCount)
		require.InDelta(t, 5000000.0, signals.AveragePrice, 0.001)
		require.InDelta(t, 4000000.0, signals.MinPrice, 0.001)
		require.InDelta(t, 6000000.0, signals.MaxPrice, 0.001)
		require.InDelta(t, 50.0, signals.PriceChangePct, 0.001)
		require.InDelta(t, 40.0, signals.AverageRiskScore, 0.001)
		require.Equal(t, 1, signals.SearchVolume)

		wide, err := store.GetHistoricalSignals(ctx, "bangalore", domain.Timeframe3Years)
		require.NoError(t, err)
		require.Equal(t, 3, wide.ListingCount)
		require.Equal(t, 2, wide.SearchVolume)
	})

	t.Run("should return zero signals for unknown city", func(t *testing.T) {
		store := newStore(t, clock)

		signals, err := store.GetHistoricalSignals(ctx, "Nagpur", domain.Timeframe6Months)
		require.NoError(t, err)
		require.Zero(t, signals.ListingCount)
		require.Zero(t, signals.AveragePrice)
	})

	t.Run("should reject non-canonical timeframe", func(t *testing.T) {
		store := newStore(t, clock)

		_, err := store.GetHistoricalSignals(ctx, "Pune", "decade")
		require.Error(t, err)
	})
}
