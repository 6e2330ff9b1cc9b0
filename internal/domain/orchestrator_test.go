package domain_test

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/propwise/internal/domain"
	indexmemory "github.com/davidbz/propwise/internal/index/memory"
	"github.com/davidbz/propwise/internal/mocks"
	"github.com/davidbz/propwise/internal/observability"
)

const (
	validEstimate = `{"appreciation_rate":8,"rental_yield":3.5,"risk_score":30,"narrative":"Well connected locality."}`
	validTrend    = `{"direction":"rising","demand_level":"high","growth_prediction":7.5,` +
		`"hot_areas":[" Hinjewadi ","Baner",""],"narrative":"Demand is strong."}`
)

type fixture struct {
	embedder *mocks.MockEmbeddingGenerator
	llm      *mocks.MockLLMProvider
	store    *mocks.MockPropertyStore
	index    *domain.VectorIndex
	clock    *fakeClock
}

type fixtureOptions struct {
	timeouts domain.TimeoutConfig
	events   domain.EventPublisher
	backends []domain.CacheBackend
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{
		embedder: mocks.NewMockEmbeddingGenerator(t),
		llm:      mocks.NewMockLLMProvider(t),
		store:    mocks.NewMockPropertyStore(t),
		index:    domain.NewVectorIndex(indexmemory.NewEngine(2), domain.VectorIndexConfig{MaxK: 100, OverfetchFactor: 5}),
		clock:    newFakeClock(),
	}
}

func (f *fixture) orchestrator(opts fixtureOptions) *domain.Orchestrator {
	backends := opts.backends
	if backends == nil {
		backends = []domain.CacheBackend{newMemoryBackend()}
	}

	cache := domain.NewCacheStore(domain.CacheStoreConfig{}, f.clock, opts.events, backends...)

	return domain.NewOrchestrator(domain.OrchestratorDeps{
		Cache: cache,
		TTL: domain.CacheTTLConfig{
			Search:   time.Hour,
			Analysis: 24 * time.Hour,
			Trends:   12 * time.Hour,
		},
		Search:     domain.NewSearchAgent(f.embedder, f.index, domain.SearchConfig{DefaultLimit: 10}, opts.timeouts),
		Investment: domain.NewInvestmentAgent(f.store, f.llm, domain.NewScoringEngine(testScoringConfig()), opts.timeouts),
		Trends:     domain.NewMarketTrendAgent(f.store, f.llm, opts.timeouts),
		Store:      f.store,
		Events:     opts.events,
		Clock:      f.clock,
		Timeouts:   opts.timeouts,
	})
}

func (f *fixture) seed(t *testing.T, records []domain.PropertyRecord) {
	t.Helper()
	for i, rec := range records {
		angle := float64(i) * 0.1
		_, err := f.index.Upsert(context.Background(), &rec, []float64{math.Cos(angle), math.Sin(angle)})
		require.NoError(t, err)
	}
}

func testProperty(id int64) *domain.PropertyRecord {
	return &domain.PropertyRecord{
		ID:           id,
		BuildingName: "Prestige Lakeside",
		PropertyType: "Apartment",
		City:         "Bangalore",
		Locality:     "Whitefield",
		Price:        8500000,
		AreaSqft:     1250,
		Bedrooms:     2,
	}
}

func TestOrchestrator_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("should serve a repeated search from the cache", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, bangaloreListings())
		o := f.orchestrator(fixtureOptions{})

		f.embedder.EXPECT().Generate(mock.Anything, "flats in bangalore").Return([]float64{1, 0}, nil).Once()
		f.store.EXPECT().RecordSearch(mock.Anything, mock.Anything).Return(nil).Maybe()

		first, info, err := o.Search(ctx, domain.SearchRequest{Query: "Flats in Bangalore"})
		require.NoError(t, err)
		require.Equal(t, domain.CacheMiss, info.Status)
		require.Equal(t, 10, first.Limit)
		require.Len(t, first.Items, len(bangaloreListings()))

		second, info, err := o.Search(ctx, domain.SearchRequest{Query: "  flats in  BANGALORE! "})
		require.NoError(t, err)
		require.Equal(t, domain.CacheHit, info.Status)
		require.Equal(t, first, second)
	})

	t.Run("should only return properties matching the filters", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, bangaloreListings())
		o := f.orchestrator(fixtureOptions{})

		f.embedder.EXPECT().Generate(mock.Anything, "3bhk").Return([]float64{1, 0}, nil).Once()
		f.store.EXPECT().RecordSearch(mock.Anything, mock.Anything).Return(nil).Maybe()

		filters := domain.SearchFilters{
			City:     "Bangalore",
			MinPrice: floatPtr(5000000),
			MaxPrice: floatPtr(10000000),
		}
		result, _, err := o.Search(ctx, domain.SearchRequest{Query: "3BHK", Filters: filters, Limit: 5})
		require.NoError(t, err)
		require.NotEmpty(t, result.Items)

		pred := mustPredicate(t, filters)
		for _, hit := range result.Items {
			require.True(t, pred.Matches(&hit.Property), "property %d should match", hit.Property.ID)
		}
	})

	t.Run("should reject an empty query without calling collaborators", func(t *testing.T) {
		f := newFixture(t)
		o := f.orchestrator(fixtureOptions{})

		_, _, err := o.Search(ctx, domain.SearchRequest{Query: "   "})
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("should reject a limit above the maximum", func(t *testing.T) {
		f := newFixture(t)
		o := f.orchestrator(fixtureOptions{})

		_, _, err := o.Search(ctx, domain.SearchRequest{Query: "villa", Limit: 10000})
		require.ErrorIs(t, err, domain.ErrValidation)

		_, _, err = o.Search(ctx, domain.SearchRequest{Query: "villa", Limit: -1})
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("should reject inverted filter ranges", func(t *testing.T) {
		f := newFixture(t)
		o := f.orchestrator(fixtureOptions{})

		_, _, err := o.Search(ctx, domain.SearchRequest{
			Query:   "villa",
			Filters: domain.SearchFilters{MinPrice: floatPtr(9), MaxPrice: floatPtr(1)},
		})
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("should not cache embedding failures", func(t *testing.T) {
		f := newFixture(t)
		o := f.orchestrator(fixtureOptions{})

		f.embedder.EXPECT().Generate(mock.Anything, "villa").Return(nil, errors.New("rate limited")).Times(2)

		for range 2 {
			_, info, err := o.Search(ctx, domain.SearchRequest{Query: "villa"})
			require.ErrorIs(t, err, domain.ErrUpstream)
			require.Equal(t, domain.CacheMiss, info.Status)
		}
	})

	t.Run("should keep serving when the search history cannot be recorded", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, bangaloreListings())
		o := f.orchestrator(fixtureOptions{})

		f.embedder.EXPECT().Generate(mock.Anything, "villa").Return([]float64{1, 0}, nil).Once()
		f.store.EXPECT().RecordSearch(mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

		result, _, err := o.Search(ctx, domain.SearchRequest{Query: "villa", Limit: 2})
		require.NoError(t, err)
		require.Len(t, result.Items, 2)
	})

	t.Run("should compute when every cache tier is unreachable", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t, bangaloreListings())

		backend := mocks.NewMockCacheBackend(t)
		backend.EXPECT().Name().Return("redis").Maybe()
		backend.EXPECT().Get(mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))
		backend.EXPECT().Set(mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection refused"))

		o := f.orchestrator(fixtureOptions{backends: []domain.CacheBackend{backend}})

		f.embedder.EXPECT().Generate(mock.Anything, "villa").Return([]float64{1, 0}, nil).Times(2)
		f.store.EXPECT().RecordSearch(mock.Anything, mock.Anything).Return(nil).Maybe()

		for range 2 {
			result, info, err := o.Search(ctx, domain.SearchRequest{Query: "villa", Limit: 3})
			require.NoError(t, err)
			require.Equal(t, domain.CacheMiss, info.Status)
			require.Len(t, result.Items, 3)
		}
	})
}

func TestOrchestrator_Analyze(t *testing.T) {
	ctx := context.Background()

	t.Run("should compute once for concurrent callers", func(t *testing.T) {
		f := newFixture(t)
		o := f.orchestrator(fixtureOptions{})

		release := make(chan struct{})
		f.store.EXPECT().GetProperty(mock.Anything, int64(7)).Return(testProperty(7), nil).Once()
		f.llm.EXPECT().Complete(mock.Anything, mock.Anything).
			RunAndReturn(func(context.Context, domain.StructuredPrompt) (json.RawMessage, error) {
				<-release
				return json.RawMessage(validEstimate), nil
			}).Once()
		f.store.EXPECT().SaveAnalysis(mock.Anything, mock.Anything).Return(nil).Once()

		const callers = 10
		results := make([]*domain.InvestmentAnalysis, callers)
		errs := make([]error, callers)

		var wg sync.WaitGroup
		for i := range callers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i], _, errs[i] = o.Analyze(ctx, 7)
			}()
		}

		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		for i := range callers {
			require.NoError(t, errs[i])
			require.Equal(t, results[0], results[i])
		}

		_, info, err := o.Analyze(ctx, 7)
		require.NoError(t, err)
		require.Equal(t, domain.CacheHit, info.Status)
	})

	t.Run("should score the LLM estimate deterministically", func(t *testing.T) {
		f := newFixture(t)
		o := f.orchestrator(fixtureOptions{})

		property := testProperty(3)
		f.store.EXPECT().GetProperty(mock.Anything, int64(3)).Return(property, nil).Once()
		f.llm.EXPECT().Complete(mock.Anything, mock.MatchedBy(func(p domain.StructuredPrompt) bool {
			return p.Name == "investment_estimate" && p.Schema != nil
		})).Return(json.RawMessage(validEstimate), nil).Once()
		f.store.EXPECT().SaveAnalysis(mock.Anything, mock.Anything).Return(nil).Once()

		analysis, _, err := o.Analyze(ctx, 3)
		require.NoError(t, err)

		want := domain.NewScoringEngine(testScoringConfig()).Score(property, domain.MarketAssumptions{
			AppreciationRate: 8,
			RentalYield:      3.5,
			RiskEstimate:     30,
		})
		want.Narrative = "Well connected locality."
		require.Equal(t, want, analysis)
	})

	t.Run("should return the analysis when persisting it fails", func(t *testing.T) {
		f := newFixture(t)
		o := f.orchestrator(fixtureOptions{})

		f.store.EXPECT().GetProperty(mock.Anything, int64(3)).Return(testProperty(3), nil).Once()
		f.llm.EXPECT().Complete(mock.Anything, mock.Anything).Return(json.RawMessage(validEstimate), nil).Once()
		f.store.EXPECT().SaveAnalysis(mock.Anything, mock.Anything).Return(errors.New("locked")).Once()

		analysis, _, err := o.Analyze(ctx, 3)
		require.NoError(t, err)
		require.Equal(t, int64(3), analysis.PropertyID)
	})

	t.Run("should reject malformed LLM output and not cache it", func(t *testing.T) {
		tests := []struct {
			name string
			raw  string
		}{
			{name: "wrong type", raw: `{"appreciation_rate":"high","rental_yield":3,"risk_score":30,"narrative":"x"}`},
			{name: "missing field", raw: `{"appreciation_rate":8,"risk_score":30,"narrative":"x"}`},
			{name: "unknown field", raw: `{"appreciation_rate":8,"rental_yield":3,"risk_score":30,"narrative":"x","extra":1}`},
			{name: "out of range", raw: `{"appreciation_rate":8,"rental_yield":-2,"risk_score":30,"narrative":"x"}`},
			{name: "trailing data", raw: `{"appreciation_rate":8,"rental_yield":3,"risk_score":30,"narrative":"x"} {}`},
			{name: "not json", raw: `I think this is a good buy`},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newFixture(t)
				o := f.orchestrator(fixtureOptions{})

				f.store.EXPECT().GetProperty(mock.Anything, int64(5)).Return(testProperty(5), nil).Times(2)
				f.llm.EXPECT().Complete(mock.Anything, mock.Anything).Return(json.RawMessage(tt.raw), nil).Times(2)

				for range 2 {
					_, info, err := o.Analyze(ctx, 5)
					require.ErrorIs(t, err, domain.ErrAnalysis)
					require.Equal(t, domain.CacheMiss, info.Status)
				}
			})
		}
	})

	t.Run("should report unknown properties as not found", func(t *testing.T) {
		f := newFixture(t)
		o := f.orchestrator(fixtureOptions{})

		f.store.EXPECT().GetProperty(mock.Anything, int64(404)).Return(nil, domain.ErrNotFound).Once()

		_, _, err := o.Analyze(ctx, 404)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("should reject non-positive ids", func(t *testing.T) {
		f := newFixture(t)
		o := f.orchestrator(fixtureOptions{})

		_, _, err := o.Analyze(ctx, 0)
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("should surface an LLM timeout as upstream", func(t *testing.T) {
		f := newFixture(t)
		o := f.orchestrator(fixtureOptions{timeouts: domain.TimeoutConfig{LLM: 20 * time.Millisecond}})

		f.store.EXPECT().GetProperty(mock.Anything, int64(9)).Return(testProperty(9), nil).Once()
		f.llm.EXPECT().Complete(mock.Anything, mock.Anything).
			RunAndReturn(func(ctx context.Context, _ domain.StructuredPrompt) (json.RawMessage, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			}).Once()

		_, _, err := o.Analyze(ctx, 9)
		require.ErrorIs(t, err, domain.ErrUpstream)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("should return the context error to an abandoning caller", func(t *testing.T) {
		f := newFixture(t)
		o := f.orchestrator(fixtureOptions{})

		release := make(chan struct{})
		f.store.EXPECT().GetProperty(mock.Anything, int64(2)).Return(testProperty(2), nil).Once()
		f.llm.EXPECT().Complete(mock.Anything, mock.Anything).
			RunAndReturn(func(context.Context, domain.StructuredPrompt) (json.RawMessage, error) {
				<-release
				return json.RawMessage(validEstimate), nil
			}).Once()
		f.store.EXPECT().SaveAnalysis(mock.Anything, mock.Anything).Return(nil).Once()

		callerCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()

		_, _, err := o.Analyze(callerCtx, 2)
		require.ErrorIs(t, err, context.DeadlineExceeded)

		close(release)
		require.Eventually(t, func() bool {
			_, info, analyzeErr := o.Analyze(ctx, 2)
			return analyzeErr == nil && info.Status == domain.CacheHit
		}, time.Second, 10*time.Millisecond)
	})
}

func TestOrchestrator_Trends(t *testing.T) {
	ctx := context.Background()

	signals := &domain.HistoricalSignals{
		City:           "pune",
		Timeframe:      domain.Timeframe1Year,
		ListingCount:   42,
		AveragePrice:   7200000,
		PriceChangePct: 4.2,
	}

	t.Run("should build a report and cache it under normalized inputs", func(t *testing.T) {
		f := newFixture(t)
		o := f.orchestrator(fixtureOptions{})

		f.store.EXPECT().GetHistoricalSignals(mock.Anything, "pune", domain.Timeframe1Year).Return(signals, nil).Once()
		f.llm.EXPECT().Complete(mock.Anything, mock.MatchedBy(func(p domain.StructuredPrompt) bool {
			return p.Name == "market_trend"
		})).Return(json.RawMessage(validTrend), nil).Once()

		report, info, err := o.Trends(ctx, "Pune", "1year")
		require.NoError(t, err)
		require.Equal(t, domain.CacheMiss, info.Status)
		require.Equal(t, "pune", report.City)
		require.Equal(t, domain.Timeframe1Year, report.Timeframe)
		require.Equal(t, domain.TrendRising, report.Direction)
		require.Equal(t, domain.DemandHigh, report.DemandLevel)
		require.InDelta(t, 7.5, report.GrowthPrediction, 1e-9)
		require.Equal(t, []string{"Hinjewadi", "Baner"}, report.HotAreas)
		require.Equal(t, *signals, report.Signals)

		again, info, err := o.Trends(ctx, "  PUNE ", "12 months")
		require.NoError(t, err)
		require.Equal(t, domain.CacheHit, info.Status)
		require.Equal(t, report, again)
	})

	t.Run("should reject unsupported timeframes and empty cities", func(t *testing.T) {
		f := newFixture(t)
		o := f.orchestrator(fixtureOptions{})

		_, _, err := o.Trends(ctx, "Pune", "decade")
		require.ErrorIs(t, err, domain.ErrValidation)

		_, _, err = o.Trends(ctx, " ", "1year")
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("should reject values outside the declared enums", func(t *testing.T) {
		f := newFixture(t)
		o := f.orchestrator(fixtureOptions{})

		f.store.EXPECT().GetHistoricalSignals(mock.Anything, "pune", domain.Timeframe6Months).Return(signals, nil).Once()
		f.llm.EXPECT().Complete(mock.Anything, mock.Anything).Return(json.RawMessage(
			`{"direction":"skyrocketing","demand_level":"high","growth_prediction":7.5,"hot_areas":[],"narrative":"x"}`,
		), nil).Once()

		_, _, err := o.Trends(ctx, "pune", "6m")
		require.ErrorIs(t, err, domain.ErrAnalysis)
	})

	t.Run("should wrap signal failures as upstream", func(t *testing.T) {
		f := newFixture(t)
		o := f.orchestrator(fixtureOptions{})

		f.store.EXPECT().GetHistoricalSignals(mock.Anything, "pune", domain.Timeframe3Years).
			Return(nil, errors.New("database is locked")).Once()

		_, _, err := o.Trends(ctx, "pune", "3y")
		require.ErrorIs(t, err, domain.ErrUpstream)
	})
}

func TestOrchestrator_IndexProperty(t *testing.T) {
	ctx := context.Background()

	t.Run("should index the property and invalidate cached searches", func(t *testing.T) {
		f := newFixture(t)
		o := f.orchestrator(fixtureOptions{})

		property := testProperty(7)
		f.embedder.EXPECT().Generate(mock.Anything, "lakeside").Return([]float64{0, 1}, nil).Times(2)
		f.embedder.EXPECT().Generate(mock.Anything, domain.ListingText(property)).Return([]float64{0, 1}, nil).Once()
		f.store.EXPECT().RecordSearch(mock.Anything, mock.Anything).Return(nil).Maybe()
		f.store.EXPECT().GetProperty(mock.Anything, int64(7)).Return(property, nil).Once()
		f.store.EXPECT().SetEmbeddingID(mock.Anything, int64(7), "memory:7").Return(nil).Once()

		before, _, err := o.Search(ctx, domain.SearchRequest{Query: "lakeside"})
		require.NoError(t, err)
		require.Empty(t, before.Items)

		embeddingID, err := o.IndexProperty(ctx, 7)
		require.NoError(t, err)
		require.Equal(t, "memory:7", embeddingID)

		after, info, err := o.Search(ctx, domain.SearchRequest{Query: "lakeside"})
		require.NoError(t, err)
		require.Equal(t, domain.CacheMiss, info.Status)
		require.Len(t, after.Items, 1)
		require.Equal(t, int64(7), after.Items[0].Property.ID)
	})

	t.Run("should report missing properties as not found", func(t *testing.T) {
		f := newFixture(t)
		o := f.orchestrator(fixtureOptions{})

		f.store.EXPECT().GetProperty(mock.Anything, int64(8)).Return(nil, domain.ErrNotFound).Once()

		_, err := o.IndexProperty(ctx, 8)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestOrchestrator_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("should dispatch on the request kind", func(t *testing.T) {
		f := newFixture(t)
		o := f.orchestrator(fixtureOptions{})

		f.store.EXPECT().GetProperty(mock.Anything, int64(1)).Return(testProperty(1), nil).Once()
		f.llm.EXPECT().Complete(mock.Anything, mock.Anything).Return(json.RawMessage(validEstimate), nil).Once()
		f.store.EXPECT().SaveAnalysis(mock.Anything, mock.Anything).Return(nil).Once()

		resp, err := o.Execute(ctx, domain.Request{
			Kind:       domain.KindInvestment,
			Investment: &domain.InvestmentRequest{PropertyID: 1},
		})
		require.NoError(t, err)
		require.Equal(t, domain.KindInvestment, resp.Kind)
		require.NotNil(t, resp.Investment)
		require.Nil(t, resp.Search)
		require.Equal(t, domain.AnalysisKey(1), resp.Cache.Key)
	})

	t.Run("should reject unknown kinds and missing payloads", func(t *testing.T) {
		f := newFixture(t)
		o := f.orchestrator(fixtureOptions{})

		_, err := o.Execute(ctx, domain.Request{Kind: "valuation"})
		require.ErrorIs(t, err, domain.ErrValidation)

		_, err = o.Execute(ctx, domain.Request{Kind: domain.KindSearch})
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("should publish the terminal state of failed requests", func(t *testing.T) {
		f := newFixture(t)
		events := mocks.NewMockEventPublisher(t)
		o := f.orchestrator(fixtureOptions{events: events})

		events.EXPECT().Publish(mock.Anything, observability.EventRequestCompleted, mock.MatchedBy(func(data map[string]interface{}) bool {
			return data["state"] == string(domain.StateErrorReturned) &&
				data["error_kind"] == string(domain.ErrorKindValidation) &&
				data["kind"] == string(domain.KindTrend)
		})).Return().Once()

		_, err := o.Execute(ctx, domain.Request{Kind: domain.KindTrend, Trend: &domain.TrendRequest{City: ""}})
		require.ErrorIs(t, err, domain.ErrValidation)
	})
}
