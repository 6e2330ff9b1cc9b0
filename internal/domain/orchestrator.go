package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/davidbz/propwise/internal/observability"
)

// RequestState is a step of the per-request state machine.
type RequestState string

const (
	StateReceived      RequestState = "RECEIVED"
	StateKeyDerived    RequestState = "KEY_DERIVED"
	StateCacheChecked  RequestState = "CACHE_CHECKED"
	StateHit           RequestState = "HIT"
	StateMiss          RequestState = "MISS"
	StateComputing     RequestState = "COMPUTING"
	StateStored        RequestState = "STORED"
	StateFailed        RequestState = "FAILED"
	StateReturned      RequestState = "RETURNED"
	StateErrorReturned RequestState = "ERROR_RETURNED"
)

// Orchestrator routes tagged requests to their agent through the cache store.
// It is the only caller of CacheStore.GetOrCompute and never retries a failed compute.
type Orchestrator struct {
	cache    *CacheStore
	ttl      CacheTTLConfig
	search   *SearchAgent
	invest   *InvestmentAgent
	trends   *MarketTrendAgent
	store    PropertyStore
	events   EventPublisher
	clock    Clock
	timeouts TimeoutConfig
}

// OrchestratorDeps groups the orchestrator collaborators.
type OrchestratorDeps struct {
	Cache      *CacheStore
	TTL        CacheTTLConfig
	Search     *SearchAgent
	Investment *InvestmentAgent
	Trends     *MarketTrendAgent
	Store      PropertyStore
	Events     EventPublisher
	Clock      Clock
	Timeouts   TimeoutConfig
}

// NewOrchestrator creates an orchestrator.
func NewOrchestrator(deps OrchestratorDeps) *Orchestrator {
	clock := deps.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	return &Orchestrator{
		cache:    deps.Cache,
		ttl:      deps.TTL,
		search:   deps.Search,
		invest:   deps.Investment,
		trends:   deps.Trends,
		store:    deps.Store,
		events:   deps.Events,
		clock:    clock,
		timeouts: deps.Timeouts,
	}
}

// Execute dispatches req on its kind. Errors are always *Error.
func (o *Orchestrator) Execute(ctx context.Context, req Request) (*Response, error) {
	switch req.Kind {
	case KindSearch:
		result, info, err := o.runSearch(ctx, req.Search)
		if err != nil {
			return nil, err
		}
		return &Response{Kind: KindSearch, Cache: info, Search: result}, nil
	case KindInvestment:
		analysis, info, err := o.runAnalysis(ctx, req.Investment)
		if err != nil {
			return nil, err
		}
		return &Response{Kind: KindInvestment, Cache: info, Investment: analysis}, nil
	case KindTrend:
		report, info, err := o.runTrends(ctx, req.Trend)
		if err != nil {
			return nil, err
		}
		return &Response{Kind: KindTrend, Cache: info, Trend: report}, nil
	default:
		return nil, ValidationError("execute", "unknown request kind %q", req.Kind)
	}
}

// Search runs a property search.
func (o *Orchestrator) Search(ctx context.Context, req SearchRequest) (*SearchResult, CacheInfo, error) {
	return o.runSearch(ctx, &req)
}

// Analyze runs an investment analysis of one property.
func (o *Orchestrator) Analyze(ctx context.Context, propertyID int64) (*InvestmentAnalysis, CacheInfo, error) {
	return o.runAnalysis(ctx, &InvestmentRequest{PropertyID: propertyID})
}

// Trends runs a market trend report.
func (o *Orchestrator) Trends(ctx context.Context, city, timeframe string) (*TrendReport, CacheInfo, error) {
	return o.runTrends(ctx, &TrendRequest{City: city, Timeframe: timeframe})
}

// IndexProperty embeds a stored property, upserts it into the vector index,
// writes back its embedding id and drops cached searches.
func (o *Orchestrator) IndexProperty(ctx context.Context, propertyID int64) (string, error) {
	logger := observability.FromContext(ctx)

	if propertyID <= 0 {
		return "", ValidationError("index property", "property id must be positive, got %d", propertyID)
	}

	property, err := loadProperty(ctx, o.store, o.timeouts.Persistence, propertyID)
	if err != nil {
		return "", err
	}

	embeddingID, err := o.search.indexProperty(ctx, property)
	if err != nil {
		return "", classify("index property", err)
	}

	storeCtx, cancel := withTimeout(ctx, o.timeouts.Persistence)
	defer cancel()
	if err = o.store.SetEmbeddingID(storeCtx, propertyID, embeddingID); err != nil {
		return "", UpstreamError("set embedding id", err)
	}

	removed := o.cache.Invalidate(ctx, SearchKeyPrefix())

	logger.Info("property indexed",
		observability.Int64("property_id", propertyID),
		observability.String("embedding_id", embeddingID),
		observability.Int("invalidated_searches", removed))

	return embeddingID, nil
}

func (o *Orchestrator) runSearch(ctx context.Context, req *SearchRequest) (*SearchResult, CacheInfo, error) {
	ctx, tracker := o.begin(ctx, KindSearch)

	prepared, err := o.search.prepare(req)
	if err != nil {
		return nil, CacheInfo{}, tracker.fail(ctx, "", err)
	}

	result, info, err := orchestrate(ctx, o, tracker, prepared.key(), func(ctx context.Context) (*SearchResult, error) {
		return o.search.compute(ctx, prepared)
	})
	if err != nil {
		return nil, info, err
	}

	o.recordSearch(ctx, prepared, len(result.Items))

	return result, info, nil
}

func (o *Orchestrator) runAnalysis(ctx context.Context, req *InvestmentRequest) (*InvestmentAnalysis, CacheInfo, error) {
	ctx, tracker := o.begin(ctx, KindInvestment)

	propertyID, err := o.invest.prepare(req)
	if err != nil {
		return nil, CacheInfo{}, tracker.fail(ctx, "", err)
	}

	return orchestrate(ctx, o, tracker, AnalysisKey(propertyID), func(ctx context.Context) (*InvestmentAnalysis, error) {
		return o.invest.compute(ctx, propertyID)
	})
}

func (o *Orchestrator) runTrends(ctx context.Context, req *TrendRequest) (*TrendReport, CacheInfo, error) {
	ctx, tracker := o.begin(ctx, KindTrend)

	prepared, err := o.trends.prepare(req)
	if err != nil {
		return nil, CacheInfo{}, tracker.fail(ctx, "", err)
	}

	return orchestrate(ctx, o, tracker, TrendKey(prepared.city, prepared.timeframe), func(ctx context.Context) (*TrendReport, error) {
		return o.trends.compute(ctx, prepared)
	})
}

// orchestrate drives one keyed request through the cache store.
func orchestrate[T any](
	ctx context.Context,
	o *Orchestrator,
	tracker *requestTracker,
	key string,
	compute func(ctx context.Context) (*T, error),
) (*T, CacheInfo, error) {
	ctx = observability.WithCacheKey(ctx, key)
	tracker.transition(ctx, StateKeyDerived)

	var computed atomic.Bool
	raw, info, err := o.cache.GetOrCompute(ctx, key, tracker.kind, o.ttl.For(tracker.kind), func(ctx context.Context) ([]byte, error) {
		computed.Store(true)
		tracker.transition(ctx, StateCacheChecked)
		tracker.transition(ctx, StateMiss)
		tracker.transition(ctx, StateComputing)

		value, computeErr := compute(ctx)
		if computeErr != nil {
			tracker.transition(ctx, StateFailed)
			return nil, classify(string(tracker.kind), computeErr)
		}

		encoded, encodeErr := json.Marshal(value)
		if encodeErr != nil {
			tracker.transition(ctx, StateFailed)
			return nil, UpstreamError(string(tracker.kind), fmt.Errorf("failed to encode result: %w", encodeErr))
		}

		tracker.transition(ctx, StateStored)
		return encoded, nil
	})
	if err != nil {
		return nil, info, tracker.fail(ctx, key, err)
	}

	if !computed.Load() {
		// Served by the cache or by another caller's compute.
		tracker.transition(ctx, StateCacheChecked)
		if info.Status == CacheHit {
			tracker.transition(ctx, StateHit)
		} else {
			tracker.transition(ctx, StateMiss)
		}
	}

	var value T
	if err = json.Unmarshal(raw, &value); err != nil {
		return nil, info, tracker.fail(ctx, key, UpstreamError(string(tracker.kind), fmt.Errorf("failed to decode cached value: %w", err)))
	}

	tracker.succeed(ctx, info)
	return &value, info, nil
}

func (o *Orchestrator) recordSearch(ctx context.Context, p preparedSearch, resultsCount int) {
	if o.store == nil {
		return
	}

	storeCtx, cancel := withTimeout(ctx, o.timeouts.Persistence)
	defer cancel()

	entry := &SearchHistoryEntry{
		Query:         p.query,
		City:          p.predicate.City,
		PropertyTypes: p.predicate.PropertyTypes,
		MaxPrice:      p.filters.MaxPrice,
		ResultsCount:  resultsCount,
		SearchedAt:    o.clock.Now(),
	}
	if err := o.store.RecordSearch(storeCtx, entry); err != nil {
		observability.FromContext(ctx).Warn("failed to record search", observability.Error(err))
	}
}

type requestTracker struct {
	o       *Orchestrator
	kind    RequestKind
	started time.Time
}

func (o *Orchestrator) begin(ctx context.Context, kind RequestKind) (context.Context, *requestTracker) {
	if observability.GetRequestID(ctx) == "" {
		ctx = observability.WithRequestID(ctx, observability.GenerateRequestID())
	}
	ctx = observability.WithRequestKind(ctx, string(kind))

	t := &requestTracker{o: o, kind: kind, started: o.clock.Now()}
	t.transition(ctx, StateReceived)
	return ctx, t
}

func (t *requestTracker) transition(ctx context.Context, state RequestState) {
	observability.FromContext(ctx).Debug("request state",
		observability.String("state", string(state)))
}

func (t *requestTracker) succeed(ctx context.Context, info CacheInfo) {
	t.transition(ctx, StateReturned)
	t.publish(ctx, StateReturned, info.Status, "")
}

// fail classifies err, logs the ERROR_RETURNED transition and returns the typed error.
func (t *requestTracker) fail(ctx context.Context, key string, err error) error {
	typed := classify(string(t.kind), err)
	kind := KindOf(typed)

	observability.FromContext(ctx).Error("request failed",
		observability.String("state", string(StateErrorReturned)),
		observability.String("key", key),
		observability.String("error_kind", string(kind)),
		observability.Error(typed))

	t.publish(ctx, StateErrorReturned, CacheMiss, kind)
	return typed
}

func (t *requestTracker) publish(ctx context.Context, state RequestState, cache CacheStatus, errKind ErrorKind) {
	if t.o.events == nil {
		return
	}
	t.o.events.Publish(ctx, observability.EventRequestCompleted, map[string]interface{}{
		"kind":       string(t.kind),
		"state":      string(state),
		"cache":      string(cache),
		"error_kind": string(errKind),
		"duration":   t.o.clock.Now().Sub(t.started),
	})
}
