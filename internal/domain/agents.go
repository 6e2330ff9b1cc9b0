package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/davidbz/propwise/internal/observability"
)

// TimeoutConfig bounds each collaborator call. Zero disables the bound.
type TimeoutConfig struct {
	Embedding   time.Duration `env:"TIMEOUT_EMBEDDING"   envDefault:"10s"`
	LLM         time.Duration `env:"TIMEOUT_LLM"         envDefault:"60s"`
	Vector      time.Duration `env:"TIMEOUT_VECTOR"      envDefault:"5s"`
	Persistence time.Duration `env:"TIMEOUT_PERSISTENCE" envDefault:"5s"`
}

// SearchConfig configures the search agent.
type SearchConfig struct {
	DefaultLimit int `env:"SEARCH_DEFAULT_LIMIT" envDefault:"10"`
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// preparedSearch is a validated, normalized search ready for key derivation.
type preparedSearch struct {
	query     string
	predicate Predicate
	limit     int
	filters   SearchFilters
}

func (p preparedSearch) key() string {
	return SearchKey(p.query, p.predicate, p.limit)
}

// SearchAgent answers natural-language property searches.
type SearchAgent struct {
	embedder     EmbeddingGenerator
	index        *VectorIndex
	timeouts     TimeoutConfig
	defaultLimit int
}

// NewSearchAgent creates a search agent.
func NewSearchAgent(embedder EmbeddingGenerator, index *VectorIndex, cfg SearchConfig, timeouts TimeoutConfig) *SearchAgent {
	defaultLimit := cfg.DefaultLimit
	if defaultLimit <= 0 || defaultLimit > index.MaxK() {
		defaultLimit = min(10, index.MaxK())
	}
	return &SearchAgent{
		embedder:     embedder,
		index:        index,
		timeouts:     timeouts,
		defaultLimit: defaultLimit,
	}
}

// prepare validates and normalizes req without touching any collaborator.
func (a *SearchAgent) prepare(req *SearchRequest) (preparedSearch, error) {
	if req == nil {
		return preparedSearch{}, ValidationError("search", "request cannot be nil")
	}

	query := NormalizeQuery(req.Query)
	if query == "" {
		return preparedSearch{}, ValidationError("search", "query cannot be empty")
	}

	limit := req.Limit
	switch {
	case limit == 0:
		limit = a.defaultLimit
	case limit < 0 || limit > a.index.MaxK():
		return preparedSearch{}, ValidationError("search", "limit must be between 1 and %d, got %d", a.index.MaxK(), limit)
	}

	pred, err := NewPredicate(req.Filters)
	if err != nil {
		return preparedSearch{}, err
	}

	return preparedSearch{
		query:     query,
		predicate: pred,
		limit:     limit,
		filters:   req.Filters,
	}, nil
}

// compute embeds the query and ranks the nearest matching properties.
func (a *SearchAgent) compute(ctx context.Context, p preparedSearch) (*SearchResult, error) {
	embedCtx, cancel := withTimeout(ctx, a.timeouts.Embedding)
	embedding, err := a.embedder.Generate(embedCtx, p.query)
	cancel()
	if err != nil {
		return nil, UpstreamError("embed query", err)
	}

	queryCtx, cancel := withTimeout(ctx, a.timeouts.Vector)
	defer cancel()

	hits, err := a.index.Query(queryCtx, embedding, p.limit, p.predicate)
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		Query: p.query,
		Limit: p.limit,
		Items: hits,
	}, nil
}

// index embeds a property listing and upserts it into the vector index.
func (a *SearchAgent) indexProperty(ctx context.Context, record *PropertyRecord) (string, error) {
	embedCtx, cancel := withTimeout(ctx, a.timeouts.Embedding)
	embedding, err := a.embedder.Generate(embedCtx, ListingText(record))
	cancel()
	if err != nil {
		return "", UpstreamError("embed listing", err)
	}

	upsertCtx, cancel := withTimeout(ctx, a.timeouts.Vector)
	defer cancel()

	return a.index.Upsert(upsertCtx, record, embedding)
}

// ListingText is the text embedded for a property listing.
func ListingText(p *PropertyRecord) string {
	parts := []string{p.BuildingName, p.PropertyType, p.Locality, p.City, p.Address, p.Description}
	kept := parts[:0]
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, " | ")
}

// InvestmentAgent analyzes a single property.
type InvestmentAgent struct {
	store    PropertyStore
	llm      LLMProvider
	scoring  *ScoringEngine
	timeouts TimeoutConfig
}

// NewInvestmentAgent creates an investment agent.
func NewInvestmentAgent(store PropertyStore, llm LLMProvider, scoring *ScoringEngine, timeouts TimeoutConfig) *InvestmentAgent {
	return &InvestmentAgent{
		store:    store,
		llm:      llm,
		scoring:  scoring,
		timeouts: timeouts,
	}
}

func (a *InvestmentAgent) prepare(req *InvestmentRequest) (int64, error) {
	if req == nil {
		return 0, ValidationError("analyze", "request cannot be nil")
	}
	if req.PropertyID <= 0 {
		return 0, ValidationError("analyze", "property id must be positive, got %d", req.PropertyID)
	}
	return req.PropertyID, nil
}

// compute loads the property, asks the LLM for market assumptions and scores them.
func (a *InvestmentAgent) compute(ctx context.Context, propertyID int64) (*InvestmentAnalysis, error) {
	property, err := loadProperty(ctx, a.store, a.timeouts.Persistence, propertyID)
	if err != nil {
		return nil, err
	}

	llmCtx, cancel := withTimeout(ctx, a.timeouts.LLM)
	raw, err := a.llm.Complete(llmCtx, investmentPrompt(property))
	cancel()
	if err != nil {
		return nil, UpstreamError("investment estimate", err)
	}

	assumptions, narrative, err := parseInvestmentEstimate(raw)
	if err != nil {
		return nil, AnalysisError("investment estimate", err)
	}

	analysis := a.scoring.Score(property, assumptions)
	analysis.Narrative = narrative

	saveCtx, cancel := withTimeout(ctx, a.timeouts.Persistence)
	defer cancel()
	if saveErr := a.store.SaveAnalysis(saveCtx, analysis); saveErr != nil {
		observability.FromContext(ctx).Warn("failed to persist analysis",
			observability.Int64("property_id", propertyID),
			observability.Error(saveErr))
	}

	return analysis, nil
}

// MarketTrendAgent reports city market trends.
type MarketTrendAgent struct {
	store    PropertyStore
	llm      LLMProvider
	timeouts TimeoutConfig
}

// NewMarketTrendAgent creates a market trend agent.
func NewMarketTrendAgent(store PropertyStore, llm LLMProvider, timeouts TimeoutConfig) *MarketTrendAgent {
	return &MarketTrendAgent{
		store:    store,
		llm:      llm,
		timeouts: timeouts,
	}
}

type preparedTrend struct {
	city      string
	timeframe string
}

func (a *MarketTrendAgent) prepare(req *TrendRequest) (preparedTrend, error) {
	if req == nil {
		return preparedTrend{}, ValidationError("trends", "request cannot be nil")
	}

	city := NormalizeCity(req.City)
	if city == "" {
		return preparedTrend{}, ValidationError("trends", "city cannot be empty")
	}

	timeframe, err := NormalizeTimeframe(req.Timeframe)
	if err != nil {
		return preparedTrend{}, err
	}

	return preparedTrend{city: city, timeframe: timeframe}, nil
}

// compute feeds the historical signals of a city to the LLM and maps the answer.
func (a *MarketTrendAgent) compute(ctx context.Context, p preparedTrend) (*TrendReport, error) {
	storeCtx, cancel := withTimeout(ctx, a.timeouts.Persistence)
	signals, err := a.store.GetHistoricalSignals(storeCtx, p.city, p.timeframe)
	cancel()
	if err != nil {
		return nil, UpstreamError("historical signals", err)
	}
	if signals == nil {
		signals = &HistoricalSignals{City: p.city, Timeframe: p.timeframe}
	}

	llmCtx, cancel := withTimeout(ctx, a.timeouts.LLM)
	raw, err := a.llm.Complete(llmCtx, trendPrompt(p.city, p.timeframe, signals))
	cancel()
	if err != nil {
		return nil, UpstreamError("trend estimate", err)
	}

	report, err := parseTrendEstimate(raw)
	if err != nil {
		return nil, AnalysisError("trend estimate", err)
	}

	report.City = p.city
	report.Timeframe = p.timeframe
	report.Signals = *signals

	return report, nil
}

func loadProperty(ctx context.Context, store PropertyStore, timeout time.Duration, id int64) (*PropertyRecord, error) {
	storeCtx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	property, err := store.GetProperty(storeCtx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		return nil, NotFoundError("get property", fmt.Errorf("property %d: %w", id, err))
	case err != nil:
		return nil, UpstreamError("get property", err)
	case property == nil:
		return nil, NotFoundError("get property", fmt.Errorf("property %d", id))
	}
	return property, nil
}
