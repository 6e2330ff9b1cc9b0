package domain

import (
	"context"
	"encoding/json"
	"time"
)

// EmbeddingGenerator creates vector embeddings from text.
type EmbeddingGenerator interface {
	// Generate creates a vector embedding from text.
	Generate(ctx context.Context, text string) ([]float64, error)

	// Name returns the generator identifier.
	Name() string

	// Dimension returns the vector dimension.
	Dimension() int
}

// StructuredPrompt is an LLM request whose answer must match Schema.
type StructuredPrompt struct {
	// Name identifies the schema (letters, digits, underscores).
	Name   string
	System string
	User   string
	// Schema is a JSON Schema object describing the expected response.
	Schema map[string]any
}

// LLMProvider completes structured prompts.
type LLMProvider interface {
	// Complete returns the raw JSON document produced for the prompt.
	Complete(ctx context.Context, prompt StructuredPrompt) (json.RawMessage, error)

	// Name returns the provider identifier.
	Name() string
}

// PropertyStore is the persistence collaborator.
type PropertyStore interface {
	// GetProperty returns the record or an error matching ErrNotFound.
	GetProperty(ctx context.Context, id int64) (*PropertyRecord, error)

	// GetHistoricalSignals aggregates listings and searches for a city over a timeframe.
	GetHistoricalSignals(ctx context.Context, city, timeframe string) (*HistoricalSignals, error)

	// SaveAnalysis persists an analysis and writes back the property's investment score.
	SaveAnalysis(ctx context.Context, analysis *InvestmentAnalysis) error

	// SetEmbeddingID writes back the embedding id of an indexed property.
	SetEmbeddingID(ctx context.Context, id int64, embeddingID string) error

	// RecordSearch stores a served search.
	RecordSearch(ctx context.Context, entry *SearchHistoryEntry) error

	// UpsertProperty inserts a listing (ID zero) or replaces it, returning its id.
	UpsertProperty(ctx context.Context, record *PropertyRecord) (int64, error)

	// ListProperties pages through listings ordered by id, starting after afterID.
	ListProperties(ctx context.Context, afterID int64, limit int) ([]PropertyRecord, error)
}

// CacheBackend is one tier of the cache store.
type CacheBackend interface {
	// Get returns the stored bytes or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key for ttl, overwriting any prior value.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key.
	Delete(ctx context.Context, key string) error

	// DeletePrefix removes every key starting with prefix and returns how many were removed.
	DeletePrefix(ctx context.Context, prefix string) (int, error)

	// Ping reports whether the tier is reachable.
	Ping(ctx context.Context) error

	// Name returns the tier identifier.
	Name() string
}

// SimilarityEngine is the nearest-neighbour engine wrapped by VectorIndex.
type SimilarityEngine interface {
	// Search returns up to k neighbours of a normalized embedding, closest first.
	// Engines reporting NativeFilters apply pred server-side; others may ignore it.
	Search(ctx context.Context, embedding []float64, k int, pred Predicate) ([]Neighbor, error)

	// Upsert indexes a property under its normalized embedding and returns the embedding id.
	Upsert(ctx context.Context, record *PropertyRecord, embedding []float64) (string, error)

	// NativeFilters reports whether Search honours pred itself.
	NativeFilters() bool
}

// EventPublisher publishes events for observability.
type EventPublisher interface {
	// Publish publishes an event with the given type and data.
	Publish(ctx context.Context, eventType string, data map[string]interface{})
}

// Clock abstracts time for TTL evaluation.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }
