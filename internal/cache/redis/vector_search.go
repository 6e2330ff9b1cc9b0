package redis

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davidbz/propwise/internal/domain"
	"github.com/davidbz/propwise/internal/observability"
)

const (
	redisDialectVersion = 2
)

// VectorSearch implements domain.SimilarityEngine with RediSearch KNN queries.
// Metadata filters run server-side as a hybrid query.
type VectorSearch struct {
	client             *redis.Client
	indexName          string
	documentPrefix     string
	embeddingDimension int
}

// NewVectorSearch creates a new Redis vector search adapter and ensures its index exists.
func NewVectorSearch(ctx context.Context, client *redis.Client, cfg Config, embeddingDimension int) (*VectorSearch, error) {
	v := &VectorSearch{
		client:             client,
		indexName:          cfg.IndexName,
		documentPrefix:     cfg.DocumentPrefix,
		embeddingDimension: embeddingDimension,
	}

	if err := v.createIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return v, nil
}

// floatsToBytes converts float64 slice to binary byte representation.
func floatsToBytes(fs []float64) []byte {
	const bytesPerFloat32 = 4
	buf := make([]byte, len(fs)*bytesPerFloat32)

	for i, f := range fs {
		// Convert float64 to float32 for Redis compatibility
		f32 := float32(f)
		u := math.Float32bits(f32)
		binary.LittleEndian.PutUint32(buf[i*bytesPerFloat32:], u)
	}

	return buf
}

// NativeFilters reports that predicates are applied by Redis.
func (v *VectorSearch) NativeFilters() bool {
	return true
}

// Search returns the k nearest properties satisfying pred, closest first.
func (v *VectorSearch) Search(
	ctx context.Context,
	embed []float64,
	k int,
	pred domain.Predicate,
) ([]domain.Neighbor, error) {
	if len(embed) != v.embeddingDimension {
		return nil, fmt.Errorf("embedding has %d dimensions, index expects %d", len(embed), v.embeddingDimension)
	}

	query := buildQuery(pred, k)

	logger := observability.FromContext(ctx)
	logger.Debug("starting vector search",
		observability.String("index", v.indexName),
		observability.String("query", query),
		observability.Int("k", k))

	results, err := v.client.FTSearchWithArgs(ctx, v.indexName, query,
		&redis.FTSearchOptions{
			Return: []redis.FTSearchReturn{
				{FieldName: "data"},
				{FieldName: "score"},
			},
			SortBy:         []redis.FTSearchSortBy{{FieldName: "score", Asc: true}},
			LimitOffset:    0,
			Limit:          k,
			DialectVersion: redisDialectVersion,
			Params: map[string]any{
				"vec": floatsToBytes(embed),
			},
		},
	).Result()
	if err != nil {
		logger.Error("vector search failed",
			observability.Error(err))
		return nil, fmt.Errorf("search failed: %w", err)
	}

	logger.Debug("vector search completed",
		observability.Int("total_docs", results.Total),
		observability.Int("docs_returned", len(results.Docs)))

	return v.parseSearchResults(ctx, results), nil
}

// Upsert stores the property hash under its document key and returns that key.
func (v *VectorSearch) Upsert(ctx context.Context, record *domain.PropertyRecord, embedding []float64) (string, error) {
	if record == nil {
		return "", errors.New("record cannot be nil")
	}
	if len(embedding) != v.embeddingDimension {
		return "", fmt.Errorf("embedding has %d dimensions, index expects %d", len(embedding), v.embeddingDimension)
	}

	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to encode record: %w", err)
	}

	key := v.documentPrefix + strconv.FormatInt(record.ID, 10)

	logger := observability.FromContext(ctx)
	logger.Debug("indexing property",
		observability.String("key", key),
		observability.Int("embedding_dim", len(embedding)))

	if err = v.client.HSet(ctx, key,
		"embedding", floatsToBytes(embedding),
		"data", string(data),
		"city", domain.NormalizeCity(record.City),
		"property_type", domain.NormalizeText(record.PropertyType),
		"price", record.Price,
		"area", record.AreaSqft,
		"bedrooms", record.Bedrooms,
		"indexed_at", time.Now().Unix(),
	).Err(); err != nil {
		logger.Error("property index failed",
			observability.Error(err))
		return "", fmt.Errorf("failed to index: %w", err)
	}

	return key, nil
}

// createIndex creates the Redis search index if it doesn't exist.
func (v *VectorSearch) createIndex(ctx context.Context) error {
	logger := observability.FromContext(ctx)

	if _, err := v.client.FTInfo(ctx, v.indexName).Result(); err == nil {
		logger.Info("redis search index already exists, skipping creation",
			observability.String("index_name", v.indexName))
		return nil
	}

	logger.Info("creating redis search index",
		observability.String("index_name", v.indexName),
		observability.Int("embedding_dimension", v.embeddingDimension))

	_, err := v.client.FTCreate(ctx, v.indexName,
		&redis.FTCreateOptions{
			OnHash: true,
			Prefix: []any{v.documentPrefix},
		},
		&redis.FieldSchema{
			FieldName: "embedding",
			FieldType: redis.SearchFieldTypeVector,
			VectorArgs: &redis.FTVectorArgs{
				FlatOptions: &redis.FTFlatOptions{
					Type:           "FLOAT32",
					Dim:            v.embeddingDimension,
					DistanceMetric: "COSINE",
				},
			},
		},
		&redis.FieldSchema{FieldName: "data", FieldType: redis.SearchFieldTypeText, NoIndex: true},
		&redis.FieldSchema{FieldName: "city", FieldType: redis.SearchFieldTypeTag},
		&redis.FieldSchema{FieldName: "property_type", FieldType: redis.SearchFieldTypeTag},
		&redis.FieldSchema{FieldName: "price", FieldType: redis.SearchFieldTypeNumeric},
		&redis.FieldSchema{FieldName: "area", FieldType: redis.SearchFieldTypeNumeric},
		&redis.FieldSchema{FieldName: "bedrooms", FieldType: redis.SearchFieldTypeNumeric},
		&redis.FieldSchema{FieldName: "indexed_at", FieldType: redis.SearchFieldTypeNumeric, Sortable: true},
	).Result()
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	logger.Info("successfully created redis search index",
		observability.String("index_name", v.indexName))

	return nil
}

// buildQuery renders pred as a RediSearch pre-filter for a KNN query.
func buildQuery(pred domain.Predicate, k int) string {
	var terms []string

	if pred.City != "" {
		terms = append(terms, fmt.Sprintf("@city:{%s}", escapeTag(pred.City)))
	}
	if len(pred.PropertyTypes) > 0 {
		escaped := make([]string, len(pred.PropertyTypes))
		for i, t := range pred.PropertyTypes {
			escaped[i] = escapeTag(t)
		}
		terms = append(terms, fmt.Sprintf("@property_type:{%s}", strings.Join(escaped, " | ")))
	}
	if !pred.Price.IsZero() {
		terms = append(terms, numericTerm("price", pred.Price))
	}
	if !pred.Area.IsZero() {
		terms = append(terms, numericTerm("area", pred.Area))
	}
	if !pred.Bedrooms.IsZero() {
		terms = append(terms, numericTerm("bedrooms", pred.Bedrooms))
	}

	filter := "*"
	if len(terms) > 0 {
		filter = "(" + strings.Join(terms, " ") + ")"
	}

	return fmt.Sprintf("%s=>[KNN %d @embedding $vec AS score]", filter, k)
}

func numericTerm(field string, r domain.Range) string {
	lower, upper := "-inf", "+inf"
	if r.Min != nil {
		lower = strconv.FormatFloat(*r.Min, 'f', -1, 64)
	}
	if r.Max != nil {
		upper = strconv.FormatFloat(*r.Max, 'f', -1, 64)
	}
	return fmt.Sprintf("@%s:[%s %s]", field, lower, upper)
}

// escapeTag escapes TAG query syntax: punctuation and whitespace need a backslash.
func escapeTag(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if !isTagSafe(r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func isTagSafe(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r > 127
}

// parseSearchResults parses Redis FTSearchResult into domain neighbours.
func (v *VectorSearch) parseSearchResults(ctx context.Context, result redis.FTSearchResult) []domain.Neighbor {
	neighbors := make([]domain.Neighbor, 0, len(result.Docs))

	for _, doc := range result.Docs {
		if n, ok := v.parseSearchResult(ctx, doc); ok {
			neighbors = append(neighbors, n)
		}
	}

	return neighbors
}

// parseSearchResult parses a single Document into a domain neighbour.
func (v *VectorSearch) parseSearchResult(ctx context.Context, doc redis.Document) (domain.Neighbor, bool) {
	logger := observability.FromContext(ctx)

	// The KNN distance is returned as the "score" field, not doc.Score.
	scoreStr, scoreOk := doc.Fields["score"]
	if !scoreOk {
		return domain.Neighbor{}, false
	}

	distance, err := strconv.ParseFloat(scoreStr, 64)
	if err != nil {
		return domain.Neighbor{}, false
	}

	dataStr, dataOk := doc.Fields["data"]
	if !dataOk {
		logger.Warn("data field not found in search result",
			observability.String("key", doc.ID))
		return domain.Neighbor{}, false
	}

	var record domain.PropertyRecord
	if err = json.Unmarshal([]byte(dataStr), &record); err != nil {
		logger.Warn("undecodable property in search result",
			observability.String("key", doc.ID),
			observability.Error(err))
		return domain.Neighbor{}, false
	}

	return domain.Neighbor{Property: record, Distance: distance}, true
}
