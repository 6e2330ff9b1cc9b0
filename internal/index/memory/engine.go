// Package memory provides a brute-force in-process similarity engine.
package memory

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/davidbz/propwise/internal/domain"
)

const idPrefix = "memory:"

type document struct {
	record    domain.PropertyRecord
	embedding []float64
}

// Engine scans every indexed property and applies predicates during the scan.
type Engine struct {
	mu        sync.RWMutex
	docs      map[int64]document
	dimension int
}

// NewEngine creates an empty engine. A zero dimension accepts the first
// upserted embedding's dimension.
func NewEngine(dimension int) *Engine {
	return &Engine{
		docs:      make(map[int64]document),
		dimension: dimension,
	}
}

// NativeFilters reports that predicates are applied by the engine.
func (e *Engine) NativeFilters() bool {
	return true
}

// Search returns the k nearest documents matching pred, closest first.
func (e *Engine) Search(ctx context.Context, embedding []float64, k int, pred domain.Predicate) ([]domain.Neighbor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.dimension != 0 && len(embedding) != e.dimension {
		return nil, fmt.Errorf("embedding has %d dimensions, index expects %d", len(embedding), e.dimension)
	}

	neighbors := make([]domain.Neighbor, 0, len(e.docs))
	for _, doc := range e.docs {
		if !pred.Matches(&doc.record) {
			continue
		}
		neighbors = append(neighbors, domain.Neighbor{
			Property: doc.record,
			Distance: domain.CosineDistance(embedding, doc.embedding),
		})
	}

	slices.SortFunc(neighbors, func(a, b domain.Neighbor) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.Property.ID, b.Property.ID)
	})

	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors, nil
}

// Upsert indexes record under embedding, replacing a previous version.
func (e *Engine) Upsert(ctx context.Context, record *domain.PropertyRecord, embedding []float64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if record == nil {
		return "", errors.New("record cannot be nil")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.dimension == 0 {
		e.dimension = len(embedding)
	}
	if len(embedding) != e.dimension {
		return "", fmt.Errorf("embedding has %d dimensions, index expects %d", len(embedding), e.dimension)
	}

	id := idPrefix + strconv.FormatInt(record.ID, 10)
	stored := *record
	stored.EmbeddingID = id

	e.docs[record.ID] = document{
		record:    stored,
		embedding: slices.Clone(embedding),
	}

	return id, nil
}

// Len returns the number of indexed properties.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.docs)
}
