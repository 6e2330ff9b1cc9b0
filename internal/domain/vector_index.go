package domain

import (
	"cmp"
	"context"
	"errors"
	"math"
	"slices"
)

// Range is an inclusive numeric range; a nil bound is open.
type Range struct {
	Min *float64
	Max *float64
}

// IsZero reports whether both bounds are open.
func (r Range) IsZero() bool {
	return r.Min == nil && r.Max == nil
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

func (r Range) canonical() string {
	return formatBound(r.Min) + ".." + formatBound(r.Max)
}

func (r Range) validate(field string) error {
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		return ValidationError("build predicate", "%s range is inverted: min %v > max %v", field, *r.Min, *r.Max)
	}
	if (r.Min != nil && *r.Min < 0) || (r.Max != nil && *r.Max < 0) {
		return ValidationError("build predicate", "%s bounds must not be negative", field)
	}
	return nil
}

// Predicate is a conjunction of metadata constraints. City and PropertyTypes
// hold normalized values.
type Predicate struct {
	City          string
	PropertyTypes []string
	Price         Range
	Area          Range
	Bedrooms      Range
}

// IsEmpty reports whether the predicate accepts everything.
func (p Predicate) IsEmpty() bool {
	return p.City == "" && len(p.PropertyTypes) == 0 &&
		p.Price.IsZero() && p.Area.IsZero() && p.Bedrooms.IsZero()
}

// Matches reports whether rec satisfies every term of the predicate.
func (p Predicate) Matches(rec *PropertyRecord) bool {
	if rec == nil {
		return false
	}
	if p.City != "" && NormalizeCity(rec.City) != p.City {
		return false
	}
	if len(p.PropertyTypes) > 0 && !slices.Contains(p.PropertyTypes, NormalizeText(rec.PropertyType)) {
		return false
	}
	if !p.Price.Contains(rec.Price) {
		return false
	}
	if !p.Area.IsZero() && !p.Area.Contains(rec.AreaSqft) {
		return false
	}
	if !p.Bedrooms.IsZero() && !p.Bedrooms.Contains(float64(rec.Bedrooms)) {
		return false
	}
	return true
}

// NewPredicate normalizes and validates user filters.
func NewPredicate(f SearchFilters) (Predicate, error) {
	pred := Predicate{
		City:          NormalizeCity(f.City),
		PropertyTypes: NormalizePropertyTypes(f.PropertyTypes),
		Price:         Range{Min: copyFloat(f.MinPrice), Max: copyFloat(f.MaxPrice)},
		Area:          Range{Min: copyFloat(f.MinArea), Max: copyFloat(f.MaxArea)},
		Bedrooms:      Range{Min: intToFloat(f.MinBedrooms), Max: intToFloat(f.MaxBedrooms)},
	}

	if err := pred.Price.validate("price"); err != nil {
		return Predicate{}, err
	}
	if err := pred.Area.validate("area"); err != nil {
		return Predicate{}, err
	}
	if err := pred.Bedrooms.validate("bedrooms"); err != nil {
		return Predicate{}, err
	}

	return pred, nil
}

// Neighbor is an engine match before ranking.
type Neighbor struct {
	Property PropertyRecord
	Distance float64
}

// VectorIndexConfig bounds nearest-neighbour queries.
type VectorIndexConfig struct {
	MaxK            int `env:"SEARCH_MAX_LIMIT"        envDefault:"100"`
	OverfetchFactor int `env:"VECTOR_OVERFETCH_FACTOR" envDefault:"5"`
}

// VectorIndex guarantees bounded, predicate-exact, ordered results over any SimilarityEngine.
type VectorIndex struct {
	engine    SimilarityEngine
	maxK      int
	overfetch int
}

// NewVectorIndex wraps engine.
func NewVectorIndex(engine SimilarityEngine, cfg VectorIndexConfig) *VectorIndex {
	maxK := cfg.MaxK
	if maxK <= 0 {
		maxK = 100
	}
	overfetch := cfg.OverfetchFactor
	if overfetch < 1 {
		overfetch = 1
	}
	return &VectorIndex{
		engine:    engine,
		maxK:      maxK,
		overfetch: overfetch,
	}
}

// MaxK returns the largest accepted k.
func (v *VectorIndex) MaxK() int {
	return v.maxK
}

// Query returns at most k properties satisfying pred, ordered by ascending cosine
// distance with ties broken by ascending property id.
//
// Engines without native filtering are queried for k*overfetch candidates and
// post-filtered. The fetch doubles until k matches survive or the engine has no
// more candidates, so filtering never loses a match.
func (v *VectorIndex) Query(ctx context.Context, embedding []float64, k int, pred Predicate) ([]SearchHit, error) {
	if k < 1 || k > v.maxK {
		return nil, ValidationError("vector query", "k must be between 1 and %d, got %d", v.maxK, k)
	}

	normalized, err := NormalizeVector(embedding)
	if err != nil {
		return nil, ValidationError("vector query", "%v", err)
	}

	if v.engine.NativeFilters() || pred.IsEmpty() {
		neighbors, searchErr := v.engine.Search(ctx, normalized, k, pred)
		if searchErr != nil {
			return nil, UpstreamError("vector query", searchErr)
		}
		return Rank(neighbors, pred, k), nil
	}

	fetch := k * v.overfetch
	for {
		neighbors, searchErr := v.engine.Search(ctx, normalized, fetch, pred)
		if searchErr != nil {
			return nil, UpstreamError("vector query", searchErr)
		}

		hits := Rank(neighbors, pred, k)
		if len(hits) >= k || len(neighbors) < fetch {
			return hits, nil
		}
		fetch *= 2
	}
}

// Upsert indexes a property and returns its embedding id.
func (v *VectorIndex) Upsert(ctx context.Context, record *PropertyRecord, embedding []float64) (string, error) {
	normalized, err := NormalizeVector(embedding)
	if err != nil {
		return "", ValidationError("vector upsert", "%v", err)
	}

	id, err := v.engine.Upsert(ctx, record, normalized)
	if err != nil {
		return "", UpstreamError("vector upsert", err)
	}
	return id, nil
}

// Rank drops neighbours failing pred, orders the rest and keeps the first k.
func Rank(neighbors []Neighbor, pred Predicate, k int) []SearchHit {
	kept := make([]Neighbor, 0, len(neighbors))
	seen := make(map[int64]struct{}, len(neighbors))
	for _, n := range neighbors {
		if !pred.Matches(&n.Property) {
			continue
		}
		if _, dup := seen[n.Property.ID]; dup {
			continue
		}
		seen[n.Property.ID] = struct{}{}
		kept = append(kept, n)
	}

	slices.SortStableFunc(kept, func(a, b Neighbor) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.Property.ID, b.Property.ID)
	})

	if len(kept) > k {
		kept = kept[:k]
	}

	hits := make([]SearchHit, len(kept))
	for i, n := range kept {
		hits[i] = SearchHit{
			Property: n.Property,
			Distance: n.Distance,
			Rank:     i + 1,
		}
	}
	return hits
}

// NormalizeVector returns the L2-normalized copy of v.
func NormalizeVector(v []float64) ([]float64, error) {
	if len(v) == 0 {
		return nil, errors.New("embedding is empty")
	}

	var sum float64
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, errors.New("embedding contains non-finite values")
		}
		sum += x * x
	}
	if sum == 0 {
		return nil, errors.New("embedding has zero magnitude")
	}

	norm := math.Sqrt(sum)
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out, nil
}

// CosineDistance returns 1 - cos(a, b) for normalized vectors of equal length.
func CosineDistance(a, b []float64) float64 {
	n := min(len(a), len(b))
	var dot float64
	for i := range n {
		dot += a[i] * b[i]
	}
	return 1 - dot
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func intToFloat(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}
