package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// KeyPrefix namespaces every cache key; bump the version when payload shapes change.
const KeyPrefix = "propwise:v1:"

// Canonical trend timeframes.
const (
	Timeframe6Months = "6months"
	Timeframe1Year   = "1year"
	Timeframe3Years  = "3years"
)

//nolint:gochecknoglobals // read-only lookup table
var timeframeAliases = map[string]string{
	"6months":  Timeframe6Months,
	"6month":   Timeframe6Months,
	"6m":       Timeframe6Months,
	"6mo":      Timeframe6Months,
	"halfyear": Timeframe6Months,
	"1year":    Timeframe1Year,
	"1yr":      Timeframe1Year,
	"1y":       Timeframe1Year,
	"12months": Timeframe1Year,
	"12m":      Timeframe1Year,
	"year":     Timeframe1Year,
	"3years":   Timeframe3Years,
	"3yrs":     Timeframe3Years,
	"3y":       Timeframe3Years,
	"36months": Timeframe3Years,
	"36m":      Timeframe3Years,
}

// NormalizeText lowercases, trims and collapses internal whitespace.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// NormalizeQuery normalizes free-text queries: NormalizeText plus stripping
// punctuation at word edges, so "Flats in Pune!" and "flats  in pune" match.
func NormalizeQuery(s string) string {
	words := strings.Fields(strings.ToLower(s))
	out := words[:0]
	for _, w := range words {
		w = strings.TrimFunc(w, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if w != "" {
			out = append(out, w)
		}
	}
	return strings.Join(out, " ")
}

// NormalizeCity case-folds and collapses whitespace in a city name.
func NormalizeCity(city string) string {
	return NormalizeText(city)
}

// NormalizeTimeframe maps a timeframe or one of its aliases to its canonical form.
func NormalizeTimeframe(timeframe string) (string, error) {
	compact := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(timeframe)), " ", "")
	if compact == "" {
		return Timeframe1Year, nil
	}
	canonical, ok := timeframeAliases[compact]
	if !ok {
		return "", ValidationError("normalize timeframe", "unsupported timeframe %q", timeframe)
	}
	return canonical, nil
}

// NormalizePropertyTypes lowercases, dedupes and sorts property types.
func NormalizePropertyTypes(types []string) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		if n := NormalizeText(t); n != "" {
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// searchKeyFields is the canonical tuple hashed into a search key. JSON
// encoding keeps field boundaries unambiguous whatever the query contains.
type searchKeyFields struct {
	Query    string   `json:"q"`
	City     string   `json:"city"`
	Types    []string `json:"types"`
	Price    string   `json:"price"`
	Area     string   `json:"area"`
	Bedrooms string   `json:"bedrooms"`
	Limit    int      `json:"limit"`
}

// SearchKey derives the cache key of a normalized search.
func SearchKey(query string, pred Predicate, limit int) string {
	types := pred.PropertyTypes
	if types == nil {
		types = []string{}
	}

	// Marshalling strings, a string slice and an int cannot fail.
	canonical, _ := json.Marshal(searchKeyFields{
		Query:    query,
		City:     pred.City,
		Types:    types,
		Price:    pred.Price.canonical(),
		Area:     pred.Area.canonical(),
		Bedrooms: pred.Bedrooms.canonical(),
		Limit:    limit,
	})

	sum := sha256.Sum256(canonical)
	return SearchKeyPrefix() + hex.EncodeToString(sum[:])
}

// SearchKeyPrefix is the prefix shared by every search key.
func SearchKeyPrefix() string {
	return KeyPrefix + string(KindSearch) + ":"
}

// AnalysisKey derives the cache key of a property analysis.
func AnalysisKey(propertyID int64) string {
	return fmt.Sprintf("%s%s:%d", KeyPrefix, KindInvestment, propertyID)
}

// TrendKey derives the cache key of a trend report from normalized inputs.
func TrendKey(city, timeframe string) string {
	return fmt.Sprintf("%s%s:%s:%s", KeyPrefix, KindTrend, timeframe, city)
}

func formatBound(v *float64) string {
	if v == nil {
		return "*"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
