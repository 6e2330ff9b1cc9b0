package domain

import "time"

// RequestKind tags the variant carried by a Request.
type RequestKind string

const (
	KindSearch     RequestKind = "search"
	KindInvestment RequestKind = "investment"
	KindTrend      RequestKind = "trend"
)

// PropertyRecord is a listing owned by the persistence collaborator.
type PropertyRecord struct {
	ID              int64     `json:"id"`
	BuildingName    string    `json:"building_name"`
	PropertyType    string    `json:"property_type"`
	Address         string    `json:"address"`
	City            string    `json:"city"`
	Locality        string    `json:"locality,omitempty"`
	Price           float64   `json:"price"`
	AreaSqft        float64   `json:"area_sqft,omitempty"`
	Bedrooms        int       `json:"bedrooms,omitempty"`
	Description     string    `json:"description,omitempty"`
	SourceURL       string    `json:"source_url,omitempty"`
	EmbeddingID     string    `json:"embedding_id,omitempty"`
	InvestmentScore *float64  `json:"investment_score,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SearchFilters are the user-facing metadata filters of a search request.
type SearchFilters struct {
	City          string   `json:"city,omitempty"`
	PropertyTypes []string `json:"property_types,omitempty"`
	MinPrice      *float64 `json:"min_price,omitempty"`
	MaxPrice      *float64 `json:"max_price,omitempty"`
	MinArea       *float64 `json:"min_area,omitempty"`
	MaxArea       *float64 `json:"max_area,omitempty"`
	MinBedrooms   *int     `json:"min_bedrooms,omitempty"`
	MaxBedrooms   *int     `json:"max_bedrooms,omitempty"`
}

// SearchRequest asks for properties matching a natural-language query.
type SearchRequest struct {
	Query   string        `json:"query"`
	Filters SearchFilters `json:"filters"`
	Limit   int           `json:"limit,omitempty"`
}

// SearchHit is a ranked search result entry.
type SearchHit struct {
	Property PropertyRecord `json:"property"`
	Distance float64        `json:"distance"`
	Rank     int            `json:"rank"`
}

// SearchResult is the ranked outcome of a search.
type SearchResult struct {
	Query string      `json:"query"`
	Limit int         `json:"limit"`
	Items []SearchHit `json:"items"`
}

// Recommendation is the discrete investment policy outcome.
type Recommendation string

const (
	RecommendBuy   Recommendation = "buy"
	RecommendHold  Recommendation = "hold"
	RecommendAvoid Recommendation = "avoid"
)

// InvestmentAnalysis is the combined scoring and narrative for one property.
type InvestmentAnalysis struct {
	PropertyID       int64          `json:"property_id"`
	ROI5Year         float64        `json:"roi_5yr"`
	ROI10Year        float64        `json:"roi_10yr"`
	AppreciationRate float64        `json:"appreciation_rate"`
	RentalYield      float64        `json:"rental_yield"`
	RiskScore        float64        `json:"risk_score"`
	InvestmentScore  float64        `json:"investment_score"`
	Recommendation   Recommendation `json:"recommendation"`
	Narrative        string         `json:"narrative"`
}

// TrendDirection is the price direction of a market.
type TrendDirection string

const (
	TrendRising    TrendDirection = "rising"
	TrendStable    TrendDirection = "stable"
	TrendDeclining TrendDirection = "declining"
)

// DemandLevel is the demand classification of a market.
type DemandLevel string

const (
	DemandHigh   DemandLevel = "high"
	DemandMedium DemandLevel = "medium"
	DemandLow    DemandLevel = "low"
)

// TrendReport describes the market of a city over a timeframe.
type TrendReport struct {
	City             string            `json:"city"`
	Timeframe        string            `json:"timeframe"`
	Direction        TrendDirection    `json:"direction"`
	DemandLevel      DemandLevel       `json:"demand_level"`
	GrowthPrediction float64           `json:"growth_prediction"`
	HotAreas         []string          `json:"hot_areas"`
	Narrative        string            `json:"narrative"`
	Signals          HistoricalSignals `json:"signals"`
}

// HistoricalSignals is the aggregate the persistence store supplies for trend inference.
type HistoricalSignals struct {
	City             string  `json:"city"`
	Timeframe        string  `json:"timeframe"`
	ListingCount     int     `json:"listing_count"`
	AveragePrice     float64 `json:"average_price"`
	MinPrice         float64 `json:"min_price"`
	MaxPrice         float64 `json:"max_price"`
	PriceChangePct   float64 `json:"price_change_pct"`
	AverageRiskScore float64 `json:"average_risk_score"`
	SearchVolume     int     `json:"search_volume"`
}

// SearchHistoryEntry records a served search.
type SearchHistoryEntry struct {
	Query         string    `json:"query"`
	City          string    `json:"city"`
	PropertyTypes []string  `json:"property_types"`
	MaxPrice      *float64  `json:"max_price,omitempty"`
	ResultsCount  int       `json:"results_count"`
	SearchedAt    time.Time `json:"searched_at"`
}

// CacheStatus reports how a response was served.
type CacheStatus string

const (
	CacheHit  CacheStatus = "hit"
	CacheMiss CacheStatus = "miss"
)

// CacheInfo describes the cache outcome of a request.
type CacheInfo struct {
	Status   CacheStatus
	Key      string
	StoredAt time.Time
	Shared   bool
}

// Request is a tagged variant; exactly the payload matching Kind is set.
type Request struct {
	Kind       RequestKind
	Search     *SearchRequest
	Investment *InvestmentRequest
	Trend      *TrendRequest
}

// InvestmentRequest asks for the analysis of one property.
type InvestmentRequest struct {
	PropertyID int64 `json:"property_id"`
}

// TrendRequest asks for a city market report.
type TrendRequest struct {
	City      string `json:"city"`
	Timeframe string `json:"timeframe"`
}

// Response carries the payload matching the request kind.
type Response struct {
	Kind       RequestKind
	Cache      CacheInfo
	Search     *SearchResult
	Investment *InvestmentAnalysis
	Trend      *TrendReport
}
