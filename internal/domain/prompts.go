package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

const investmentSystemPrompt = `You are an experienced real estate investment analyst in India.
Estimate the investment characteristics of the property you are given.
Answer with a single JSON object matching the provided schema and nothing else.`

const trendSystemPrompt = `You are a real estate market analyst specializing in Indian property markets.
Infer the market trend for the city and timeframe you are given from the historical signals.
Answer with a single JSON object matching the provided schema and nothing else.`

//nolint:gochecknoglobals // immutable JSON schemas sent to the LLM
var (
	investmentSchema = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"appreciation_rate": map[string]any{"type": "number", "description": "expected annual appreciation, percent"},
			"rental_yield":      map[string]any{"type": "number", "description": "expected gross rental yield, percent"},
			"risk_score":        map[string]any{"type": "number", "description": "risk from 0 (lowest) to 100"},
			"narrative":         map[string]any{"type": "string", "description": "3-4 sentence investment analysis"},
		},
		"required":             []string{"appreciation_rate", "rental_yield", "risk_score", "narrative"},
		"additionalProperties": false,
	}

	trendSchema = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"direction":         map[string]any{"type": "string", "enum": []string{"rising", "stable", "declining"}},
			"demand_level":      map[string]any{"type": "string", "enum": []string{"high", "medium", "low"}},
			"growth_prediction": map[string]any{"type": "number", "description": "expected growth over the timeframe, percent"},
			"hot_areas":         map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"narrative":         map[string]any{"type": "string", "description": "4-5 sentence market analysis"},
		},
		"required":             []string{"direction", "demand_level", "growth_prediction", "hot_areas", "narrative"},
		"additionalProperties": false,
	}
)

func investmentPrompt(p *PropertyRecord) StructuredPrompt {
	var b strings.Builder
	fmt.Fprintf(&b, "Property details:\n")
	fmt.Fprintf(&b, "- Name: %s\n", orNA(p.BuildingName))
	fmt.Fprintf(&b, "- Type: %s\n", orNA(p.PropertyType))
	fmt.Fprintf(&b, "- Address: %s\n", orNA(p.Address))
	fmt.Fprintf(&b, "- City: %s\n", orNA(p.City))
	fmt.Fprintf(&b, "- Locality: %s\n", orNA(p.Locality))
	fmt.Fprintf(&b, "- Price (INR): %.0f\n", p.Price)
	if p.AreaSqft > 0 {
		fmt.Fprintf(&b, "- Area (sqft): %.0f\n", p.AreaSqft)
	}
	if p.Bedrooms > 0 {
		fmt.Fprintf(&b, "- Bedrooms: %d\n", p.Bedrooms)
	}
	fmt.Fprintf(&b, "- Description: %s\n\n", orNA(p.Description))
	b.WriteString("Consider location desirability and infrastructure, historical price trends, " +
		"rental demand, upcoming developments and price per square foot against the market average.")

	return StructuredPrompt{
		Name:   "investment_estimate",
		System: investmentSystemPrompt,
		User:   b.String(),
		Schema: investmentSchema,
	}
}

func trendPrompt(city, timeframe string, s *HistoricalSignals) StructuredPrompt {
	var b strings.Builder
	fmt.Fprintf(&b, "City: %s\nTimeframe: %s\n\nHistorical signals:\n", city, timeframe)
	fmt.Fprintf(&b, "- Listings observed: %d\n", s.ListingCount)
	fmt.Fprintf(&b, "- Average price (INR): %.0f\n", s.AveragePrice)
	fmt.Fprintf(&b, "- Price range (INR): %.0f - %.0f\n", s.MinPrice, s.MaxPrice)
	fmt.Fprintf(&b, "- Price change across the window: %.2f%%\n", s.PriceChangePct)
	fmt.Fprintf(&b, "- Average analysed risk score: %.1f\n", s.AverageRiskScore)
	fmt.Fprintf(&b, "- Searches in the window: %d\n\n", s.SearchVolume)
	b.WriteString("Consider supply and demand, infrastructure projects, job markets, " +
		"regulation and upcoming developments.")

	return StructuredPrompt{
		Name:   "market_trend",
		System: trendSystemPrompt,
		User:   b.String(),
		Schema: trendSchema,
	}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

type investmentEstimate struct {
	AppreciationRate *float64 `json:"appreciation_rate"`
	RentalYield      *float64 `json:"rental_yield"`
	RiskScore        *float64 `json:"risk_score"`
	Narrative        *string  `json:"narrative"`
}

type trendEstimate struct {
	Direction        *string   `json:"direction"`
	DemandLevel      *string   `json:"demand_level"`
	GrowthPrediction *float64  `json:"growth_prediction"`
	HotAreas         *[]string `json:"hot_areas"`
	Narrative        *string   `json:"narrative"`
}

// decodeStrict decodes exactly one JSON object into dst, rejecting unknown fields.
func decodeStrict(raw []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("response does not match schema: %w", err)
	}
	if dec.More() {
		return errors.New("response contains trailing data")
	}
	return nil
}

func parseInvestmentEstimate(raw []byte) (MarketAssumptions, string, error) {
	var est investmentEstimate
	if err := decodeStrict(raw, &est); err != nil {
		return MarketAssumptions{}, "", err
	}

	switch {
	case est.AppreciationRate == nil:
		return MarketAssumptions{}, "", errors.New("missing appreciation_rate")
	case est.RentalYield == nil:
		return MarketAssumptions{}, "", errors.New("missing rental_yield")
	case est.RiskScore == nil:
		return MarketAssumptions{}, "", errors.New("missing risk_score")
	case est.Narrative == nil || strings.TrimSpace(*est.Narrative) == "":
		return MarketAssumptions{}, "", errors.New("missing narrative")
	}

	if *est.AppreciationRate <= -100 || *est.AppreciationRate > 100 {
		return MarketAssumptions{}, "", fmt.Errorf("appreciation_rate %v out of range", *est.AppreciationRate)
	}
	if *est.RentalYield < 0 || *est.RentalYield > 100 {
		return MarketAssumptions{}, "", fmt.Errorf("rental_yield %v out of range", *est.RentalYield)
	}
	if !isFinite(*est.RiskScore) {
		return MarketAssumptions{}, "", errors.New("risk_score is not finite")
	}

	return MarketAssumptions{
		AppreciationRate: *est.AppreciationRate,
		RentalYield:      *est.RentalYield,
		RiskEstimate:     *est.RiskScore,
	}, strings.TrimSpace(*est.Narrative), nil
}

func parseTrendEstimate(raw []byte) (*TrendReport, error) {
	var est trendEstimate
	if err := decodeStrict(raw, &est); err != nil {
		return nil, err
	}

	switch {
	case est.Direction == nil:
		return nil, errors.New("missing direction")
	case est.DemandLevel == nil:
		return nil, errors.New("missing demand_level")
	case est.GrowthPrediction == nil:
		return nil, errors.New("missing growth_prediction")
	case est.HotAreas == nil:
		return nil, errors.New("missing hot_areas")
	case est.Narrative == nil || strings.TrimSpace(*est.Narrative) == "":
		return nil, errors.New("missing narrative")
	}

	direction := TrendDirection(*est.Direction)
	switch direction {
	case TrendRising, TrendStable, TrendDeclining:
	default:
		return nil, fmt.Errorf("invalid direction %q", *est.Direction)
	}

	demand := DemandLevel(*est.DemandLevel)
	switch demand {
	case DemandHigh, DemandMedium, DemandLow:
	default:
		return nil, fmt.Errorf("invalid demand_level %q", *est.DemandLevel)
	}

	if !isFinite(*est.GrowthPrediction) {
		return nil, errors.New("growth_prediction is not finite")
	}

	hotAreas := make([]string, 0, len(*est.HotAreas))
	for _, a := range *est.HotAreas {
		if a = strings.TrimSpace(a); a != "" {
			hotAreas = append(hotAreas, a)
		}
	}

	return &TrendReport{
		Direction:        direction,
		DemandLevel:      demand,
		GrowthPrediction: *est.GrowthPrediction,
		HotAreas:         hotAreas,
		Narrative:        strings.TrimSpace(*est.Narrative),
	}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
