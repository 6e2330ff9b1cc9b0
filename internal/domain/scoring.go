package domain

import "math"

const (
	riskScoreMin = 0.0
	riskScoreMax = 100.0

	// Weights of the investment score written back to the property.
	investmentROIWeight  = 0.6
	investmentRiskWeight = 0.4
)

// ScoringConfig holds the recommendation policy and projection constants.
type ScoringConfig struct {
	BuyROIThreshold  float64 `env:"SCORING_BUY_ROI_THRESHOLD"  envDefault:"80"`
	BuyRiskCeiling   float64 `env:"SCORING_BUY_RISK_CEILING"   envDefault:"40"`
	HoldROIThreshold float64 `env:"SCORING_HOLD_ROI_THRESHOLD" envDefault:"30"`
	HoldRiskCeiling  float64 `env:"SCORING_HOLD_RISK_CEILING"  envDefault:"70"`
	HoldingCostPct   float64 `env:"SCORING_HOLDING_COST_PCT"   envDefault:"1"`
}

// MarketAssumptions are the per-property estimates fed into the projections.
// Rates are annual percentages; RiskEstimate is unclamped.
type MarketAssumptions struct {
	AppreciationRate float64
	RentalYield      float64
	RiskEstimate     float64
}

// ScoringEngine turns a property and market assumptions into an analysis.
// It performs no I/O and is deterministic.
type ScoringEngine struct {
	cfg ScoringConfig
}

// NewScoringEngine creates a scoring engine.
func NewScoringEngine(cfg ScoringConfig) *ScoringEngine {
	return &ScoringEngine{cfg: cfg}
}

// Score projects returns and applies the recommendation policy.
func (e *ScoringEngine) Score(property *PropertyRecord, m MarketAssumptions) *InvestmentAnalysis {
	risk := ClampRisk(m.RiskEstimate)
	roi5 := e.projectROI(m, 5)
	roi10 := e.projectROI(m, 10)

	analysis := &InvestmentAnalysis{
		ROI5Year:         round2(roi5),
		ROI10Year:        round2(roi10),
		AppreciationRate: m.AppreciationRate,
		RentalYield:      m.RentalYield,
		RiskScore:        risk,
		InvestmentScore:  round2(investmentScore(roi10, risk)),
		Recommendation:   e.recommend(roi10, risk),
	}
	if property != nil {
		analysis.PropertyID = property.ID
	}

	return analysis
}

// projectROI compounds appreciation and adds net rental income over years.
func (e *ScoringEngine) projectROI(m MarketAssumptions, years int) float64 {
	growth := math.Pow(1+m.AppreciationRate/100, float64(years)) - 1
	netRental := (m.RentalYield - e.cfg.HoldingCostPct) * float64(years)
	return growth*100 + netRental
}

func (e *ScoringEngine) recommend(roi10, risk float64) Recommendation {
	switch {
	case roi10 > e.cfg.BuyROIThreshold && risk < e.cfg.BuyRiskCeiling:
		return RecommendBuy
	case roi10 > e.cfg.HoldROIThreshold && risk < e.cfg.HoldRiskCeiling:
		return RecommendHold
	default:
		return RecommendAvoid
	}
}

// ClampRisk bounds a risk estimate to [0, 100]. NaN is treated as maximal risk.
func ClampRisk(raw float64) float64 {
	if math.IsNaN(raw) {
		return riskScoreMax
	}
	return math.Max(riskScoreMin, math.Min(riskScoreMax, raw))
}

func investmentScore(roi10, risk float64) float64 {
	roiPart := math.Max(0, math.Min(100, roi10))
	score := investmentROIWeight*roiPart + investmentRiskWeight*(riskScoreMax-risk)
	return math.Max(0, math.Min(100, score))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
