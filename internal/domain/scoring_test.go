package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/propwise/internal/domain"
)

func testScoringConfig() domain.ScoringConfig {
	return domain.ScoringConfig{
		BuyROIThreshold:  80,
		BuyRiskCeiling:   40,
		HoldROIThreshold: 30,
		HoldRiskCeiling:  70,
		HoldingCostPct:   1,
	}
}

func TestScoringEngine_Score(t *testing.T) {
	engine := domain.NewScoringEngine(testScoringConfig())
	property := &domain.PropertyRecord{ID: 9, City: "Pune", Price: 8000000}

	t.Run("should clamp risk above 100", func(t *testing.T) {
		analysis := engine.Score(property, domain.MarketAssumptions{AppreciationRate: 5, RentalYield: 3, RiskEstimate: 137})
		require.InDelta(t, 100.0, analysis.RiskScore, 1e-9)
	})

	t.Run("should clamp risk below 0", func(t *testing.T) {
		analysis := engine.Score(property, domain.MarketAssumptions{AppreciationRate: 5, RentalYield: 3, RiskEstimate: -12})
		require.InDelta(t, 0.0, analysis.RiskScore, 1e-9)
	})

	t.Run("should project compounded appreciation plus net rental", func(t *testing.T) {
		analysis := engine.Score(property, domain.MarketAssumptions{AppreciationRate: 8, RentalYield: 3, RiskEstimate: 30})

		want5 := (math.Pow(1.08, 5)-1)*100 + 2*5
		want10 := (math.Pow(1.08, 10)-1)*100 + 2*10
		require.InDelta(t, want5, analysis.ROI5Year, 0.01)
		require.InDelta(t, want10, analysis.ROI10Year, 0.01)
		require.Equal(t, int64(9), analysis.PropertyID)
		require.InDelta(t, 8.0, analysis.AppreciationRate, 1e-9)
		require.InDelta(t, 3.0, analysis.RentalYield, 1e-9)
	})

	t.Run("should be deterministic", func(t *testing.T) {
		m := domain.MarketAssumptions{AppreciationRate: 6.5, RentalYield: 2.8, RiskEstimate: 44}
		require.Equal(t, engine.Score(property, m), engine.Score(property, m))
	})

	t.Run("should apply recommendation bands", func(t *testing.T) {
		tests := []struct {
			name string
			m    domain.MarketAssumptions
			want domain.Recommendation
		}{
			{
				name: "buy when roi high and risk low",
				m:    domain.MarketAssumptions{AppreciationRate: 8, RentalYield: 3, RiskEstimate: 30},
				want: domain.RecommendBuy,
			},
			{
				name: "hold when roi high but risk moderate",
				m:    domain.MarketAssumptions{AppreciationRate: 8, RentalYield: 3, RiskEstimate: 55},
				want: domain.RecommendHold,
			},
			{
				name: "hold when roi moderate",
				m:    domain.MarketAssumptions{AppreciationRate: 4, RentalYield: 2, RiskEstimate: 20},
				want: domain.RecommendHold,
			},
			{
				name: "avoid when risk high",
				m:    domain.MarketAssumptions{AppreciationRate: 10, RentalYield: 4, RiskEstimate: 90},
				want: domain.RecommendAvoid,
			},
			{
				name: "avoid when roi low",
				m:    domain.MarketAssumptions{AppreciationRate: 1, RentalYield: 1, RiskEstimate: 10},
				want: domain.RecommendAvoid,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				require.Equal(t, tt.want, engine.Score(property, tt.m).Recommendation)
			})
		}
	})

	t.Run("should follow configured thresholds", func(t *testing.T) {
		cfg := testScoringConfig()
		cfg.BuyROIThreshold = 500
		strict := domain.NewScoringEngine(cfg)

		m := domain.MarketAssumptions{AppreciationRate: 8, RentalYield: 3, RiskEstimate: 30}
		require.Equal(t, domain.RecommendHold, strict.Score(property, m).Recommendation)
	})

	t.Run("should bound investment score", func(t *testing.T) {
		best := engine.Score(property, domain.MarketAssumptions{AppreciationRate: 20, RentalYield: 8, RiskEstimate: 0})
		require.InDelta(t, 100.0, best.InvestmentScore, 1e-9)

		worst := engine.Score(property, domain.MarketAssumptions{AppreciationRate: -20, RentalYield: 0, RiskEstimate: 100})
		require.InDelta(t, 0.0, worst.InvestmentScore, 1e-9)
	})
}

func TestClampRisk(t *testing.T) {
	t.Run("should treat NaN as maximal risk", func(t *testing.T) {
		require.InDelta(t, 100.0, domain.ClampRisk(math.NaN()), 1e-9)
	})
}
