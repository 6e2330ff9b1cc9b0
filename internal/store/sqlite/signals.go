package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/davidbz/propwise/internal/domain"
)

const day = 24 * time.Hour

// window returns the lookback of a canonical timeframe.
func window(timeframe string) (time.Duration, error) {
	switch timeframe {
	case domain.Timeframe6Months:
		return 183 * day, nil
	case domain.Timeframe1Year:
		return 365 * day, nil
	case domain.Timeframe3Years:
		return 3 * 365 * day, nil
	}
	return 0, fmt.Errorf("unsupported timeframe %q", timeframe)
}

// GetHistoricalSignals aggregates the listings, analyses and searches of a city
// over the timeframe ending now. PriceChangePct compares the average price of
// the later half of the window to the earlier half.
func (s *Store) GetHistoricalSignals(ctx context.Context, city, timeframe string) (*domain.HistoricalSignals, error) {
	lookback, err := window(timeframe)
	if err != nil {
		return nil, err
	}

	cityKey := domain.NormalizeCity(city)
	now := s.clock.Now()
	since := now.Add(-lookback).Unix()
	midpoint := now.Add(-lookback / 2).Unix()

	signals := &domain.HistoricalSignals{City: cityKey, Timeframe: timeframe}

	var avg, lo, hi sql.NullFloat64
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), AVG(price), MIN(price), MAX(price)
		 FROM properties WHERE city_key = ? AND created_at >= ?`,
		cityKey, since,
	).Scan(&signals.ListingCount, &avg, &lo, &hi)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate listings: %w", err)
	}
	signals.AveragePrice = avg.Float64
	signals.MinPrice = lo.Float64
	signals.MaxPrice = hi.Float64

	var early, late sql.NullFloat64
	err = s.db.QueryRowContext(ctx,
		`SELECT
			AVG(CASE WHEN created_at < ? THEN price END),
			AVG(CASE WHEN created_at >= ? THEN price END)
		 FROM properties WHERE city_key = ? AND created_at >= ?`,
		midpoint, midpoint, cityKey, since,
	).Scan(&early, &late)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate price change: %w", err)
	}
	if early.Valid && late.Valid && early.Float64 > 0 {
		signals.PriceChangePct = (late.Float64 - early.Float64) / early.Float64 * 100
	}

	var risk sql.NullFloat64
	err = s.db.QueryRowContext(ctx,
		`SELECT AVG(a.risk_score)
		 FROM investment_analyses a JOIN properties p ON p.id = a.property_id
		 WHERE p.city_key = ? AND a.created_at >= ?`,
		cityKey, since,
	).Scan(&risk)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate risk: %w", err)
	}
	signals.AverageRiskScore = risk.Float64

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM search_history WHERE city_key = ? AND searched_at >= ?`,
		cityKey, since,
	).Scan(&signals.SearchVolume)
	if err != nil {
		return nil, fmt.Errorf("failed to count searches: %w", err)
	}

	return signals, nil
}
