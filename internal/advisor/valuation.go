package advisor

import (
	"stock-news-advisor/internal/ta"
	"stock-news-advisor/internal/types"
)

// ValuationConfig holds the deviation bands in percent. Both are expressed
// as positive magnitudes; zero values default to the 10% band.
type ValuationConfig struct {
	OvervaluedPct  float64
	UndervaluedPct float64
}

func (c ValuationConfig) withDefaults() ValuationConfig {
	if c.OvervaluedPct == 0 {
		c.OvervaluedPct = 10
	}
	if c.UndervaluedPct == 0 {
		c.UndervaluedPct = 10
	}
	return c
}

// AssessValuation compares the current price to the trailing average of the
// full close window. A deviation strictly above the overvalued band is
// OVERVALUED, strictly below the negated undervalued band is UNDERVALUED;
// a deviation exactly on either band stays FAIR_VALUE.
func AssessValuation(points []types.PricePoint, current float64, cfg ValuationConfig) (*types.ValuationAssessment, error) {
	cfg = cfg.withDefaults()

	if len(points) == 0 {
		return nil, &InsufficientDataError{Got: 0, Need: 1}
	}

	closes := make([]float64, len(points))
	for i, p := range points {
		closes[i] = p.Close
	}
	avg := ta.Mean(closes)
	if avg == 0 {
		return nil, &InsufficientDataError{Got: len(points), Need: 1}
	}

	dev := (current - avg) / avg * 100

	status := types.FairValue
	switch {
	case dev > cfg.OvervaluedPct:
		status = types.Overvalued
	case dev < -cfg.UndervaluedPct:
		status = types.Undervalued
	}

	return &types.ValuationAssessment{
		Status:       status,
		DeviationPct: dev,
		TrailingAvg:  avg,
	}, nil
}
