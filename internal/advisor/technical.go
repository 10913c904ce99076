package advisor

import (
	"math"

	"stock-news-advisor/internal/ta"
	"stock-news-advisor/internal/types"
)

// TechnicalConfig carries the window sizes for indicator computation.
// Zero values are replaced with the conventional 20/50-day setup.
type TechnicalConfig struct {
	ShortMAWindow     int
	LongMAWindow      int
	ShortMomentumDays int
	LongMomentumDays  int
	RangeWindow       int
}

func (c TechnicalConfig) withDefaults() TechnicalConfig {
	if c.ShortMAWindow == 0 {
		c.ShortMAWindow = 20
	}
	if c.LongMAWindow == 0 {
		c.LongMAWindow = 50
	}
	if c.ShortMomentumDays == 0 {
		c.ShortMomentumDays = 5
	}
	if c.LongMomentumDays == 0 {
		c.LongMomentumDays = 20
	}
	if c.RangeWindow == 0 {
		c.RangeWindow = 20
	}
	return c
}

// ComputeTechnical derives trend, moving averages, support/resistance and
// momentum from an ascending daily close sequence.
//
// Minimum length policy: fewer points than the short MA window is an
// InsufficientDataError. Between the short and long windows the long MA is
// left at zero and the trend falls back to current price vs short MA. With
// the long window available the trend compares both MAs and the current
// price.
func ComputeTechnical(points []types.PricePoint, cfg TechnicalConfig) (*types.TechnicalSnapshot, error) {
	cfg = cfg.withDefaults()

	if len(points) < cfg.ShortMAWindow {
		return nil, &InsufficientDataError{Got: len(points), Need: cfg.ShortMAWindow}
	}

	closes := make([]float64, len(points))
	for i, p := range points {
		closes[i] = p.Close
	}
	current := closes[len(closes)-1]

	snap := &types.TechnicalSnapshot{
		CurrentPrice: current,
		MA20:         ta.SMA(closes, cfg.ShortMAWindow),
	}

	if len(closes) >= cfg.LongMAWindow {
		snap.MA50 = ta.SMA(closes, cfg.LongMAWindow)
	}

	rangeWindow := cfg.RangeWindow
	if len(closes) < rangeWindow {
		rangeWindow = len(closes)
	}
	snap.Support, snap.Resistance = ta.MinMax(closes, rangeWindow)
	snap.Volatility = zeroIfNaN(ta.StdDev(closes, rangeWindow))

	snap.Momentum5d = zeroIfNaN(ta.Momentum(closes, cfg.ShortMomentumDays))
	snap.Momentum20d = zeroIfNaN(ta.Momentum(closes, cfg.LongMomentumDays))

	snap.Trend = classifyTrend(current, snap.MA20, snap.MA50)
	return snap, nil
}

func classifyTrend(current, shortMA, longMA float64) types.Trend {
	if longMA == 0 {
		// Long window unavailable: fall back to price vs short MA.
		switch {
		case current > shortMA:
			return types.TrendUp
		case current < shortMA:
			return types.TrendDown
		default:
			return types.TrendSideways
		}
	}
	switch {
	case shortMA > longMA && current > shortMA:
		return types.TrendUp
	case shortMA < longMA && current < shortMA:
		return types.TrendDown
	default:
		return types.TrendSideways
	}
}

func zeroIfNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
