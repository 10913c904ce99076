package marketobs

import (
	"context"

	"stock-news-advisor/internal/interfaces"
	"stock-news-advisor/internal/logger"
	"stock-news-advisor/internal/trace"
	"stock-news-advisor/internal/types"
)

// observableProvider wraps a PriceProvider with observability (logging & tracing)
type observableProvider struct {
	provider interfaces.PriceProvider
}

// Compile-time interface check
var _ interfaces.PriceProvider = (*observableProvider)(nil)

// Wrap wraps a price provider with observability middleware
func Wrap(provider interfaces.PriceProvider) interfaces.PriceProvider {
	return &observableProvider{
		provider: provider,
	}
}

func (op *observableProvider) PriceHistory(ctx context.Context, symbol string, days int) ([]types.PricePoint, error) {
	ctx, span := trace.StartSpan(ctx, "marketdata.PriceHistory")
	defer span.End()

	// Use DebugSkip(1) to report the actual caller, not this middleware wrapper
	logger.DebugSkip(ctx, 1, "Fetching price history", "symbol", symbol, "days", days)

	points, err := op.provider.PriceHistory(ctx, symbol, days)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch price history", err,
			"symbol", symbol,
			"days", days,
		)
		return nil, err
	}

	logger.DebugSkip(ctx, 1, "Price history fetched",
		"symbol", symbol,
		"points", len(points),
	)

	return points, nil
}

func (op *observableProvider) LastPrice(ctx context.Context, symbol string) (float64, error) {
	ctx, span := trace.StartSpan(ctx, "marketdata.LastPrice")
	defer span.End()

	price, err := op.provider.LastPrice(ctx, symbol)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch last price", err, "symbol", symbol)
		return 0, err
	}

	logger.DebugSkip(ctx, 1, "Last price fetched", "symbol", symbol, "price", price)
	return price, nil
}
