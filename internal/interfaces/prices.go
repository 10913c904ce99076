package interfaces

import (
	"context"

	"stock-news-advisor/internal/types"
)

type PriceProvider interface {
	// PriceHistory returns daily closes for the trailing number of days,
	// ascending by date.
	PriceHistory(ctx context.Context, symbol string, days int) ([]types.PricePoint, error)
	LastPrice(ctx context.Context, symbol string) (float64, error)
}
