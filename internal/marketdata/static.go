package marketdata

import (
	"context"
	"hash/fnv"
	"math/rand"
	"time"

	"stock-news-advisor/internal/interfaces"
	"stock-news-advisor/internal/types"
)

// Static generates synthetic price series for offline runs and tests. The
// series is seeded from the symbol name, so repeated calls for the same
// symbol and day count return identical data.
type Static struct{}

var _ interfaces.PriceProvider = (*Static)(nil)

func NewStatic() *Static {
	return &Static{}
}

func seedFor(symbol string) int64 {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	return int64(h.Sum64())
}

func (s *Static) series(symbol string, days int) []types.PricePoint {
	seed := seedFor(symbol)
	rng := rand.New(rand.NewSource(seed))
	offset := seed % 3000
	if offset < 0 {
		offset += 3000
	}
	base := 200 + float64(offset)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]types.PricePoint, days)
	price := base
	for i := 0; i < days; i++ {
		price = price * (1 + (rng.Float64()-0.5)*0.02)
		points[i] = types.PricePoint{
			Date:  start.AddDate(0, 0, i),
			Close: price,
		}
	}
	return points
}

func (s *Static) PriceHistory(_ context.Context, symbol string, days int) ([]types.PricePoint, error) {
	if days <= 0 {
		days = 90
	}
	return s.series(symbol, days), nil
}

func (s *Static) LastPrice(_ context.Context, symbol string) (float64, error) {
	points := s.series(symbol, 90)
	return points[len(points)-1].Close, nil
}
