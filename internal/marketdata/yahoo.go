package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"stock-news-advisor/internal/api"
	"stock-news-advisor/internal/interfaces"
	"stock-news-advisor/internal/types"
)

const yahooChartBase = "https://query1.finance.yahoo.com/v8/finance/chart"

// Yahoo serves daily closes from the Yahoo Finance chart API. NSE symbols
// are suffixed ".NS" on the wire.
type Yahoo struct {
	client *api.Client
	suffix string
}

var _ interfaces.PriceProvider = (*Yahoo)(nil)

func NewYahoo() *Yahoo {
	return &Yahoo{
		client: api.NewClient(
			api.WithTimeout(15*time.Second),
			api.WithLogging(true),
		),
		suffix: ".NS",
	}
}

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// rangeFor maps a trailing day count onto the coarse ranges the chart API
// accepts.
func rangeFor(days int) string {
	switch {
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	case days <= 180:
		return "6mo"
	default:
		return "1y"
	}
}

func (y *Yahoo) fetchChart(ctx context.Context, symbol string, days int) (*yahooChartResponse, error) {
	url := fmt.Sprintf("%s/%s%s?interval=1d&range=%s", yahooChartBase, symbol, y.suffix, rangeFor(days))

	req := api.NewRequest(http.MethodGet, url).WithContext(ctx)
	for k, v := range api.YahooFinanceHeaders() {
		req.WithHeader(k, v)
	}
	resp, err := y.client.DoWithRetry(req, nil)
	if err != nil {
		return nil, fmt.Errorf("yahoo chart for %s: %w", symbol, err)
	}

	var chart yahooChartResponse
	if err := resp.ParseJSON(&chart); err != nil {
		return nil, fmt.Errorf("yahoo chart for %s: %w", symbol, err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart for %s: %s (%s)",
			symbol, chart.Chart.Error.Description, chart.Chart.Error.Code)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo chart for %s: empty result", symbol)
	}
	return &chart, nil
}

func (y *Yahoo) PriceHistory(ctx context.Context, symbol string, days int) ([]types.PricePoint, error) {
	chart, err := y.fetchChart(ctx, symbol, days)
	if err != nil {
		return nil, err
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo chart for %s: no quote data", symbol)
	}
	closes := result.Indicators.Quote[0].Close

	points := make([]types.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			// Holidays and halted sessions come back as nulls.
			continue
		}
		points = append(points, types.PricePoint{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *closes[i],
		})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("yahoo chart for %s: no usable closes", symbol)
	}
	return points, nil
}

func (y *Yahoo) LastPrice(ctx context.Context, symbol string) (float64, error) {
	chart, err := y.fetchChart(ctx, symbol, 5)
	if err != nil {
		return 0, err
	}
	price := chart.Chart.Result[0].Meta.RegularMarketPrice
	if price == 0 {
		return 0, fmt.Errorf("yahoo chart for %s: no market price", symbol)
	}
	return price, nil
}
