package advisor

import (
	"context"
	"fmt"
	"os"
	"testing"

	"stock-news-advisor/internal/logger"
	"stock-news-advisor/internal/store"
	"stock-news-advisor/internal/types"
)

func TestMain(m *testing.M) {
	logger.InitWithConfig(logger.LogConfig{Level: "ERROR", Format: "text", TracingEnabled: false})
	os.Exit(m.Run())
}

type fakePrices struct {
	series map[string][]types.PricePoint
}

func (f *fakePrices) PriceHistory(_ context.Context, symbol string, _ int) ([]types.PricePoint, error) {
	pts, ok := f.series[symbol]
	if !ok {
		return nil, fmt.Errorf("no data for %s", symbol)
	}
	return pts, nil
}

func (f *fakePrices) LastPrice(_ context.Context, symbol string) (float64, error) {
	pts, ok := f.series[symbol]
	if !ok || len(pts) == 0 {
		return 0, fmt.Errorf("no data for %s", symbol)
	}
	return pts[len(pts)-1].Close, nil
}

type fakeNews struct {
	signals map[string][]types.NewsSignal
	err     error
}

func (f *fakeNews) Signals(_ context.Context, symbol string) ([]types.NewsSignal, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.signals[symbol], nil
}

func testConfig(t *testing.T) *store.Config {
	t.Helper()
	cfg := &store.Config{}
	cfg.DataSource = "STATIC"
	cfg.HoldingsCSV = "holdings.csv"
	cfg.LookbackDays = 90
	cfg.Analysis.ScoreThreshold = 4
	cfg.Analysis.SentimentBand = 0.3
	cfg.Analysis.ShortMAWindow = 20
	cfg.Analysis.LongMAWindow = 50
	return cfg
}

func TestAnalyzeSymbol(t *testing.T) {
	prices := &fakePrices{series: map[string][]types.PricePoint{
		"RELIANCE": flatPrices(2500, 60),
	}}
	news := &fakeNews{signals: map[string][]types.NewsSignal{
		"RELIANCE": {{Label: types.SentimentPositive, Score: 0.5, HasScore: true}},
	}}
	a := NewAnalyzer(prices, news, testConfig(t))

	holding := &types.Holding{Symbol: "RELIANCE", Quantity: 10, AvgPrice: 2000}
	res, err := a.AnalyzeSymbol(context.Background(), "RELIANCE", holding)
	if err != nil {
		t.Fatalf("AnalyzeSymbol: %v", err)
	}
	if res.CurrentPrice != 2500 {
		t.Errorf("CurrentPrice = %v, want 2500", res.CurrentPrice)
	}
	if res.UnrealizedGainPct != 25 {
		t.Errorf("UnrealizedGainPct = %v, want 25", res.UnrealizedGainPct)
	}
	if res.Technical.Trend != types.TrendSideways {
		t.Errorf("Trend = %s, want SIDEWAYS", res.Technical.Trend)
	}
	if res.Sentiment.Score != 0.5 {
		t.Errorf("sentiment = %v, want 0.5", res.Sentiment.Score)
	}
	// positive_sentiment (2 buy) vs profit_taking (1 sell): HOLD.
	if res.Recommendation.Action != types.ActionHold {
		t.Errorf("Action = %s, want HOLD", res.Recommendation.Action)
	}
}

func TestAnalyzeSymbolInsufficientHistory(t *testing.T) {
	prices := &fakePrices{series: map[string][]types.PricePoint{
		"NEWIPO": flatPrices(300, 5),
	}}
	a := NewAnalyzer(prices, &fakeNews{}, testConfig(t))

	_, err := a.AnalyzeSymbol(context.Background(), "NEWIPO", nil)
	if err == nil {
		t.Fatal("expected error for 5-point history")
	}
}

func TestAnalyzeSymbolNewsFailureDegradesToNeutral(t *testing.T) {
	prices := &fakePrices{series: map[string][]types.PricePoint{
		"TCS": flatPrices(3500, 60),
	}}
	news := &fakeNews{err: fmt.Errorf("all feeds unreachable")}
	a := NewAnalyzer(prices, news, testConfig(t))

	res, err := a.AnalyzeSymbol(context.Background(), "TCS", nil)
	if err != nil {
		t.Fatalf("AnalyzeSymbol: %v", err)
	}
	if res.Sentiment.Total() != 0 || res.Sentiment.Score != 0 {
		t.Errorf("sentiment = %+v, want neutral", res.Sentiment)
	}
}

func TestAnalyzePortfolio(t *testing.T) {
	prices := &fakePrices{series: map[string][]types.PricePoint{
		"RELIANCE": flatPrices(2500, 60),
		"TCS":      flatPrices(3500, 60),
		// SUSPENDED has no price data and must surface as a failure.
	}}
	news := &fakeNews{signals: map[string][]types.NewsSignal{}}
	a := NewAnalyzer(prices, news, testConfig(t))

	holdings := []types.Holding{
		{Symbol: "RELIANCE", Quantity: 10, AvgPrice: 2000},
		{Symbol: "SUSPENDED", Quantity: 5, AvgPrice: 100},
		{Symbol: "TCS", Quantity: 2, AvgPrice: 3600},
	}
	pa, err := a.AnalyzePortfolio(context.Background(), holdings)
	if err != nil {
		t.Fatalf("AnalyzePortfolio: %v", err)
	}
	if pa.Summary.Analyzed != 2 {
		t.Errorf("Analyzed = %d, want 2", pa.Summary.Analyzed)
	}
	if pa.Summary.Unavailable != 1 {
		t.Errorf("Unavailable = %d, want 1", pa.Summary.Unavailable)
	}
	if len(pa.Failures) != 1 || pa.Failures[0].Symbol != "SUSPENDED" {
		t.Errorf("Failures = %+v, want SUSPENDED", pa.Failures)
	}
	// Holding order is preserved for the analyzable symbols.
	if pa.Results[0].Symbol != "RELIANCE" || pa.Results[1].Symbol != "TCS" {
		t.Errorf("result order = %s, %s", pa.Results[0].Symbol, pa.Results[1].Symbol)
	}
	if pa.Summary.HoldCount != 2 {
		t.Errorf("HoldCount = %d, want 2", pa.Summary.HoldCount)
	}
}

func TestAnalyzePortfolioEmpty(t *testing.T) {
	a := NewAnalyzer(&fakePrices{}, &fakeNews{}, testConfig(t))
	pa, err := a.AnalyzePortfolio(context.Background(), nil)
	if err != nil {
		t.Fatalf("AnalyzePortfolio: %v", err)
	}
	if pa.Summary.Analyzed != 0 || pa.Summary.Unavailable != 0 {
		t.Errorf("summary = %+v, want empty", pa.Summary)
	}
}
