package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"stock-news-advisor/internal/advisor"
	"stock-news-advisor/internal/logger"
	"stock-news-advisor/internal/types"
)

func TestMain(m *testing.M) {
	logger.InitWithConfig(logger.LogConfig{Level: "ERROR", Format: "text", TracingEnabled: false})
	os.Exit(m.Run())
}

type stubAnalyzer struct {
	results map[string]*types.AnalysisResult
	errs    map[string]error
	lastArg *types.Holding
}

func (s *stubAnalyzer) AnalyzeSymbol(_ context.Context, symbol string, holding *types.Holding) (*types.AnalysisResult, error) {
	s.lastArg = holding
	if err, ok := s.errs[symbol]; ok {
		return nil, err
	}
	res, ok := s.results[symbol]
	if !ok {
		return nil, fmt.Errorf("no data for %s", symbol)
	}
	return res, nil
}

func (s *stubAnalyzer) AnalyzePortfolio(ctx context.Context, holdings []types.Holding) (*types.PortfolioAnalysis, error) {
	var analysis types.PortfolioAnalysis
	for _, h := range holdings {
		res, err := s.AnalyzeSymbol(ctx, h.Symbol, &h)
		if err != nil {
			analysis.Failures = append(analysis.Failures, types.SymbolFailure{Symbol: h.Symbol, Reason: err.Error()})
			continue
		}
		analysis.Results = append(analysis.Results, *res)
	}
	analysis.Summary.Analyzed = len(analysis.Results)
	analysis.Summary.Unavailable = len(analysis.Failures)
	return &analysis, nil
}

func testResult(symbol string, action types.Action) *types.AnalysisResult {
	return &types.AnalysisResult{
		Symbol:       symbol,
		CurrentPrice: 100,
		Recommendation: types.Recommendation{
			Symbol:     symbol,
			Action:     action,
			Confidence: 60,
			Risk:       types.RiskMedium,
		},
	}
}

type stubPrices struct {
	prices map[string]float64
}

func (s *stubPrices) PriceHistory(_ context.Context, symbol string, _ int) ([]types.PricePoint, error) {
	return nil, fmt.Errorf("no history for %s", symbol)
}

func (s *stubPrices) LastPrice(_ context.Context, symbol string) (float64, error) {
	price, ok := s.prices[symbol]
	if !ok {
		return 0, fmt.Errorf("no quote for %s", symbol)
	}
	return price, nil
}

func testServer(analyzer *stubAnalyzer, holdings []types.Holding) *Server {
	return NewServer(analyzer, &stubPrices{prices: map[string]float64{"TCS": 3510.5}}, holdings)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(&stubAnalyzer{}, []types.Holding{{Symbol: "TCS", Quantity: 10, AvgPrice: 3000}})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Error("health response not successful")
	}
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("health data has type %T, want object", resp.Data)
	}
	if data["status"] != "ok" {
		t.Errorf("status field = %v, want ok", data["status"])
	}
	if data["holdings"] != float64(1) {
		t.Errorf("holdings field = %v, want 1", data["holdings"])
	}
}

func TestQuoteEndpoint(t *testing.T) {
	srv := testServer(&stubAnalyzer{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/quote/tcs", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("quote data has type %T, want object", resp.Data)
	}
	if data["symbol"] != "TCS" {
		t.Errorf("symbol = %v, want TCS", data["symbol"])
	}
	if data["last_price"] != 3510.5 {
		t.Errorf("last_price = %v, want 3510.5", data["last_price"])
	}
}

func TestQuoteEndpointUnknownSymbol(t *testing.T) {
	srv := testServer(&stubAnalyzer{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/quote/NOPE", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	analyzer := &stubAnalyzer{
		results: map[string]*types.AnalysisResult{"TCS": testResult("TCS", types.ActionBuy)},
	}
	srv := testServer(analyzer, []types.Holding{{Symbol: "TCS", Quantity: 10, AvgPrice: 3000}})

	req := httptest.NewRequest(http.MethodGet, "/api/analyze/tcs", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Fatalf("response not successful: %s", resp.Error)
	}
	// Lowercase path parameter is uppercased and matched to the holding.
	if analyzer.lastArg == nil || analyzer.lastArg.Symbol != "TCS" {
		t.Errorf("holding passed to analyzer = %+v, want TCS position", analyzer.lastArg)
	}
}

func TestAnalyzeEndpointUnheldSymbol(t *testing.T) {
	analyzer := &stubAnalyzer{
		results: map[string]*types.AnalysisResult{"INFY": testResult("INFY", types.ActionHold)},
	}
	srv := testServer(analyzer, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/analyze/INFY", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if analyzer.lastArg != nil {
		t.Errorf("holding passed for unheld symbol = %+v, want nil", analyzer.lastArg)
	}
}

func TestAnalyzeEndpointInsufficientData(t *testing.T) {
	analyzer := &stubAnalyzer{
		errs: map[string]error{"NEWIPO": &advisor.InsufficientDataError{Got: 5, Need: 20}},
	}
	srv := testServer(analyzer, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/analyze/NEWIPO", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Success {
		t.Error("insufficient-data response marked successful")
	}
	if resp.Error == "" {
		t.Error("insufficient-data response has empty error")
	}
}

func TestAnalyzeEndpointProviderFailure(t *testing.T) {
	analyzer := &stubAnalyzer{
		errs: map[string]error{"TCS": fmt.Errorf("quote service unreachable")},
	}
	srv := testServer(analyzer, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/analyze/TCS", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestRecommendationsEndpoint(t *testing.T) {
	analyzer := &stubAnalyzer{
		results: map[string]*types.AnalysisResult{
			"TCS": testResult("TCS", types.ActionBuy),
		},
		errs: map[string]error{"SUSPENDED": fmt.Errorf("no price data")},
	}
	holdings := []types.Holding{
		{Symbol: "TCS", Quantity: 10, AvgPrice: 3000},
		{Symbol: "SUSPENDED", Quantity: 5, AvgPrice: 100},
	}
	srv := testServer(analyzer, holdings)

	req := httptest.NewRequest(http.MethodGet, "/api/recommendations", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Fatalf("response not successful: %s", resp.Error)
	}

	raw, _ := json.Marshal(resp.Data)
	var analysis types.PortfolioAnalysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		t.Fatalf("decoding portfolio analysis: %v", err)
	}
	if len(analysis.Results) != 1 || len(analysis.Failures) != 1 {
		t.Errorf("got %d results and %d failures, want 1 and 1",
			len(analysis.Results), len(analysis.Failures))
	}
}
