package advisor

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"stock-news-advisor/internal/interfaces"
	"stock-news-advisor/internal/logger"
	"stock-news-advisor/internal/store"
	"stock-news-advisor/internal/types"
)

const defaultMaxParallel = 4

// Analyzer orchestrates one analysis pass: prices and news in, one
// recommendation per symbol out. All scoring is delegated to the pure
// functions in this package; the analyzer only wires collaborators and
// reports failed symbols instead of defaulting them to HOLD.
type Analyzer struct {
	prices      interfaces.PriceProvider
	news        interfaces.SentimentSource
	cfg         *store.Config
	maxParallel int
}

func NewAnalyzer(prices interfaces.PriceProvider, news interfaces.SentimentSource, cfg *store.Config) *Analyzer {
	return &Analyzer{
		prices:      prices,
		news:        news,
		cfg:         cfg,
		maxParallel: defaultMaxParallel,
	}
}

func (a *Analyzer) technicalConfig() TechnicalConfig {
	return TechnicalConfig{
		ShortMAWindow:     a.cfg.Analysis.ShortMAWindow,
		LongMAWindow:      a.cfg.Analysis.LongMAWindow,
		ShortMomentumDays: a.cfg.Analysis.ShortMomentumDays,
		LongMomentumDays:  a.cfg.Analysis.LongMomentumDays,
		RangeWindow:       a.cfg.Analysis.RangeWindow,
	}
}

func (a *Analyzer) valuationConfig() ValuationConfig {
	return ValuationConfig{
		OvervaluedPct:  a.cfg.Analysis.OvervaluedPct,
		UndervaluedPct: a.cfg.Analysis.UndervaluedPct,
	}
}

func (a *Analyzer) scorerConfig() ScorerConfig {
	return ScorerConfig{
		SentimentBand:  a.cfg.Analysis.SentimentBand,
		ScoreThreshold: a.cfg.Analysis.ScoreThreshold,
		ProfitTakePct:  a.cfg.Analysis.ProfitTakePct,
		LossReviewPct:  a.cfg.Analysis.LossReviewPct,
		BuyTargetPct:   a.cfg.Analysis.BuyTargetPct,
		BuyStopPct:     a.cfg.Analysis.BuyStopPct,
		HoldTargetPct:  a.cfg.Analysis.HoldTargetPct,
		HoldStopPct:    a.cfg.Analysis.HoldStopPct,
	}
}

// AnalyzeSymbol runs the full pipeline for one symbol. holding may be nil
// for symbols the caller does not own.
func (a *Analyzer) AnalyzeSymbol(ctx context.Context, symbol string, holding *types.Holding) (*types.AnalysisResult, error) {
	timer := logger.StartOperation(ctx, "analyze_symbol", "symbol", symbol)
	ctx = timer.GetContext()

	history, err := a.prices.PriceHistory(ctx, symbol, a.cfg.LookbackDays)
	if err != nil {
		timer.EndWithError(err, "symbol", symbol)
		return nil, fmt.Errorf("price history for %s: %w", symbol, err)
	}

	technical, err := ComputeTechnical(history, a.technicalConfig())
	if err != nil {
		timer.EndWithError(err, "symbol", symbol)
		return nil, fmt.Errorf("technical analysis for %s: %w", symbol, err)
	}
	current := technical.CurrentPrice

	valuation, err := AssessValuation(history, current, a.valuationConfig())
	if err != nil {
		timer.EndWithError(err, "symbol", symbol)
		return nil, fmt.Errorf("valuation for %s: %w", symbol, err)
	}

	// News feeds are flaky; a failed fetch degrades to a neutral sentiment
	// summary rather than making the symbol unanalyzable.
	signals, err := a.news.Signals(ctx, symbol)
	if err != nil {
		logger.Warn(ctx, "News signals unavailable, proceeding with neutral sentiment",
			"symbol", symbol, "error", err.Error())
		signals = nil
	}
	sentiment := Summarize(signals)

	gain := 0.0
	if holding != nil {
		gain = holding.UnrealizedGainPct(current)
	}

	rec, err := Score(ScoreInput{
		Symbol:            symbol,
		Technical:         technical,
		Valuation:         valuation,
		Sentiment:         sentiment,
		UnrealizedGainPct: gain,
	}, a.scorerConfig())
	if err != nil {
		timer.EndWithError(err, "symbol", symbol)
		return nil, fmt.Errorf("scoring %s: %w", symbol, err)
	}

	logger.Recommendation(ctx, symbol, string(rec.Action), rec.Confidence, rec.Reasoning,
		"risk", string(rec.Risk), "buy_score", rec.BuyScore, "sell_score", rec.SellScore)
	if rec.Risk == types.RiskHigh {
		logger.Risk(ctx, symbol, "high_risk_recommendation",
			"trend", string(technical.Trend), "sentiment", sentiment.Score)
	}

	timer.End("action", string(rec.Action), "confidence", rec.Confidence)

	return &types.AnalysisResult{
		Symbol:            symbol,
		CurrentPrice:      current,
		Technical:         *technical,
		Valuation:         *valuation,
		Sentiment:         *sentiment,
		Signals:           signals,
		UnrealizedGainPct: gain,
		Recommendation:    *rec,
	}, nil
}

// AnalyzePortfolio fans out over holdings with bounded parallelism. Each
// symbol is independent; a failure is recorded against that symbol and
// never cancels the rest of the pass.
func (a *Analyzer) AnalyzePortfolio(ctx context.Context, holdings []types.Holding) (*types.PortfolioAnalysis, error) {
	timer := logger.StartOperation(ctx, "analyze_portfolio", "holdings", len(holdings))
	ctx = timer.GetContext()

	results := make([]*types.AnalysisResult, len(holdings))
	failures := make([]*types.SymbolFailure, len(holdings))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.maxParallel)
	for i := range holdings {
		i := i
		g.Go(func() error {
			h := holdings[i]
			res, err := a.AnalyzeSymbol(gctx, h.Symbol, &h)
			if err != nil {
				failures[i] = &types.SymbolFailure{Symbol: h.Symbol, Reason: err.Error()}
				return nil
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		timer.EndWithError(err)
		return nil, err
	}

	analysis := &types.PortfolioAnalysis{}
	for i := range holdings {
		if failures[i] != nil {
			analysis.Failures = append(analysis.Failures, *failures[i])
			continue
		}
		analysis.Results = append(analysis.Results, *results[i])
	}
	analysis.Summary = summarize(analysis)

	timer.End("analyzed", analysis.Summary.Analyzed, "unavailable", analysis.Summary.Unavailable)
	return analysis, nil
}

func summarize(pa *types.PortfolioAnalysis) types.PortfolioSummary {
	s := types.PortfolioSummary{
		Analyzed:    len(pa.Results),
		Unavailable: len(pa.Failures),
	}
	for _, r := range pa.Results {
		switch r.Recommendation.Action {
		case types.ActionBuy:
			s.BuyCount++
		case types.ActionSell:
			s.SellCount++
		default:
			s.HoldCount++
		}
		if r.Recommendation.Risk == types.RiskHigh {
			s.HighRiskCount++
		}
		if r.Sentiment.Score > 0 {
			s.PositiveSentiment++
		} else if r.Sentiment.Score < 0 {
			s.NegativeSentiment++
		}
	}
	return s
}
