package advisorobs

import (
	"context"

	"stock-news-advisor/internal/interfaces"
	"stock-news-advisor/internal/logger"
	"stock-news-advisor/internal/trace"
	"stock-news-advisor/internal/types"
)

// observableAnalyzer wraps an Analyzer with observability (logging & tracing)
type observableAnalyzer struct {
	analyzer interfaces.Analyzer
}

// Compile-time interface check
var _ interfaces.Analyzer = (*observableAnalyzer)(nil)

// Wrap wraps an analyzer with observability middleware
func Wrap(analyzer interfaces.Analyzer) interfaces.Analyzer {
	return &observableAnalyzer{
		analyzer: analyzer,
	}
}

func (oa *observableAnalyzer) AnalyzeSymbol(ctx context.Context, symbol string, holding *types.Holding) (*types.AnalysisResult, error) {
	ctx, span := trace.StartSpan(ctx, "advisor.AnalyzeSymbol")
	defer span.End()

	// Use DebugSkip(1) to report the actual caller, not this middleware wrapper
	logger.DebugSkip(ctx, 1, "Analyzing symbol", "symbol", symbol)

	result, err := oa.analyzer.AnalyzeSymbol(ctx, symbol, holding)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Symbol analysis unavailable", err,
			"symbol", symbol,
		)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Symbol analysis completed",
		"symbol", symbol,
		"action", result.Recommendation.Action,
		"confidence", result.Recommendation.Confidence,
		"risk", result.Recommendation.Risk,
	)

	return result, nil
}

func (oa *observableAnalyzer) AnalyzePortfolio(ctx context.Context, holdings []types.Holding) (*types.PortfolioAnalysis, error) {
	ctx, span := trace.StartSpan(ctx, "advisor.AnalyzePortfolio")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Analyzing portfolio", "holdings", len(holdings))

	analysis, err := oa.analyzer.AnalyzePortfolio(ctx, holdings)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Portfolio analysis failed", err,
			"holdings", len(holdings),
		)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Portfolio analysis completed",
		"analyzed", analysis.Summary.Analyzed,
		"unavailable", analysis.Summary.Unavailable,
		"buys", analysis.Summary.BuyCount,
		"sells", analysis.Summary.SellCount,
		"holds", analysis.Summary.HoldCount,
	)

	return analysis, nil
}
