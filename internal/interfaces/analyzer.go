package interfaces

import (
	"context"

	"stock-news-advisor/internal/types"
)

type Analyzer interface {
	AnalyzeSymbol(ctx context.Context, symbol string, holding *types.Holding) (*types.AnalysisResult, error)
	AnalyzePortfolio(ctx context.Context, holdings []types.Holding) (*types.PortfolioAnalysis, error)
}
