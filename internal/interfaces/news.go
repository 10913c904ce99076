package interfaces

import (
	"context"

	"stock-news-advisor/internal/types"
)

// NewsProvider fetches raw, unclassified articles mentioning a symbol.
type NewsProvider interface {
	Fetch(ctx context.Context, symbol string, limit int) ([]types.NewsArticle, error)
}

// Classifier attaches a sentiment label (and optionally a numeric score)
// to one article.
type Classifier interface {
	Classify(ctx context.Context, article types.NewsArticle) (types.NewsSignal, error)
	Name() string
}

// SentimentSource is the composed provider+classifier surface the analyzer
// consumes: classified signals for a symbol.
type SentimentSource interface {
	Signals(ctx context.Context, symbol string) ([]types.NewsSignal, error)
}
