package llmobs

import (
	"context"

	"stock-news-advisor/internal/interfaces"
	"stock-news-advisor/internal/logger"
	"stock-news-advisor/internal/trace"
	"stock-news-advisor/internal/types"
)

// observableClassifier wraps a Classifier with observability (logging & tracing)
type observableClassifier struct {
	classifier interfaces.Classifier
}

// Compile-time interface check
var _ interfaces.Classifier = (*observableClassifier)(nil)

// Wrap wraps a classifier with observability middleware
func Wrap(classifier interfaces.Classifier) interfaces.Classifier {
	return &observableClassifier{
		classifier: classifier,
	}
}

func (oc *observableClassifier) Name() string {
	return oc.classifier.Name()
}

func (oc *observableClassifier) Classify(ctx context.Context, article types.NewsArticle) (types.NewsSignal, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Classify")
	defer span.End()

	// Use DebugSkip(1) to report the actual caller, not this middleware wrapper
	logger.DebugSkip(ctx, 1, "Classifying article",
		"classifier", oc.classifier.Name(),
		"symbol", article.Symbol,
		"title", article.Title,
	)

	signal, err := oc.classifier.Classify(ctx, article)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to classify article", err,
			"classifier", oc.classifier.Name(),
			"symbol", article.Symbol,
		)
		return types.NewsSignal{}, err
	}

	logger.DebugSkip(ctx, 1, "Article classified",
		"classifier", oc.classifier.Name(),
		"symbol", article.Symbol,
		"label", signal.Label,
		"score", signal.Score,
	)

	return signal, nil
}
