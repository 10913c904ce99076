package advisor

import "stock-news-advisor/internal/types"

// Summarize reduces a set of classified news signals to one aggregate score
// and per-label counts. Each signal contributes its numeric score when the
// classifier produced one, otherwise its label mapped POSITIVE=+1,
// NEGATIVE=-1, NEUTRAL=0; the aggregate is the mean of those values, so the
// result does not depend on signal order. An empty set is a neutral
// default, not an error.
func Summarize(signals []types.NewsSignal) *types.SentimentSummary {
	summary := &types.SentimentSummary{}
	if len(signals) == 0 {
		return summary
	}

	total := 0.0
	for _, s := range signals {
		switch s.Label {
		case types.SentimentPositive:
			summary.Positive++
		case types.SentimentNegative:
			summary.Negative++
		default:
			summary.Neutral++
		}

		if s.HasScore {
			total += s.Score
			continue
		}
		switch s.Label {
		case types.SentimentPositive:
			total += 1
		case types.SentimentNegative:
			total -= 1
		}
	}

	summary.Score = total / float64(len(signals))
	return summary
}
