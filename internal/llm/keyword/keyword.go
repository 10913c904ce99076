package keyword

import (
	"context"
	"strings"

	"stock-news-advisor/internal/interfaces"
	"stock-news-advisor/internal/types"
)

// KeywordClassifier is a deterministic, offline fallback: it scores a
// headline against bullish/bearish keyword dictionaries. When an LLM
// provider is configured the factory prefers it over this one.
type KeywordClassifier struct{}

var _ interfaces.Classifier = (*KeywordClassifier)(nil)

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

func (c *KeywordClassifier) Name() string { return "keyword" }

// bullish / bearish keyword dictionaries (lowercase).
var bullishWords = map[string]float64{
	"bullish": 0.7, "rally": 0.6, "surge": 0.7, "upbeat": 0.5,
	"positive": 0.4, "growth": 0.4, "upgrade": 0.6, "outperform": 0.6,
	"buy": 0.5, "strong": 0.4, "recovery": 0.5, "breakout": 0.6,
	"record high": 0.7, "all-time high": 0.7, "beat": 0.5,
	"exceeds": 0.5, "beats estimate": 0.6, "expansion": 0.4,
	"profit": 0.3, "dividend": 0.4, "accumulate": 0.5,
}

var bearishWords = map[string]float64{
	"bearish": 0.7, "crash": 0.8, "plunge": 0.7, "slump": 0.6,
	"negative": 0.4, "downgrade": 0.6, "underperform": 0.6,
	"sell": 0.5, "weak": 0.4, "decline": 0.5, "loss": 0.4,
	"selloff": 0.7, "fall": 0.4, "correction": 0.5,
	"default": 0.7, "fraud": 0.8, "scam": 0.8, "investigation": 0.5,
	"cut": 0.3, "miss": 0.5, "warning": 0.5, "concern": 0.3,
}

// scoreText returns a net sentiment score in [-1,1] and whether any
// keyword matched at all.
func scoreText(text string) (score float64, matched bool) {
	lower := strings.ToLower(text)

	bullScore := 0.0
	bearScore := 0.0
	matches := 0

	for word, weight := range bullishWords {
		if strings.Contains(lower, word) {
			bullScore += weight
			matches++
		}
	}
	for word, weight := range bearishWords {
		if strings.Contains(lower, word) {
			bearScore += weight
			matches++
		}
	}

	if matches == 0 {
		return 0, false
	}
	total := bullScore + bearScore
	if total == 0 {
		return 0, false
	}
	return (bullScore - bearScore) / total, true
}

func (c *KeywordClassifier) Classify(_ context.Context, article types.NewsArticle) (types.NewsSignal, error) {
	text := article.Title
	if article.Summary != "" {
		text += " " + article.Summary
	}

	signal := types.NewsSignal{
		Title:       article.Title,
		URL:         article.URL,
		Source:      article.Source,
		PublishedAt: article.PublishedAt,
		Label:       types.SentimentNeutral,
	}

	score, matched := scoreText(text)
	if !matched {
		signal.Reasoning = "no sentiment keywords"
		return signal, nil
	}

	signal.Score = score
	signal.HasScore = true
	switch {
	case score > 0.1:
		signal.Label = types.SentimentPositive
	case score < -0.1:
		signal.Label = types.SentimentNegative
	}
	signal.Reasoning = "keyword dictionary match"
	return signal, nil
}
