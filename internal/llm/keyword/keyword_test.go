package keyword

import (
	"context"
	"testing"

	"stock-news-advisor/internal/types"
)

func TestClassifyLabels(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  types.Sentiment
	}{
		{"bullish headline", "Reliance shares surge after strong quarterly profit", types.SentimentPositive},
		{"bearish headline", "Yes Bank plunges amid fraud investigation", types.SentimentNegative},
		{"no keywords", "Company announces annual general meeting date", types.SentimentNeutral},
		{"mixed leaning bearish", "Weak results despite dividend as losses mount", types.SentimentNegative},
	}
	c := NewKeywordClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig, err := c.Classify(context.Background(), types.NewsArticle{Symbol: "X", Title: tt.title})
			if err != nil {
				t.Fatalf("Classify: %v", err)
			}
			if sig.Label != tt.want {
				t.Errorf("label = %s, want %s (score %.2f)", sig.Label, tt.want, sig.Score)
			}
		})
	}
}

func TestClassifyScoreBounds(t *testing.T) {
	c := NewKeywordClassifier()
	sig, err := c.Classify(context.Background(), types.NewsArticle{
		Title:   "Bullish rally: surge, breakout, record high, strong growth",
		Summary: "upgrade outperform accumulate",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !sig.HasScore {
		t.Fatal("expected numeric score")
	}
	if sig.Score < -1 || sig.Score > 1 {
		t.Errorf("score %v out of [-1,1]", sig.Score)
	}
	if sig.Score <= 0 {
		t.Errorf("score = %v, want positive for all-bullish text", sig.Score)
	}
}

func TestClassifyNeutralHasNoScore(t *testing.T) {
	c := NewKeywordClassifier()
	sig, err := c.Classify(context.Background(), types.NewsArticle{Title: "Board meeting scheduled"})
	if err != nil {
		t.Fatal(err)
	}
	if sig.HasScore {
		t.Errorf("unexpected score %v for keyword-free text", sig.Score)
	}
	if sig.Label != types.SentimentNeutral {
		t.Errorf("label = %s, want NEUTRAL", sig.Label)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := NewKeywordClassifier()
	article := types.NewsArticle{Title: "Stock rally continues on strong profit growth"}
	a, _ := c.Classify(context.Background(), article)
	b, _ := c.Classify(context.Background(), article)
	if a != b {
		t.Errorf("classification not deterministic: %+v vs %+v", a, b)
	}
}
