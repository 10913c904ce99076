package reclog

import (
	"testing"
	"time"

	"stock-news-advisor/internal/types"
)

func TestAppendAndReadDay(t *testing.T) {
	t.Setenv("ADVISOR_LOG_DIR", t.TempDir())

	e := FromResult(&types.AnalysisResult{
		Symbol:       "RELIANCE",
		CurrentPrice: 2500,
		Technical:    types.TechnicalSnapshot{Trend: types.TrendUp},
		Sentiment:    types.SentimentSummary{Score: 0.4},
		Recommendation: types.Recommendation{
			Symbol: "RELIANCE", Action: types.ActionBuy, Confidence: 70,
			Risk: types.RiskLow, Reasoning: "test",
		},
	})
	if err := Append(e); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := Append(e); err != nil {
		t.Fatalf("Append: %v", err)
	}

	entries, err := ReadDay(time.Now())
	if err != nil {
		t.Fatalf("ReadDay: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].Symbol != "RELIANCE" {
		t.Errorf("symbol = %q", entries[0].Symbol)
	}
	if entries[0].Recommendation.Action != types.ActionBuy {
		t.Errorf("action = %s", entries[0].Recommendation.Action)
	}
	if entries[0].Time == "" {
		t.Error("entry not timestamped at append time")
	}
}

func TestReadDayMissingFile(t *testing.T) {
	t.Setenv("ADVISOR_LOG_DIR", t.TempDir())

	entries, err := ReadDay(time.Now().AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("ReadDay: %v", err)
	}
	if entries != nil {
		t.Errorf("entries = %+v, want nil for missing day", entries)
	}
}

func TestCompressOlderNoRetention(t *testing.T) {
	t.Setenv("ADVISOR_LOG_DIR", t.TempDir())
	if err := CompressOlder(0); err != nil {
		t.Fatalf("CompressOlder(0): %v", err)
	}
}
