package advisor

import (
	"errors"
	"testing"

	"stock-news-advisor/internal/types"
)

func TestAssessValuationBands(t *testing.T) {
	// Flat series: trailing average is exactly 100.
	points := flatPrices(100, 60)

	tests := []struct {
		name    string
		current float64
		want    types.ValuationStatus
	}{
		{"well above band", 120, types.Overvalued},
		{"epsilon above band", 110.0001, types.Overvalued},
		{"exactly on upper band", 110, types.FairValue},
		{"epsilon below upper band", 109.9999, types.FairValue},
		{"inside band", 100, types.FairValue},
		{"exactly on lower band", 90, types.FairValue},
		{"epsilon below lower band", 89.9999, types.Undervalued},
		{"well below band", 80, types.Undervalued},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := AssessValuation(points, tt.current, ValuationConfig{})
			if err != nil {
				t.Fatalf("AssessValuation: %v", err)
			}
			if v.Status != tt.want {
				t.Errorf("status = %s, want %s (deviation %.4f%%)", v.Status, tt.want, v.DeviationPct)
			}
		})
	}
}

func TestAssessValuationDeviation(t *testing.T) {
	points := mkPrices(90, 100, 110) // average 100
	v, err := AssessValuation(points, 105, ValuationConfig{})
	if err != nil {
		t.Fatalf("AssessValuation: %v", err)
	}
	if v.TrailingAvg != 100 {
		t.Errorf("TrailingAvg = %v, want 100", v.TrailingAvg)
	}
	if v.DeviationPct != 5 {
		t.Errorf("DeviationPct = %v, want 5", v.DeviationPct)
	}
}

func TestAssessValuationCustomBands(t *testing.T) {
	points := flatPrices(100, 30)
	v, err := AssessValuation(points, 106, ValuationConfig{OvervaluedPct: 5, UndervaluedPct: 5})
	if err != nil {
		t.Fatal(err)
	}
	if v.Status != types.Overvalued {
		t.Errorf("status = %s, want OVERVALUED with 5%% band", v.Status)
	}
}

func TestAssessValuationEmptySeries(t *testing.T) {
	_, err := AssessValuation(nil, 100, ValuationConfig{})
	if err == nil {
		t.Fatal("expected error for empty series")
	}
	var ide *InsufficientDataError
	if !errors.As(err, &ide) {
		t.Fatalf("error type = %T, want *InsufficientDataError", err)
	}
}
