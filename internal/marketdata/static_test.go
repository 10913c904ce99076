package marketdata

import (
	"context"
	"testing"
)

func TestStaticDeterministic(t *testing.T) {
	s := NewStatic()
	ctx := context.Background()

	first, err := s.PriceHistory(ctx, "RELIANCE", 90)
	if err != nil {
		t.Fatalf("PriceHistory: %v", err)
	}
	second, err := s.PriceHistory(ctx, "RELIANCE", 90)
	if err != nil {
		t.Fatalf("PriceHistory: %v", err)
	}
	if len(first) != 90 {
		t.Fatalf("len = %d, want 90", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("series differ at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestStaticDistinctSymbols(t *testing.T) {
	s := NewStatic()
	ctx := context.Background()

	a, _ := s.PriceHistory(ctx, "TCS", 30)
	b, _ := s.PriceHistory(ctx, "INFY", 30)
	same := true
	for i := range a {
		if a[i].Close != b[i].Close {
			same = false
			break
		}
	}
	if same {
		t.Error("different symbols produced identical series")
	}
}

func TestStaticSeriesAscendingPositive(t *testing.T) {
	s := NewStatic()
	points, err := s.PriceHistory(context.Background(), "SBIN", 60)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range points {
		if p.Close <= 0 {
			t.Fatalf("non-positive close %v at %d", p.Close, i)
		}
		if i > 0 && !points[i-1].Date.Before(p.Date) {
			t.Fatalf("dates not ascending at %d", i)
		}
	}
}

func TestStaticLastPriceMatchesHistory(t *testing.T) {
	s := NewStatic()
	ctx := context.Background()
	points, _ := s.PriceHistory(ctx, "ITC", 90)
	last, err := s.LastPrice(ctx, "ITC")
	if err != nil {
		t.Fatal(err)
	}
	if last != points[len(points)-1].Close {
		t.Errorf("LastPrice = %v, history tail = %v", last, points[len(points)-1].Close)
	}
}

func TestStaticDefaultDays(t *testing.T) {
	s := NewStatic()
	points, err := s.PriceHistory(context.Background(), "LT", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 90 {
		t.Errorf("default len = %d, want 90", len(points))
	}
}
