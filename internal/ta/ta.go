package ta

import "math"

func SMA(closes []float64, n int) float64 {
	if len(closes) < n || n <= 0 {
		return math.NaN()
	}
	sum := 0.0
	for i := len(closes) - n; i < len(closes); i++ {
		sum += closes[i]
	}
	return sum / float64(n)
}

// Momentum returns the percent change between the n-th most recent close
// and the latest close. The reference close is closes[len-n], so a window
// of n needs exactly n points. NaN when the window does not fit or the
// reference close is zero.
func Momentum(closes []float64, n int) float64 {
	if n <= 0 || len(closes) < n {
		return math.NaN()
	}
	ref := closes[len(closes)-n]
	if ref == 0 {
		return math.NaN()
	}
	return (closes[len(closes)-1] - ref) / ref * 100
}

// MinMax returns the lowest and highest values over the last n entries.
func MinMax(closes []float64, n int) (min, max float64) {
	if len(closes) < n || n <= 0 {
		return math.NaN(), math.NaN()
	}
	min, max = closes[len(closes)-n], closes[len(closes)-n]
	for i := len(closes) - n + 1; i < len(closes); i++ {
		if closes[i] < min {
			min = closes[i]
		}
		if closes[i] > max {
			max = closes[i]
		}
	}
	return min, max
}

// Mean averages the full slice, NaN when empty.
func Mean(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func StdDev(vals []float64, n int) float64 {
	if len(vals) < n || n <= 0 {
		return math.NaN()
	}
	m := SMA(vals, n)
	s := 0.0
	for i := len(vals) - n; i < len(vals); i++ {
		d := vals[i] - m
		s += d * d
	}
	return math.Sqrt(s / float64(n))
}
