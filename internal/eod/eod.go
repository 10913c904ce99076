package eod

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"stock-news-advisor/internal/interfaces"
	"stock-news-advisor/internal/reclog"
)

type eodSummarizer struct{}

var _ interfaces.EodSummarizer = (*eodSummarizer)(nil)

// symbolDay collapses a symbol's recommendation entries for one day.
// When a symbol was analyzed more than once, the latest entry wins for
// the point-in-time columns; the counts cover the whole day.
type symbolDay struct {
	Symbol    string
	Last      reclog.Entry
	BuyCount  int
	SellCount int
	HoldCount int
	Samples   int
}

// SummarizeDay aggregates the given IST day's recommendation log into a
// per-symbol CSV. Returns ("", nil) when the day has no entries.
func (es *eodSummarizer) SummarizeDay(t time.Time) (string, error) {
	entries, err := reclog.ReadDay(t)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", nil
	}

	days := map[string]*symbolDay{}
	for _, e := range entries {
		row := days[e.Symbol]
		if row == nil {
			row = &symbolDay{Symbol: e.Symbol}
			days[e.Symbol] = row
		}
		row.Samples++
		row.Last = e
		switch e.Recommendation.Action {
		case "BUY":
			row.BuyCount++
		case "SELL":
			row.SellCount++
		case "HOLD":
			row.HoldCount++
		}
	}

	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	outPath := eodCSVPath(t)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	defer w.Flush()
	headers := []string{"symbol", "action", "confidence", "risk", "price", "unrealized_gain_pct", "sentiment_score", "trend", "buy_score", "sell_score", "buy_count", "sell_count", "hold_count", "samples"}
	if err := w.Write(headers); err != nil {
		return "", err
	}

	var totalBuy, totalSell, totalHold, totalSamples int
	for _, k := range keys {
		r := days[k]
		rec := r.Last.Recommendation
		row := []string{
			r.Symbol,
			string(rec.Action),
			fmt.Sprintf("%.0f", rec.Confidence),
			string(rec.Risk),
			fmt.Sprintf("%.2f", r.Last.CurrentPrice),
			fmt.Sprintf("%.2f", r.Last.UnrealizedGainPct),
			fmt.Sprintf("%.4f", r.Last.SentimentScore),
			string(r.Last.Trend),
			strconv.Itoa(rec.BuyScore),
			strconv.Itoa(rec.SellScore),
			strconv.Itoa(r.BuyCount),
			strconv.Itoa(r.SellCount),
			strconv.Itoa(r.HoldCount),
			strconv.Itoa(r.Samples),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
		totalBuy += r.BuyCount
		totalSell += r.SellCount
		totalHold += r.HoldCount
		totalSamples += r.Samples
	}
	_ = w.Write([]string{"TOTAL", "", "", "", "", "", "", "", "", "", strconv.Itoa(totalBuy), strconv.Itoa(totalSell), strconv.Itoa(totalHold), strconv.Itoa(totalSamples)})

	return outPath, nil
}

func (es *eodSummarizer) SummarizeToday() (string, error) {
	return es.SummarizeDay(istNow())
}

// ShouldRunNow reports whether today's summary is due: past the market
// close cutoff and not yet written.
func (es *eodSummarizer) ShouldRunNow() (bool, string) {
	now := istNow()
	cutoff := marketCloseTime(now)
	outPath := eodCSVPath(now)
	if now.After(cutoff) {
		if _, err := os.Stat(outPath); os.IsNotExist(err) {
			return true, outPath
		}
	}
	return false, outPath
}
