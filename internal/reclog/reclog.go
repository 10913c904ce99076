package reclog

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"stock-news-advisor/internal/types"
)

var mu sync.Mutex

// Entry is one persisted recommendation. The recommendation itself carries
// no timestamp; the log stamps it at append time.
type Entry struct {
	Time              string               `json:"time"`
	Symbol            string               `json:"symbol"`
	Recommendation    types.Recommendation `json:"recommendation"`
	CurrentPrice      float64              `json:"current_price"`
	UnrealizedGainPct float64              `json:"unrealized_gain_percent"`
	SentimentScore    float64              `json:"sentiment_score"`
	Trend             types.Trend          `json:"trend"`
}

var ist = time.FixedZone("IST", 19800)

func logDir() string {
	if v := os.Getenv("ADVISOR_LOG_DIR"); v != "" {
		return v
	}
	return "reclogs"
}

func dailyFilepath(t time.Time) string {
	d := t.In(ist).Format("2006-01-02")
	return filepath.Join(logDir(), d+".txt")
}

// Append stamps the entry with the current IST time and appends it as one
// JSON line to today's file.
func Append(e Entry) error {
	mu.Lock()
	defer mu.Unlock()
	now := time.Now().In(ist)
	e.Time = now.Format("2006-01-02 15:04:05")
	p := dailyFilepath(now)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	b, _ := json.Marshal(e)
	_, err = fmt.Fprintln(f, string(b))
	return err
}

// FromResult builds a log entry from one analysis result.
func FromResult(res *types.AnalysisResult) Entry {
	return Entry{
		Symbol:            res.Symbol,
		Recommendation:    res.Recommendation,
		CurrentPrice:      res.CurrentPrice,
		UnrealizedGainPct: res.UnrealizedGainPct,
		SentimentScore:    res.Sentiment.Score,
		Trend:             res.Technical.Trend,
	}
}

// ReadDay returns all entries logged on the given IST day, oldest first.
// A missing file is an empty day, not an error.
func ReadDay(t time.Time) ([]Entry, error) {
	mu.Lock()
	defer mu.Unlock()
	p := dailyFilepath(t)
	f, err := os.Open(p)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			// A torn write at the tail should not hide the rest.
			continue
		}
		entries = append(entries, e)
	}
	return entries, scanner.Err()
}

// CompressOlder gzips daily files older than the retention window and
// removes the originals.
func CompressOlder(retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	root := logDir()
	return filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(p) != ".txt" {
			return nil
		}
		info, er := os.Stat(p)
		if er != nil {
			return nil
		}
		cutoff := time.Now().AddDate(0, 0, -retentionDays)
		if info.ModTime().Before(cutoff) {
			gz := p + ".gz"
			if _, e2 := os.Stat(gz); e2 == nil {
				_ = os.Remove(p)
				return nil
			}

			in, e3 := os.Open(p)
			if e3 != nil {
				return nil
			}
			defer in.Close()

			out, e4 := os.OpenFile(gz, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
			if e4 != nil {
				return nil
			}
			gw := gzip.NewWriter(out)
			if _, e5 := io.Copy(gw, in); e5 == nil {
				_ = gw.Close()
				_ = out.Close()
				_ = os.Remove(p)
			} else {
				_ = gw.Close()
				_ = out.Close()
			}
		}
		return nil
	})
}
