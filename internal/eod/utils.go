package eod

import (
	"os"
	"path/filepath"
	"time"
)

func eodDir() string {
	if v := os.Getenv("ADVISOR_EOD_DIR"); v != "" {
		return v
	}
	return "eod"
}

func istNow() time.Time {
	return time.Now().In(time.FixedZone("IST", 19800))
}

func eodCSVPath(t time.Time) string {
	dateStr := t.In(time.FixedZone("IST", 19800)).Format("2006-01-02")
	return filepath.Join(eodDir(), dateStr+".csv")
}

// The summary is cut after the NSE close plus settle time.
func marketCloseTime(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 15, 40, 0, 0, t.Location())
}
