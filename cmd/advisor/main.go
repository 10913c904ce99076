package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"stock-news-advisor/internal/eod"
	"stock-news-advisor/internal/interfaces"
	"stock-news-advisor/internal/logger"
	"stock-news-advisor/internal/reclog"
	"stock-news-advisor/internal/server"
	"stock-news-advisor/internal/trace"
	"stock-news-advisor/internal/types"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	once := flag.Bool("once", false, "analyze the portfolio once, print recommendations and exit")
	flag.Parse()

	must(initializeSystem())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(ctx, *configPath)
	must(err)

	compressOldLogs(ctx)

	holdings, err := loadHoldings(ctx, cfg)
	must(err)

	prices, err := initializePrices(ctx, cfg)
	must(err)

	sentiment, err := initializeSentiment(ctx, cfg)
	must(err)

	analyzer := initializeAnalyzer(cfg, prices, sentiment)

	if *once {
		analysis, err := analyzer.AnalyzePortfolio(ctx, holdings)
		must(err)
		recordAnalysis(ctx, analysis)
		b, _ := json.MarshalIndent(analysis, "", "  ")
		fmt.Println(string(b))
		shutdown()
		return
	}

	if cfg.API.Enabled {
		srv := server.NewServer(analyzer, prices, holdings)
		go func() {
			logger.Info(ctx, "API server listening", "addr", cfg.API.Addr)
			if err := srv.ListenAndServe(ctx, cfg.API.Addr); err != nil {
				logger.ErrorWithErr(ctx, "API server stopped", err)
			}
		}()
	}

	tick := time.NewTicker(time.Duration(cfg.PollSeconds) * time.Second)
	defer tick.Stop()
	eodTick := time.NewTicker(60 * time.Second)
	defer eodTick.Stop()

	logger.Info(ctx, "Advisor started",
		"holdings", len(holdings),
		"poll_seconds", cfg.PollSeconds,
		"data_source", cfg.DataSource,
	)

	// First pass immediately rather than waiting a full poll interval.
	runOnce(ctx, analyzer, holdings)

	for {
		select {
		case <-tick.C:
			runOnce(ctx, analyzer, holdings)
		case <-eodTick.C:
			if ok, _ := eod.ShouldRunNow(); ok {
				if p, err := eod.SummarizeToday(); err == nil && p != "" {
					logger.Info(ctx, "EOD CSV written", "path", p)
				}
			}
		case <-ctx.Done():
			logger.Info(ctx, "Shutting down...")
			if p, err := eod.SummarizeToday(); err == nil && p != "" {
				logger.Info(ctx, "EOD CSV written", "path", p)
			}
			shutdown()
			return
		}
	}
}

func runOnce(ctx context.Context, analyzer interfaces.Analyzer, holdings []types.Holding) {
	analysis, err := analyzer.AnalyzePortfolio(ctx, holdings)
	if err != nil {
		logger.ErrorWithErr(ctx, "Portfolio analysis failed", err)
		return
	}
	recordAnalysis(ctx, analysis)
}

// recordAnalysis appends every recommendation to the daily log and
// surfaces the per-symbol failures.
func recordAnalysis(ctx context.Context, analysis *types.PortfolioAnalysis) {
	for i := range analysis.Results {
		res := &analysis.Results[i]
		if err := reclog.Append(reclog.FromResult(res)); err != nil {
			logger.Warn(ctx, "Failed to append recommendation log",
				"symbol", res.Symbol,
				"error", err,
			)
		}
	}
	for _, f := range analysis.Failures {
		logger.Warn(ctx, "Symbol skipped", "symbol", f.Symbol, "reason", f.Reason)
	}
	s := analysis.Summary
	logger.Info(ctx, "Portfolio pass completed",
		"analyzed", s.Analyzed,
		"unavailable", s.Unavailable,
		"buy", s.BuyCount,
		"sell", s.SellCount,
		"hold", s.HoldCount,
		"high_risk", s.HighRiskCount,
	)
}

func shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = logger.Shutdown(ctx)
	_ = trace.Shutdown(ctx)
}
