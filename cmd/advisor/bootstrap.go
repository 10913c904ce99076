package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"stock-news-advisor/internal/advisor"
	"stock-news-advisor/internal/advisor/advisorobs"
	"stock-news-advisor/internal/eod"
	"stock-news-advisor/internal/eod/eodobs"
	"stock-news-advisor/internal/interfaces"
	"stock-news-advisor/internal/llm"
	"stock-news-advisor/internal/llm/llmobs"
	"stock-news-advisor/internal/logger"
	"stock-news-advisor/internal/marketdata"
	"stock-news-advisor/internal/marketdata/marketobs"
	"stock-news-advisor/internal/news"
	"stock-news-advisor/internal/portfolio"
	"stock-news-advisor/internal/reclog"
	"stock-news-advisor/internal/store"
	"stock-news-advisor/internal/trace"
	"stock-news-advisor/internal/types"
)

// initializeSystem initializes logger, tracer, and EOD summarizer
func initializeSystem() error {
	// Load environment variables
	_ = godotenv.Load()

	// Initialize logger
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize tracer
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	// Initialize EOD summarizer with observability
	initializeEOD()

	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context, path string) (*store.Config, error) {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	// The reclog and eod packages resolve their directories from the
	// environment; config wins unless the env is already set.
	if os.Getenv("ADVISOR_LOG_DIR") == "" {
		os.Setenv("ADVISOR_LOG_DIR", cfg.RecLogDir)
	}
	if os.Getenv("ADVISOR_EOD_DIR") == "" {
		os.Setenv("ADVISOR_EOD_DIR", cfg.EODDir)
	}
	return cfg, nil
}

// loadHoldings reads the portfolio CSV named in the config
func loadHoldings(ctx context.Context, cfg *store.Config) ([]types.Holding, error) {
	holdings, format, err := portfolio.LoadHoldings(cfg.HoldingsCSV)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load holdings", err, "path", cfg.HoldingsCSV)
		return nil, err
	}
	logger.Info(ctx, "Holdings loaded",
		"path", cfg.HoldingsCSV,
		"format", string(format),
		"count", len(holdings),
	)
	return holdings, nil
}

// compressOldLogs compresses old recommendation log files if retention is configured
func compressOldLogs(ctx context.Context) {
	if v := os.Getenv("ADVISOR_LOG_RETENTION_DAYS"); v != "" {
		var n int
		fmt.Sscanf(v, "%d", &n)
		if err := reclog.CompressOlder(n); err != nil {
			logger.Warn(ctx, "Failed to compress old logs", "error", err)
		}
	}
}

// initializePrices initializes and returns the price provider with observability
func initializePrices(ctx context.Context, cfg *store.Config) (interfaces.PriceProvider, error) {
	provider, err := marketdata.New(cfg)
	if err != nil {
		return nil, err
	}

	switch cfg.DataSource {
	case "YAHOO":
		logger.Info(ctx, "Using Yahoo Finance chart data")
	case "KITE":
		logger.Info(ctx, "Using Zerodha Kite historical data")
	default:
		logger.Warn(ctx, "Using STATIC mock price data - recommendations are for testing only")
	}

	// Wrap with observability middleware
	return marketobs.Wrap(provider), nil
}

// initializeSentiment initializes the classifier and news signal service
func initializeSentiment(ctx context.Context, cfg *store.Config) (interfaces.SentimentSource, error) {
	classifier, err := llm.New(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.LLM.Provider == "KEYWORD" {
		logger.Info(ctx, "Using keyword sentiment classifier - no LLM calls will be made")
	} else {
		logger.Info(ctx, "Using LLM sentiment classifier",
			"provider", cfg.LLM.Provider,
			"model", cfg.LLM.Model,
		)
	}
	wrapped := llmobs.Wrap(classifier)

	provider := news.NewFeedProvider(cfg.News.Feeds)
	svcCfg := &news.ServiceConfig{
		MaxArticles:   cfg.News.MaxArticles,
		CacheDuration: time.Duration(cfg.News.CacheTTLSeconds) * time.Second,
	}
	return news.NewService(provider, wrapped, svcCfg), nil
}

// initializeAnalyzer initializes and returns the analyzer with observability
func initializeAnalyzer(cfg *store.Config, prices interfaces.PriceProvider, sentiment interfaces.SentimentSource) interfaces.Analyzer {
	// Create base analyzer
	analyzer := advisor.NewAnalyzer(prices, sentiment, cfg)

	// Wrap with observability middleware
	return advisorobs.Wrap(analyzer)
}

// initializeEOD wraps the default EOD summarizer with observability
func initializeEOD() {
	// Create base summarizer
	baseSummarizer := eod.NewSummarizer()

	// Wrap with observability middleware
	observableSummarizer := eodobs.Wrap(baseSummarizer)

	// Set as default summarizer
	eod.SetDefaultSummarizer(observableSummarizer)
}
