package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DataSource   string `yaml:"data_source"` // YAHOO, KITE or STATIC
	PollSeconds  int    `yaml:"poll_seconds"`
	Exchange     string `yaml:"exchange"`
	HoldingsCSV  string `yaml:"holdings_csv"`
	LookbackDays int    `yaml:"lookback_days"`
	Analysis     struct {
		SentimentBand     float64 `yaml:"sentiment_band"`
		ScoreThreshold    int     `yaml:"score_threshold"`
		OvervaluedPct     float64 `yaml:"overvalued_pct"`
		UndervaluedPct    float64 `yaml:"undervalued_pct"`
		ProfitTakePct     float64 `yaml:"profit_take_pct"`
		LossReviewPct     float64 `yaml:"loss_review_pct"`
		ShortMAWindow     int     `yaml:"short_ma_window"`
		LongMAWindow      int     `yaml:"long_ma_window"`
		ShortMomentumDays int     `yaml:"short_momentum_days"`
		LongMomentumDays  int     `yaml:"long_momentum_days"`
		RangeWindow       int     `yaml:"range_window"`
		BuyTargetPct      float64 `yaml:"buy_target_pct"`
		BuyStopPct        float64 `yaml:"buy_stop_pct"`
		HoldTargetPct     float64 `yaml:"hold_target_pct"`
		HoldStopPct       float64 `yaml:"hold_stop_pct"`
	} `yaml:"analysis"`
	News struct {
		Feeds           []string `yaml:"feeds"`
		MaxArticles     int      `yaml:"max_articles"`
		CacheTTLSeconds int      `yaml:"cache_ttl_seconds"`
	} `yaml:"news"`
	LLM struct {
		Provider    string  `yaml:"provider"` // OPENAI, GEMINI or KEYWORD
		Model       string  `yaml:"model"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float32 `yaml:"temperature"`
	} `yaml:"llm"`
	API struct {
		Enabled bool   `yaml:"enabled"`
		Addr    string `yaml:"addr"`
	} `yaml:"api"`
	RecLogDir string `yaml:"reclog_dir"`
	EODDir    string `yaml:"eod_dir"`
}

func (c *Config) Validate() error {
	switch c.DataSource {
	case "YAHOO", "KITE", "STATIC":
	default:
		return fmt.Errorf("invalid data_source '%s': must be 'YAHOO', 'KITE' or 'STATIC'", c.DataSource)
	}
	switch c.LLM.Provider {
	case "OPENAI", "GEMINI", "KEYWORD":
	default:
		return fmt.Errorf("invalid llm.provider '%s': must be 'OPENAI', 'GEMINI' or 'KEYWORD'", c.LLM.Provider)
	}
	if c.HoldingsCSV == "" {
		return fmt.Errorf("holdings_csv cannot be empty")
	}
	if c.Analysis.ScoreThreshold <= 0 {
		return fmt.Errorf("analysis.score_threshold must be positive, got %d", c.Analysis.ScoreThreshold)
	}
	if c.Analysis.SentimentBand < 0 || c.Analysis.SentimentBand > 1 {
		return fmt.Errorf("analysis.sentiment_band must be within [0,1], got %.2f", c.Analysis.SentimentBand)
	}
	if c.Analysis.ShortMAWindow >= c.Analysis.LongMAWindow {
		return fmt.Errorf("analysis.short_ma_window (%d) must be smaller than long_ma_window (%d)",
			c.Analysis.ShortMAWindow, c.Analysis.LongMAWindow)
	}
	if c.API.Enabled && c.API.Addr == "" {
		return fmt.Errorf("api.addr cannot be empty when api is enabled")
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

func applyDefaults(c *Config) {
	if c.DataSource == "" {
		c.DataSource = "STATIC"
	}
	if c.PollSeconds == 0 {
		c.PollSeconds = 900
	}
	if c.Exchange == "" {
		c.Exchange = "NSE"
	}
	if c.LookbackDays == 0 {
		c.LookbackDays = 90
	}
	a := &c.Analysis
	if a.SentimentBand == 0 {
		a.SentimentBand = 0.3
	}
	if a.ScoreThreshold == 0 {
		a.ScoreThreshold = 4
	}
	if a.OvervaluedPct == 0 {
		a.OvervaluedPct = 10
	}
	if a.UndervaluedPct == 0 {
		a.UndervaluedPct = 10
	}
	if a.ProfitTakePct == 0 {
		a.ProfitTakePct = 20
	}
	if a.LossReviewPct == 0 {
		a.LossReviewPct = 10
	}
	if a.ShortMAWindow == 0 {
		a.ShortMAWindow = 20
	}
	if a.LongMAWindow == 0 {
		a.LongMAWindow = 50
	}
	if a.ShortMomentumDays == 0 {
		a.ShortMomentumDays = 5
	}
	if a.LongMomentumDays == 0 {
		a.LongMomentumDays = 20
	}
	if a.RangeWindow == 0 {
		a.RangeWindow = 20
	}
	if a.BuyTargetPct == 0 {
		a.BuyTargetPct = 15
	}
	if a.BuyStopPct == 0 {
		a.BuyStopPct = 8
	}
	if a.HoldTargetPct == 0 {
		a.HoldTargetPct = 10
	}
	if a.HoldStopPct == 0 {
		a.HoldStopPct = 5
	}
	if len(c.News.Feeds) == 0 {
		c.News.Feeds = []string{
			"https://www.moneycontrol.com/rss/business.xml",
			"https://economictimes.indiatimes.com/markets/rssfeeds/1977021501.cms",
			"https://www.livemint.com/rss/markets",
			"https://www.business-standard.com/rss/markets-106.rss",
		}
	}
	if c.News.MaxArticles == 0 {
		c.News.MaxArticles = 10
	}
	if c.News.CacheTTLSeconds == 0 {
		c.News.CacheTTLSeconds = 900
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "KEYWORD"
	}
	if c.LLM.Model == "" {
		switch c.LLM.Provider {
		case "OPENAI":
			c.LLM.Model = "gpt-4o-mini"
		case "GEMINI":
			c.LLM.Model = "gemini-1.5-flash"
		}
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 300
	}
	if c.API.Addr == "" {
		c.API.Addr = ":8080"
	}
	if c.RecLogDir == "" {
		c.RecLogDir = "reclogs"
	}
	if c.EODDir == "" {
		c.EODDir = "eod"
	}
}
