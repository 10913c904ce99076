package types

import "time"

// PricePoint is one daily closing price supplied by a price provider,
// ordered ascending by date.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// Sentiment is the categorical label attached to a news article.
type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNegative Sentiment = "NEGATIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
)

// NewsArticle is a raw feed item before sentiment classification.
type NewsArticle struct {
	Symbol      string    `json:"symbol"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
}

// NewsSignal is one classified article: a categorical label plus an
// optional numeric score in [-1,1]. HasScore is false when the classifier
// produced only a label.
type NewsSignal struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
	Label       Sentiment `json:"label"`
	Score       float64   `json:"score"`
	HasScore    bool      `json:"has_score"`
	Reasoning   string    `json:"reasoning,omitempty"`
}

type Trend string

const (
	TrendUp       Trend = "UPTREND"
	TrendDown     Trend = "DOWNTREND"
	TrendSideways Trend = "SIDEWAYS"
)

// TechnicalSnapshot is derived from a price sequence on each analysis
// request; it is never persisted.
type TechnicalSnapshot struct {
	Trend        Trend   `json:"trend"`
	MA20         float64 `json:"ma_20"`
	MA50         float64 `json:"ma_50,omitempty"` // zero when the window is too short
	Support      float64 `json:"support"`
	Resistance   float64 `json:"resistance"`
	Momentum5d   float64 `json:"momentum_5d"`  // percent
	Momentum20d  float64 `json:"momentum_20d"` // percent
	Volatility   float64 `json:"volatility"`   // stddev of closes over the range window
	CurrentPrice float64 `json:"current_price"`
}

type ValuationStatus string

const (
	Overvalued  ValuationStatus = "OVERVALUED"
	Undervalued ValuationStatus = "UNDERVALUED"
	FairValue   ValuationStatus = "FAIR_VALUE"
)

// ValuationAssessment compares current price against the trailing average
// of the full price window.
type ValuationAssessment struct {
	Status       ValuationStatus `json:"status"`
	DeviationPct float64         `json:"deviation_percent"`
	TrailingAvg  float64         `json:"trailing_avg"`
}

// SentimentSummary reduces a set of news signals to one score and counts.
type SentimentSummary struct {
	Score    float64 `json:"score"` // [-1,1]
	Positive int     `json:"positive_count"`
	Negative int     `json:"negative_count"`
	Neutral  int     `json:"neutral_count"`
}

// Total returns the number of signals behind the summary.
func (s SentimentSummary) Total() int { return s.Positive + s.Negative + s.Neutral }

// Holding is one position from the caller's portfolio.
type Holding struct {
	Symbol   string  `json:"symbol"`
	Quantity int     `json:"quantity"`
	AvgPrice float64 `json:"avg_price"`
}

// UnrealizedGainPct returns the percent gain of the holding at the given
// current price, zero when the holding has no cost basis.
func (h Holding) UnrealizedGainPct(current float64) float64 {
	if h.AvgPrice <= 0 {
		return 0
	}
	return (current - h.AvgPrice) / h.AvgPrice * 100
}

type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Recommendation is the output of the scorer. It carries no timestamp so
// that identical inputs always produce identical output; the caller stamps
// it when persisting.
type Recommendation struct {
	Symbol      string    `json:"symbol"`
	Action      Action    `json:"action"`
	Confidence  float64   `json:"confidence"` // percent, [0,100]
	Risk        RiskLevel `json:"risk_level"`
	TargetPrice float64   `json:"target_price,omitempty"`
	StopLoss    float64   `json:"stop_loss,omitempty"`
	Reasoning   string    `json:"reasoning"`
	BuyScore    int       `json:"buy_score"`
	SellScore   int       `json:"sell_score"`
	RulesFired  []string  `json:"rules_fired,omitempty"`
}

// AnalysisResult bundles everything derived for one symbol in one pass.
type AnalysisResult struct {
	Symbol            string              `json:"symbol"`
	CurrentPrice      float64             `json:"current_price"`
	Technical         TechnicalSnapshot   `json:"technical"`
	Valuation         ValuationAssessment `json:"valuation"`
	Sentiment         SentimentSummary    `json:"sentiment"`
	Signals           []NewsSignal        `json:"signals,omitempty"`
	UnrealizedGainPct float64             `json:"unrealized_gain_percent"`
	Recommendation    Recommendation      `json:"recommendation"`
}

// SymbolFailure records a symbol whose analysis was unavailable and why.
// Failed symbols are reported, never defaulted to HOLD.
type SymbolFailure struct {
	Symbol string `json:"symbol"`
	Reason string `json:"reason"`
}

// PortfolioSummary aggregates one analysis pass over all holdings.
type PortfolioSummary struct {
	Analyzed          int `json:"analyzed"`
	Unavailable       int `json:"unavailable"`
	BuyCount          int `json:"buy_recommendations"`
	SellCount         int `json:"sell_recommendations"`
	HoldCount         int `json:"hold_recommendations"`
	HighRiskCount     int `json:"high_risk_count"`
	PositiveSentiment int `json:"positive_sentiment"`
	NegativeSentiment int `json:"negative_sentiment"`
}

// PortfolioAnalysis is the full result of one portfolio pass.
type PortfolioAnalysis struct {
	Results  []AnalysisResult `json:"results"`
	Failures []SymbolFailure  `json:"failures,omitempty"`
	Summary  PortfolioSummary `json:"summary"`
}
