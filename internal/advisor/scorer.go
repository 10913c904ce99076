package advisor

import (
	"fmt"
	"strings"

	"stock-news-advisor/internal/types"
)

// ScorerConfig carries the tuning constants of the rule table. They are
// arbitrary by origin, so every one is overridable; zero values fall back
// to the conventional setup.
type ScorerConfig struct {
	SentimentBand  float64 // rule trigger band for the aggregate score
	ScoreThreshold int     // minimum winning score to leave HOLD
	ProfitTakePct  float64 // unrealized gain that invites profit taking
	LossReviewPct  float64 // unrealized loss that pairs with bad news
	BuyTargetPct   float64
	BuyStopPct     float64
	HoldTargetPct  float64
	HoldStopPct    float64
}

func (c ScorerConfig) withDefaults() ScorerConfig {
	if c.SentimentBand == 0 {
		c.SentimentBand = 0.3
	}
	if c.ScoreThreshold == 0 {
		c.ScoreThreshold = 4
	}
	if c.ProfitTakePct == 0 {
		c.ProfitTakePct = 20
	}
	if c.LossReviewPct == 0 {
		c.LossReviewPct = 10
	}
	if c.BuyTargetPct == 0 {
		c.BuyTargetPct = 15
	}
	if c.BuyStopPct == 0 {
		c.BuyStopPct = 8
	}
	if c.HoldTargetPct == 0 {
		c.HoldTargetPct = 10
	}
	if c.HoldStopPct == 0 {
		c.HoldStopPct = 5
	}
	return c
}

// ScoreInput is the full snapshot the scorer evaluates. Technical,
// Valuation and Sentiment are required; UnrealizedGainPct is zero for
// symbols the caller does not hold.
type ScoreInput struct {
	Symbol            string
	Technical         *types.TechnicalSnapshot
	Valuation         *types.ValuationAssessment
	Sentiment         *types.SentimentSummary
	UnrealizedGainPct float64
}

type ruleSide int

const (
	buySide ruleSide = iota
	sellSide
)

// rule is one named condition of the additive heuristic. eval returns
// whether the rule fired and a line for the reasoning text.
type rule struct {
	name   string
	side   ruleSide
	points int
	eval   func(in ScoreInput, cfg ScorerConfig) (bool, string)
}

// ruleTable is the complete, enumerable rule set. Reasoning text and tests
// refer to rules by name, so names are part of the output contract.
var ruleTable = []rule{
	{
		name: "positive_sentiment", side: buySide, points: 2,
		eval: func(in ScoreInput, cfg ScorerConfig) (bool, string) {
			if in.Sentiment.Score > cfg.SentimentBand {
				return true, fmt.Sprintf("news sentiment %.2f above +%.2f", in.Sentiment.Score, cfg.SentimentBand)
			}
			return false, ""
		},
	},
	{
		name: "negative_sentiment", side: sellSide, points: 2,
		eval: func(in ScoreInput, cfg ScorerConfig) (bool, string) {
			if in.Sentiment.Score < -cfg.SentimentBand {
				return true, fmt.Sprintf("news sentiment %.2f below -%.2f", in.Sentiment.Score, cfg.SentimentBand)
			}
			return false, ""
		},
	},
	{
		name: "uptrend", side: buySide, points: 2,
		eval: func(in ScoreInput, cfg ScorerConfig) (bool, string) {
			if in.Technical.Trend == types.TrendUp {
				return true, "price in uptrend"
			}
			return false, ""
		},
	},
	{
		name: "downtrend", side: sellSide, points: 2,
		eval: func(in ScoreInput, cfg ScorerConfig) (bool, string) {
			if in.Technical.Trend == types.TrendDown {
				return true, "price in downtrend"
			}
			return false, ""
		},
	},
	{
		name: "positive_momentum", side: buySide, points: 1,
		eval: func(in ScoreInput, cfg ScorerConfig) (bool, string) {
			if in.Technical.Momentum5d > 0 && in.Technical.Momentum20d > 0 {
				return true, fmt.Sprintf("momentum positive over 5d (%.1f%%) and 20d (%.1f%%)",
					in.Technical.Momentum5d, in.Technical.Momentum20d)
			}
			return false, ""
		},
	},
	{
		name: "negative_momentum", side: sellSide, points: 1,
		eval: func(in ScoreInput, cfg ScorerConfig) (bool, string) {
			if in.Technical.Momentum5d < 0 && in.Technical.Momentum20d < 0 {
				return true, fmt.Sprintf("momentum negative over 5d (%.1f%%) and 20d (%.1f%%)",
					in.Technical.Momentum5d, in.Technical.Momentum20d)
			}
			return false, ""
		},
	},
	{
		name: "undervalued", side: buySide, points: 2,
		eval: func(in ScoreInput, cfg ScorerConfig) (bool, string) {
			if in.Valuation.Status == types.Undervalued {
				return true, fmt.Sprintf("undervalued %.1f%% vs trailing average", in.Valuation.DeviationPct)
			}
			return false, ""
		},
	},
	{
		name: "overvalued", side: sellSide, points: 2,
		eval: func(in ScoreInput, cfg ScorerConfig) (bool, string) {
			if in.Valuation.Status == types.Overvalued {
				return true, fmt.Sprintf("overvalued %.1f%% vs trailing average", in.Valuation.DeviationPct)
			}
			return false, ""
		},
	},
	{
		name: "profit_taking", side: sellSide, points: 1,
		eval: func(in ScoreInput, cfg ScorerConfig) (bool, string) {
			if in.UnrealizedGainPct > cfg.ProfitTakePct {
				return true, fmt.Sprintf("unrealized gain %.1f%% invites profit taking", in.UnrealizedGainPct)
			}
			return false, ""
		},
	},
	{
		name: "loss_with_negative_news", side: sellSide, points: 1,
		eval: func(in ScoreInput, cfg ScorerConfig) (bool, string) {
			if in.UnrealizedGainPct < -cfg.LossReviewPct && in.Sentiment.Score < 0 {
				return true, fmt.Sprintf("unrealized loss %.1f%% with negative news", in.UnrealizedGainPct)
			}
			return false, ""
		},
	},
	{
		name: "average_down", side: buySide, points: 1,
		eval: func(in ScoreInput, cfg ScorerConfig) (bool, string) {
			if in.UnrealizedGainPct < 0 && in.Sentiment.Score > 0 {
				return true, fmt.Sprintf("position down %.1f%% while news is positive", in.UnrealizedGainPct)
			}
			return false, ""
		},
	},
}

// RuleNames returns the names of the full rule table in evaluation order.
func RuleNames() []string {
	names := make([]string, len(ruleTable))
	for i, r := range ruleTable {
		names[i] = r.name
	}
	return names
}

// Score evaluates the rule table against one input snapshot. It is a pure
// function: identical inputs produce bit-identical recommendations, and no
// timestamp is stamped here.
func Score(in ScoreInput, cfg ScorerConfig) (*types.Recommendation, error) {
	if in.Technical == nil {
		return nil, &MissingInputError{Field: "technical snapshot"}
	}
	if in.Valuation == nil {
		return nil, &MissingInputError{Field: "valuation assessment"}
	}
	if in.Sentiment == nil {
		return nil, &MissingInputError{Field: "sentiment summary"}
	}
	cfg = cfg.withDefaults()

	buyScore, sellScore := 0, 0
	var fired []string
	var reasons []string
	for _, r := range ruleTable {
		ok, why := r.eval(in, cfg)
		if !ok {
			continue
		}
		if r.side == buySide {
			buyScore += r.points
		} else {
			sellScore += r.points
		}
		fired = append(fired, r.name)
		reasons = append(reasons, why)
	}

	action := types.ActionHold
	switch {
	case buyScore > sellScore && buyScore >= cfg.ScoreThreshold:
		action = types.ActionBuy
	case sellScore > buyScore && sellScore >= cfg.ScoreThreshold:
		action = types.ActionSell
	}

	rec := &types.Recommendation{
		Symbol:     in.Symbol,
		Action:     action,
		Confidence: confidence(action, buyScore, sellScore, cfg.ScoreThreshold),
		Risk:       riskLevel(in),
		Reasoning:  reasoning(action, buyScore, sellScore, reasons),
		BuyScore:   buyScore,
		SellScore:  sellScore,
		RulesFired: fired,
	}

	current := in.Technical.CurrentPrice
	switch action {
	case types.ActionBuy:
		rec.TargetPrice = current * (1 + cfg.BuyTargetPct/100)
		rec.StopLoss = current * (1 - cfg.BuyStopPct/100)
	case types.ActionHold:
		rec.TargetPrice = current * (1 + cfg.HoldTargetPct/100)
		rec.StopLoss = current * (1 - cfg.HoldStopPct/100)
	}

	return rec, nil
}

// confidence maps the winning score's margin over the threshold to
// [0,100]: 50 at the threshold, +10 per extra point, capped at 100. HOLD
// carries a flat 60. The mapping is monotonic in the winning score.
func confidence(action types.Action, buyScore, sellScore, threshold int) float64 {
	switch action {
	case types.ActionBuy:
		return min100(50 + float64(buyScore-threshold)*10)
	case types.ActionSell:
		return min100(50 + float64(sellScore-threshold)*10)
	default:
		return 60
	}
}

func min100(v float64) float64 {
	if v > 100 {
		return 100
	}
	return v
}

func riskLevel(in ScoreInput) types.RiskLevel {
	switch {
	case in.Technical.Trend == types.TrendDown && in.Sentiment.Score < 0:
		return types.RiskHigh
	case in.Technical.Trend == types.TrendUp && in.Sentiment.Score > 0:
		return types.RiskLow
	default:
		return types.RiskMedium
	}
}

func reasoning(action types.Action, buyScore, sellScore int, reasons []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (buy %d / sell %d)", action, buyScore, sellScore)
	if len(reasons) == 0 {
		b.WriteString(": no scoring rules fired")
		return b.String()
	}
	b.WriteString(": ")
	b.WriteString(strings.Join(reasons, "; "))
	return b.String()
}
