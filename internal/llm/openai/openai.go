package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"stock-news-advisor/internal/api"
	"stock-news-advisor/internal/interfaces"
	"stock-news-advisor/internal/store"
	"stock-news-advisor/internal/trace"
	"stock-news-advisor/internal/types"
)

const classifySchema = `{"sentiment":"POSITIVE|NEGATIVE|NEUTRAL","score":-1.0..1.0,"reasoning":"short explanation"}`

type OpenAIClassifier struct {
	cfg    *store.Config
	client *api.Client
}

var _ interfaces.Classifier = (*OpenAIClassifier)(nil)

func NewOpenAIClassifier(cfg *store.Config) *OpenAIClassifier {
	return &OpenAIClassifier{
		cfg: cfg,
		client: api.NewClient(
			api.WithTimeout(30*time.Second),
			api.WithLogging(true),
			api.WithHeader("Content-Type", "application/json"),
		),
	}
}

func (c *OpenAIClassifier) Name() string { return "openai" }

func (c *OpenAIClassifier) Classify(ctx context.Context, article types.NewsArticle) (types.NewsSignal, error) {
	ctx, span := trace.StartSpan(ctx, "openai-api-call")
	defer span.End()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return types.NewsSignal{}, errors.New("OPENAI_API_KEY missing")
	}

	item := map[string]any{"symbol": article.Symbol, "title": article.Title, "summary": article.Summary}
	ib, _ := json.Marshal(item)
	prompt := fmt.Sprintf("Classify the market sentiment of this Indian stock news item for the named symbol. Respond ONLY with compact JSON matching the schema.\nSchema:%s\nItem:%s", classifySchema, string(ib))

	body := map[string]any{
		"model": c.cfg.LLM.Model,
		"messages": []map[string]string{
			{"role": "system", "content": "You are a financial news sentiment classifier for Indian equities."},
			{"role": "user", "content": prompt},
		},
		"temperature": c.cfg.LLM.Temperature,
		"max_tokens":  c.cfg.LLM.MaxTokens,
	}
	resp, err := c.client.POST(ctx, "https://api.openai.com/v1/chat/completions", body,
		map[string]string{"Authorization": "Bearer " + apiKey})
	if err != nil {
		return types.NewsSignal{}, fmt.Errorf("openai request: %w", err)
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := resp.ParseJSON(&r); err != nil {
		return types.NewsSignal{}, err
	}

	if len(r.Choices) == 0 {
		return types.NewsSignal{}, errors.New("no choices")
	}

	out := strings.TrimSpace(r.Choices[0].Message.Content)
	return signalFromJSON(article, out), nil
}

// signalFromJSON validates the model output; malformed responses fall back
// to a neutral label rather than an error.
func signalFromJSON(article types.NewsArticle, out string) types.NewsSignal {
	signal := types.NewsSignal{
		Title:       article.Title,
		URL:         article.URL,
		Source:      article.Source,
		PublishedAt: article.PublishedAt,
		Label:       types.SentimentNeutral,
	}

	var parsed struct {
		Sentiment string  `json:"sentiment"`
		Score     float64 `json:"score"`
		Reasoning string  `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		signal.Reasoning = "invalid_json"
		return signal
	}

	switch strings.ToUpper(strings.TrimSpace(parsed.Sentiment)) {
	case "POSITIVE":
		signal.Label = types.SentimentPositive
	case "NEGATIVE":
		signal.Label = types.SentimentNegative
	case "NEUTRAL":
		signal.Label = types.SentimentNeutral
	default:
		signal.Reasoning = "invalid_label"
		return signal
	}

	if parsed.Score >= -1 && parsed.Score <= 1 {
		signal.Score = parsed.Score
		signal.HasScore = true
	}
	signal.Reasoning = parsed.Reasoning
	return signal
}
