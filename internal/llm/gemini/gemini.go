package gemini

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

type GeminiClassifier struct {
	cfg    *store.Config
	client *api.Client
}

var _ interfaces.Classifier = (*GeminiClassifier)(nil)

func NewGeminiClassifier(cfg *store.Config) *GeminiClassifier {
	return &GeminiClassifier{
		cfg: cfg,
		client: api.NewClient(
			api.WithTimeout(30*time.Second),
			api.WithLogging(true),
			api.WithHeader("Content-Type", "application/json"),
		),
	}
}

func (c *GeminiClassifier) Name() string { return "gemini" }

func (c *GeminiClassifier) Classify(ctx context.Context, article types.NewsArticle) (types.NewsSignal, error) {
	ctx, span := trace.StartSpan(ctx, "gemini-api-call")
	defer span.End()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return types.NewsSignal{}, errors.New("GEMINI_API_KEY missing")
	}

	item := map[string]any{"symbol": article.Symbol, "title": article.Title, "summary": article.Summary}
	ib, _ := json.Marshal(item)
	prompt := fmt.Sprintf("Classify the market sentiment of this Indian stock news item for the named symbol. Respond ONLY with compact JSON matching the schema.\nSchema:%s\nItem:%s", classifySchema, string(ib))

	body := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
		"generationConfig": map[string]any{
			"temperature":     c.cfg.LLM.Temperature,
			"maxOutputTokens": c.cfg.LLM.MaxTokens,
		},
	}
	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		c.cfg.LLM.Model, apiKey)
	resp, err := c.client.POST(ctx, url, body)
	if err != nil {
		return types.NewsSignal{}, fmt.Errorf("gemini request: %w", err)
	}

	var r struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := resp.ParseJSON(&r); err != nil {
		return types.NewsSignal{}, err
	}

	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return types.NewsSignal{}, errors.New("no candidates")
	}

	out := strings.TrimSpace(r.Candidates[0].Content.Parts[0].Text)
	// Gemini wraps JSON in markdown fences more often than not.
	out = strings.TrimPrefix(out, "```json")
	out = strings.TrimPrefix(out, "```")
	out = strings.TrimSuffix(out, "```")
	out = strings.TrimSpace(out)

	return signalFromJSON(article, out), nil
}

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
