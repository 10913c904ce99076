package llm

import (
	"fmt"

	"stock-news-advisor/internal/interfaces"
	"stock-news-advisor/internal/llm/gemini"
	"stock-news-advisor/internal/llm/keyword"
	"stock-news-advisor/internal/llm/openai"
	"stock-news-advisor/internal/store"
)

// New builds the classifier named by config.
func New(cfg *store.Config) (interfaces.Classifier, error) {
	switch cfg.LLM.Provider {
	case "OPENAI":
		return openai.NewOpenAIClassifier(cfg), nil
	case "GEMINI":
		return gemini.NewGeminiClassifier(cfg), nil
	case "KEYWORD":
		return keyword.NewKeywordClassifier(), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
}
