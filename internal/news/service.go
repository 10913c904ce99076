package news

import (
	"context"
	"sync"
	"time"

	"stock-news-advisor/internal/interfaces"
	"stock-news-advisor/internal/logger"
	"stock-news-advisor/internal/types"
)

// Service composes a news provider with a classifier and caches the
// resulting signals per symbol.
type Service struct {
	provider    interfaces.NewsProvider
	classifier  interfaces.Classifier
	cache       *signalCache
	maxArticles int
}

var _ interfaces.SentimentSource = (*Service)(nil)

// ServiceConfig configures the news signal service
type ServiceConfig struct {
	MaxArticles   int           // Maximum articles to classify per symbol
	CacheDuration time.Duration // How long to cache classified signals
}

// DefaultServiceConfig returns default configuration
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		MaxArticles:   10,
		CacheDuration: 15 * time.Minute,
	}
}

// signalCache stores classified signals temporarily
type signalCache struct {
	mu   sync.RWMutex
	data map[string]*cacheEntry
	ttl  time.Duration
}

type cacheEntry struct {
	signals   []types.NewsSignal
	timestamp time.Time
}

func newSignalCache(ttl time.Duration) *signalCache {
	cache := &signalCache{
		data: make(map[string]*cacheEntry),
		ttl:  ttl,
	}

	go cache.cleanupLoop()

	return cache
}

func (c *signalCache) get(symbol string) ([]types.NewsSignal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.data[symbol]
	if !exists {
		return nil, false
	}
	if time.Since(entry.timestamp) > c.ttl {
		return nil, false
	}
	return entry.signals, true
}

func (c *signalCache) set(symbol string, signals []types.NewsSignal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[symbol] = &cacheEntry{
		signals:   signals,
		timestamp: time.Now(),
	}
}

// cleanupLoop periodically removes expired entries
func (c *signalCache) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

func (c *signalCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for symbol, entry := range c.data {
		if now.Sub(entry.timestamp) > c.ttl {
			delete(c.data, symbol)
		}
	}
}

// NewService creates a news signal service
func NewService(provider interfaces.NewsProvider, classifier interfaces.Classifier, cfg *ServiceConfig) *Service {
	if cfg == nil {
		cfg = DefaultServiceConfig()
	}
	return &Service{
		provider:    provider,
		classifier:  classifier,
		cache:       newSignalCache(cfg.CacheDuration),
		maxArticles: cfg.MaxArticles,
	}
}

// Signals returns classified news signals for a symbol, cached or fresh.
// No matching articles is an empty result, not an error.
func (s *Service) Signals(ctx context.Context, symbol string) ([]types.NewsSignal, error) {
	if cached, ok := s.cache.get(symbol); ok {
		logger.Debug(ctx, "Using cached news signals", "symbol", symbol, "count", len(cached))
		return cached, nil
	}
	return s.RefreshSignals(ctx, symbol)
}

// RefreshSignals bypasses the cache and refreshes signals for a symbol.
func (s *Service) RefreshSignals(ctx context.Context, symbol string) ([]types.NewsSignal, error) {
	signals, err := s.fetchFreshSignals(ctx, symbol)
	if err != nil {
		return nil, err
	}
	s.cache.set(symbol, signals)
	return signals, nil
}

func (s *Service) fetchFreshSignals(ctx context.Context, symbol string) ([]types.NewsSignal, error) {
	articles, err := s.provider.Fetch(ctx, symbol, s.maxArticles)
	if err != nil {
		return nil, err
	}

	signals := make([]types.NewsSignal, 0, len(articles))
	for _, article := range articles {
		signal, err := s.classifier.Classify(ctx, article)
		if err != nil {
			// One bad classification should not sink the rest.
			logger.Warn(ctx, "Classification failed, skipping article",
				"symbol", symbol, "title", article.Title, "error", err.Error())
			continue
		}
		signals = append(signals, signal)
	}

	logger.Info(ctx, "News signals refreshed",
		"symbol", symbol, "articles", len(articles), "signals", len(signals))
	return signals, nil
}
