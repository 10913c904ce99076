package news

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"stock-news-advisor/internal/interfaces"
	"stock-news-advisor/internal/logger"
	"stock-news-advisor/internal/types"
)

// Source is one RSS feed of Indian financial news.
type Source struct {
	Name   string
	RSSURL string
}

// FeedProvider fetches articles from configured RSS feeds and filters them
// by symbol mention. A failing source is skipped; the fetch fails only when
// every source fails.
type FeedProvider struct {
	sources []Source
	parser  *gofeed.Parser
}

var _ interfaces.NewsProvider = (*FeedProvider)(nil)

func NewFeedProvider(feedURLs []string) *FeedProvider {
	sources := make([]Source, 0, len(feedURLs))
	for _, u := range feedURLs {
		sources = append(sources, Source{Name: sourceName(u), RSSURL: u})
	}
	return &FeedProvider{
		sources: sources,
		parser:  gofeed.NewParser(),
	}
}

func sourceName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return strings.TrimPrefix(u.Host, "www.")
}

func (f *FeedProvider) Fetch(ctx context.Context, symbol string, limit int) ([]types.NewsArticle, error) {
	var all []types.NewsArticle
	failed := 0
	var lastErr error

	for _, src := range f.sources {
		articles, err := f.fetchRSS(ctx, src)
		if err != nil {
			// Non-critical: skip failed sources.
			logger.Warn(ctx, "News source failed", "source", src.Name, "error", err.Error())
			failed++
			lastErr = err
			continue
		}
		all = append(all, articles...)
	}

	if failed == len(f.sources) && len(f.sources) > 0 {
		return nil, fmt.Errorf("all %d news sources failed: %w", failed, lastErr)
	}

	keywords := symbolKeywords(symbol)
	var matched []types.NewsArticle
	for _, a := range all {
		if matchesAny(a.Title+" "+a.Summary, keywords) {
			a.Symbol = symbol
			matched = append(matched, a)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].PublishedAt.After(matched[j].PublishedAt)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *FeedProvider) fetchRSS(ctx context.Context, src Source) ([]types.NewsArticle, error) {
	feed, err := f.parser.ParseURLWithContext(src.RSSURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse RSS %s: %w", src.Name, err)
	}

	articles := make([]types.NewsArticle, 0, len(feed.Items))
	for _, item := range feed.Items {
		a := types.NewsArticle{
			Title:   item.Title,
			URL:     item.Link,
			Source:  src.Name,
			Summary: cleanHTML(item.Description),
		}
		if item.PublishedParsed != nil {
			a.PublishedAt = *item.PublishedParsed
		}
		articles = append(articles, a)
	}
	return articles, nil
}

// cleanHTML strips HTML tags from a string using goquery.
func cleanHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}

// symbolKeywords returns search keywords for an NSE symbol, e.g.
// "RELIANCE" matches "reliance industries" and "ril" as well.
func symbolKeywords(symbol string) []string {
	s := strings.ToLower(symbol)
	keywords := []string{s}

	nameMap := map[string][]string{
		"reliance":   {"reliance industries", "ril", "mukesh ambani"},
		"tcs":        {"tata consultancy"},
		"hdfcbank":   {"hdfc bank"},
		"infy":       {"infosys"},
		"icicibank":  {"icici bank"},
		"hindunilvr": {"hindustan unilever", "hul"},
		"sbin":       {"sbi", "state bank"},
		"bhartiartl": {"bharti airtel", "airtel"},
		"kotakbank":  {"kotak mahindra", "kotak bank"},
		"lt":         {"larsen", "l&t"},
		"bajfinance": {"bajaj finance"},
		"axisbank":   {"axis bank"},
		"maruti":     {"maruti suzuki"},
		"tatamotors": {"tata motors"},
		"tatasteel":  {"tata steel"},
		"hcltech":    {"hcl tech", "hcl technologies"},
		"asianpaint": {"asian paints"},
		"sunpharma":  {"sun pharma", "sun pharmaceutical"},
		"ongc":       {"oil and natural gas"},
	}
	if extra, ok := nameMap[s]; ok {
		keywords = append(keywords, extra...)
	}
	return keywords
}

// matchesAny checks if text contains any of the keywords (case-insensitive).
func matchesAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
