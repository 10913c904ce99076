package marketdata

import (
	"fmt"
	"os"

	"stock-news-advisor/internal/interfaces"
	"stock-news-advisor/internal/store"
)

// New builds the price provider named by config. Kite credentials come
// from the environment so they never land in config files.
func New(cfg *store.Config) (interfaces.PriceProvider, error) {
	switch cfg.DataSource {
	case "YAHOO":
		return NewYahoo(), nil
	case "KITE":
		apiKey := os.Getenv("KITE_API_KEY")
		accessToken := os.Getenv("KITE_ACCESS_TOKEN")
		if apiKey == "" || accessToken == "" {
			return nil, fmt.Errorf("data_source KITE requires KITE_API_KEY and KITE_ACCESS_TOKEN")
		}
		return NewKite(apiKey, accessToken, cfg.Exchange), nil
	case "STATIC":
		return NewStatic(), nil
	default:
		return nil, fmt.Errorf("unknown data_source %q", cfg.DataSource)
	}
}
