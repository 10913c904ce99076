package marketdata

import (
	"context"
	"fmt"
	"time"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"stock-news-advisor/internal/interfaces"
	"stock-news-advisor/internal/types"
)

// Kite serves daily closes from the Zerodha Kite Connect historical API.
type Kite struct {
	kc       *kiteconnect.Client
	exchange string
}

var _ interfaces.PriceProvider = (*Kite)(nil)

func NewKite(apiKey, accessToken, exchange string) *Kite {
	kc := kiteconnect.New(apiKey)
	kc.SetAccessToken(accessToken)
	if exchange == "" {
		exchange = "NSE"
	}
	return &Kite{kc: kc, exchange: exchange}
}

func (k *Kite) PriceHistory(ctx context.Context, symbol string, days int) ([]types.PricePoint, error) {
	token, ok := instrumentToken(symbol)
	if !ok {
		return nil, fmt.Errorf("no instrument token for %s", symbol)
	}

	to := time.Now()
	from := to.AddDate(0, 0, -days)
	candles, err := k.kc.GetHistoricalData(token, "day", from, to, false, false)
	if err != nil {
		return nil, fmt.Errorf("kite historical data for %s: %w", symbol, err)
	}
	if len(candles) == 0 {
		return nil, fmt.Errorf("kite historical data for %s: empty", symbol)
	}

	points := make([]types.PricePoint, len(candles))
	for i, c := range candles {
		points[i] = types.PricePoint{Date: c.Date.Time, Close: c.Close}
	}
	return points, nil
}

func (k *Kite) LastPrice(ctx context.Context, symbol string) (float64, error) {
	instrument := k.exchange + ":" + symbol
	ltp, err := k.kc.GetLTP(instrument)
	if err != nil {
		return 0, fmt.Errorf("kite LTP for %s: %w", symbol, err)
	}
	quote, ok := ltp[instrument]
	if !ok {
		return 0, fmt.Errorf("kite LTP for %s: not in response", symbol)
	}
	return quote.LastPrice, nil
}

// instrumentToken maps NSE trading symbols to Kite instrument tokens.
// TODO: resolve from the Kite instruments dump instead of this static list.
func instrumentToken(symbol string) (int, bool) {
	tokens := map[string]int{
		"RELIANCE":   256265,
		"TCS":        2953217,
		"HDFCBANK":   341249,
		"INFY":       408065,
		"HCLTECH":    1850625,
		"LT":         2939649,
		"SBIN":       779521,
		"ICICIBANK":  1270529,
		"AXISBANK":   1510401,
		"KOTAKBANK":  492033,
		"ITC":        424961,
		"TATAMOTORS": 884737,
		"TITAN":      897537,
		"JSWSTEEL":   3001089,
		"ULTRACEMCO": 2952193,
		"BAJFINANCE": 81153,
		"HDFCLIFE":   119553,
		"BHARTIARTL": 2714625,
		"ASIANPAINT": 60417,
		"MARUTI":     2815745,
	}
	token, ok := tokens[symbol]
	return token, ok
}
