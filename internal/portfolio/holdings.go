package portfolio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"stock-news-advisor/internal/types"
)

// Format identifies the broker export dialect of a holdings CSV.
type Format string

const (
	FormatZerodha Format = "zerodha"
	FormatGroww   Format = "groww"
	FormatUpstox  Format = "upstox"
	FormatGeneric Format = "generic"
)

// columns maps the header names each broker uses for symbol, quantity and
// average buy price.
type columns struct {
	symbol string
	qty    string
	price  string
}

var formatColumns = map[Format]columns{
	FormatZerodha: {symbol: "tradingsymbol", qty: "quantity", price: "average_price"},
	FormatGroww:   {symbol: "stock_symbol", qty: "qty", price: "avg_buy_price"},
	FormatUpstox:  {symbol: "symbol", qty: "quantity", price: "buy_avg_price"},
	FormatGeneric: {symbol: "symbol", qty: "quantity", price: "avg_price"},
}

// detection order matters: upstox and generic share the "symbol" column.
var detectionOrder = []Format{FormatZerodha, FormatGroww, FormatUpstox, FormatGeneric}

// LoadHoldings reads a broker holdings export and returns the parsed
// positions with the detected dialect.
func LoadHoldings(path string) ([]types.Holding, Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open holdings csv: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads holdings from CSV data. Rows with a blank symbol or a
// non-positive quantity are skipped; duplicate symbols are merged with a
// quantity-weighted average price.
func Parse(r io.Reader) ([]types.Holding, Format, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, "", fmt.Errorf("read csv header: %w", err)
	}

	format, index, err := detectFormat(header)
	if err != nil {
		return nil, "", err
	}

	merged := make(map[string]*types.Holding)
	var order []string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", fmt.Errorf("read csv row: %w", err)
		}

		h, ok := parseRow(row, index)
		if !ok {
			continue
		}

		if existing, seen := merged[h.Symbol]; seen {
			total := existing.Quantity + h.Quantity
			existing.AvgPrice = (existing.AvgPrice*float64(existing.Quantity) +
				h.AvgPrice*float64(h.Quantity)) / float64(total)
			existing.Quantity = total
			continue
		}
		merged[h.Symbol] = &h
		order = append(order, h.Symbol)
	}

	holdings := make([]types.Holding, 0, len(order))
	for _, symbol := range order {
		holdings = append(holdings, *merged[symbol])
	}
	return holdings, format, nil
}

type rowIndex struct {
	symbol int
	qty    int
	price  int
}

func detectFormat(header []string) (Format, rowIndex, error) {
	normalized := make(map[string]int, len(header))
	for i, h := range header {
		normalized[strings.ToLower(strings.TrimSpace(h))] = i
	}

	for _, format := range detectionOrder {
		cols := formatColumns[format]
		si, sok := normalized[cols.symbol]
		qi, qok := normalized[cols.qty]
		pi, pok := normalized[cols.price]
		if sok && qok && pok {
			return format, rowIndex{symbol: si, qty: qi, price: pi}, nil
		}
	}
	return "", rowIndex{}, fmt.Errorf("unrecognized holdings csv header: %v", header)
}

func parseRow(row []string, index rowIndex) (types.Holding, bool) {
	max := index.symbol
	if index.qty > max {
		max = index.qty
	}
	if index.price > max {
		max = index.price
	}
	if len(row) <= max {
		return types.Holding{}, false
	}

	symbol := strings.ToUpper(strings.TrimSpace(row[index.symbol]))
	if symbol == "" {
		return types.Holding{}, false
	}

	qty, err := strconv.ParseFloat(strings.TrimSpace(row[index.qty]), 64)
	if err != nil || qty <= 0 {
		return types.Holding{}, false
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(row[index.price]), 64)
	if err != nil || price < 0 {
		return types.Holding{}, false
	}

	return types.Holding{
		Symbol:   symbol,
		Quantity: int(qty),
		AvgPrice: price,
	}, true
}
