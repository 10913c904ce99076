package portfolio

import (
	"math"
	"strings"
	"testing"
)

func TestParseBrokerFormats(t *testing.T) {
	tests := []struct {
		name   string
		csv    string
		format Format
	}{
		{
			name: "zerodha",
			csv: "tradingsymbol,quantity,average_price\n" +
				"RELIANCE,10,2450.50\n" +
				"TCS,5,3200.00\n",
			format: FormatZerodha,
		},
		{
			name: "groww",
			csv: "stock_symbol,qty,avg_buy_price\n" +
				"RELIANCE,10,2450.50\n" +
				"TCS,5,3200.00\n",
			format: FormatGroww,
		},
		{
			name: "upstox",
			csv: "symbol,quantity,buy_avg_price\n" +
				"RELIANCE,10,2450.50\n" +
				"TCS,5,3200.00\n",
			format: FormatUpstox,
		},
		{
			name: "generic",
			csv: "symbol,quantity,avg_price\n" +
				"RELIANCE,10,2450.50\n" +
				"TCS,5,3200.00\n",
			format: FormatGeneric,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			holdings, format, err := Parse(strings.NewReader(tt.csv))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if format != tt.format {
				t.Errorf("format = %s, want %s", format, tt.format)
			}
			if len(holdings) != 2 {
				t.Fatalf("len = %d, want 2", len(holdings))
			}
			if holdings[0].Symbol != "RELIANCE" || holdings[0].Quantity != 10 || holdings[0].AvgPrice != 2450.50 {
				t.Errorf("first holding = %+v", holdings[0])
			}
		})
	}
}

func TestParseExtraColumnsAndCase(t *testing.T) {
	csv := "Tradingsymbol,exchange,Quantity,Average_Price,pnl\n" +
		"infy,NSE,12,1500.25,420.0\n"
	holdings, format, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if format != FormatZerodha {
		t.Errorf("format = %s, want zerodha", format)
	}
	if holdings[0].Symbol != "INFY" {
		t.Errorf("symbol = %q, want INFY (uppercased)", holdings[0].Symbol)
	}
}

func TestParseSkipsInvalidRows(t *testing.T) {
	csv := "symbol,quantity,avg_price\n" +
		",10,100\n" +
		"SBIN,0,100\n" +
		"ITC,-5,100\n" +
		"LT,notanumber,100\n" +
		"TITAN,3,850\n"
	holdings, _, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(holdings) != 1 || holdings[0].Symbol != "TITAN" {
		t.Errorf("holdings = %+v, want only TITAN", holdings)
	}
}

func TestParseMergesDuplicates(t *testing.T) {
	csv := "symbol,quantity,avg_price\n" +
		"SBIN,10,500\n" +
		"SBIN,10,700\n"
	holdings, _, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(holdings) != 1 {
		t.Fatalf("len = %d, want 1 merged holding", len(holdings))
	}
	if holdings[0].Quantity != 20 {
		t.Errorf("quantity = %d, want 20", holdings[0].Quantity)
	}
	if math.Abs(holdings[0].AvgPrice-600) > 1e-9 {
		t.Errorf("avg price = %v, want 600", holdings[0].AvgPrice)
	}
}

func TestParseUnknownHeader(t *testing.T) {
	csv := "name,shares,cost\nRELIANCE,10,2450\n"
	if _, _, err := Parse(strings.NewReader(csv)); err == nil {
		t.Fatal("expected error for unknown header")
	}
}

func TestLoadHoldingsMissingFile(t *testing.T) {
	if _, _, err := LoadHoldings("/nonexistent/holdings.csv"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
