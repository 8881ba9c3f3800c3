package nlquery

import (
	"reflect"
	"testing"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		query       string
		wantIntent  string
		wantSymbols []string
		wantDate    string
	}{
		{"compare apple and gold", IntentCompare, []string{"AAPL", "GOLD"}, ""},
		{"bitcoin vs ethereum", IntentCompare, []string{"BTC", "ETH"}, ""},
		{"is tesla doing better than nvidia", IntentCompare, []string{"TSLA", "NVDA"}, ""},
		{"how is tesla trending", IntentAnalysis, []string{"TSLA"}, ""},
		{"nvda volatility", IntentAnalysis, []string{"NVDA"}, ""},
		{"natural gas performance", IntentAnalysis, []string{"NATURAL_GAS"}, ""},
		{"analyze the s&p 500", IntentAnalysis, []string{"SPY"}, ""},
		{"goog momentum", IntentAnalysis, []string{"GOOGL"}, ""},
		{"apple", IntentAnalysis, []string{"AAPL"}, ""},
		{"show me the data", IntentListRows, nil, ""},
		{"rows for 2024-01-03", IntentListRows, nil, "2024-01-03"},
		{"show apple rows", IntentListRows, []string{"AAPL"}, ""},
		{"latest prices", IntentLatest, nil, ""},
		{"what is the current price", IntentLatest, nil, ""},
		{"how is the market", IntentOverview, nil, ""},
		{"hello", IntentOverview, nil, ""},
		{"", IntentOverview, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			d := Route(tt.query)
			if d.Intent != tt.wantIntent {
				t.Errorf("intent = %q, want %q", d.Intent, tt.wantIntent)
			}
			if !reflect.DeepEqual(d.Symbols, tt.wantSymbols) {
				t.Errorf("symbols = %v, want %v", d.Symbols, tt.wantSymbols)
			}
			if d.Date != tt.wantDate {
				t.Errorf("date = %q, want %q", d.Date, tt.wantDate)
			}
		})
	}
}

func TestRouteThreeInstrumentsKeepsFirstTwo(t *testing.T) {
	d := Route("apple microsoft google")
	if d.Intent != IntentCompare {
		t.Fatalf("intent = %q, want %q", d.Intent, IntentCompare)
	}
	want := []string{"AAPL", "MSFT"}
	if !reflect.DeepEqual(d.Symbols, want) {
		t.Errorf("symbols = %v, want %v", d.Symbols, want)
	}
}

func TestRouteDeduplicatesMentions(t *testing.T) {
	d := Route("apple aapl trend")
	if d.Intent != IntentAnalysis {
		t.Errorf("intent = %q, want %q", d.Intent, IntentAnalysis)
	}
	if len(d.Symbols) != 1 || d.Symbols[0] != "AAPL" {
		t.Errorf("symbols = %v, want [AAPL]", d.Symbols)
	}
}
