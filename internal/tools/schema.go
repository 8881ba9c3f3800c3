package tools

import (
	"fmt"

	"github.com/dmaher/stockdata/internal/config"
	"github.com/dmaher/stockdata/internal/model"
)

// SchemaVersion identifies the tool contract. Bump on any change to tool
// names, parameters, or semantics.
const SchemaVersion = "1"

// Tool names.
const (
	ToolStockData          = "get_stock_data"
	ToolLatestPrices       = "get_latest_prices"
	ToolMarketOverview     = "get_market_overview"
	ToolHistoricalAnalysis = "get_historical_analysis"
	ToolMarketComparison   = "get_market_comparison"
)

// Property describes one tool parameter in JSON-schema form.
type Property struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Default     any      `json:"default,omitempty"`
}

// Parameters is the JSON-schema object block of a tool.
type Parameters struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

// Schema is one OpenAI-style function descriptor.
type Schema struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Parameters  Parameters `json:"parameters"`
}

func symbolProperty(desc string) Property {
	return Property{
		Type:        "string",
		Description: desc,
		Enum:        model.Symbols(),
	}
}

func daysProperty() Property {
	return Property{
		Type:        "integer",
		Description: fmt.Sprintf("Analysis window in trading days, 2 to %d.", config.DefaultMaxAnalysisDays),
		Default:     config.DefaultAnalysisDays,
	}
}

func dateProperty(desc string) Property {
	return Property{Type: "string", Description: desc + " (YYYY-MM-DD)."}
}

// Schemas returns the function descriptors for every dispatchable tool.
// The symbol enum comes from the instrument registry.
func Schemas() []Schema {
	return []Schema{
		{
			Name:        ToolStockData,
			Description: "List daily market data rows, newest first, with optional date filters and pagination.",
			Parameters: Parameters{
				Type: "object",
				Properties: map[string]Property{
					"limit": {
						Type:        "integer",
						Description: fmt.Sprintf("Maximum rows to return, 1 to %d.", config.DefaultMaxLimit),
						Default:     config.DefaultQueryLimit,
					},
					"offset": {
						Type:        "integer",
						Description: "Rows to skip before the first result.",
						Default:     0,
					},
					"date_eq":  dateProperty("Return only the row for this date"),
					"date_gte": dateProperty("Earliest date to include"),
					"date_lte": dateProperty("Latest date to include"),
				},
			},
		},
		{
			Name:        ToolLatestPrices,
			Description: "Get the most recent price for every tracked instrument.",
			Parameters: Parameters{
				Type:       "object",
				Properties: map[string]Property{},
			},
		},
		{
			Name:        ToolMarketOverview,
			Description: "Get the latest prices plus average, minimum, and maximum per instrument over the recent window.",
			Parameters: Parameters{
				Type:       "object",
				Properties: map[string]Property{},
			},
		},
		{
			Name:        ToolHistoricalAnalysis,
			Description: "Analyze one instrument's recent price history: change, volatility, trend, growth rate, and direction.",
			Parameters: Parameters{
				Type: "object",
				Properties: map[string]Property{
					"symbol": symbolProperty("Instrument to analyze."),
					"days":   daysProperty(),
				},
				Required: []string{"symbol"},
			},
		},
		{
			Name:        ToolMarketComparison,
			Description: "Compare two instruments over the same window: relative performance and volatility.",
			Parameters: Parameters{
				Type: "object",
				Properties: map[string]Property{
					"symbol_a": symbolProperty("First instrument."),
					"symbol_b": symbolProperty("Second instrument."),
					"days":     daysProperty(),
				},
				Required: []string{"symbol_a", "symbol_b"},
			},
		},
	}
}
