package model

import "strings"

// Category groups instruments for documentation and UI purposes only.
// Query logic never branches on it.
type Category string

const (
	CategoryTechStock Category = "tech_stock"
	CategoryIndex     Category = "index"
	CategoryCommodity Category = "commodity"
	CategoryCrypto    Category = "crypto"
)

// Instrument is one tradable symbol tracked by date.
type Instrument struct {
	Symbol    string   // canonical key, e.g. "AAPL"
	Key       string   // column stem, e.g. "apple"
	Label     string   // human label
	Category  Category
	HasVolume bool // false for instruments without a volume column
}

// PriceColumn returns the name of the instrument's price column.
func (i Instrument) PriceColumn() string {
	return i.Key + "_price"
}

// VolumeColumn returns the name of the instrument's volume column
// and false if the instrument has no volume data.
func (i Instrument) VolumeColumn() (string, bool) {
	if !i.HasVolume {
		return "", false
	}
	return i.Key + "_vol", true
}

// instruments is the fixed set of tracked instruments, in column order
// of the source dataset.
var instruments = []Instrument{
	{Symbol: "NATURAL_GAS", Key: "natural_gas", Label: "Natural Gas", Category: CategoryCommodity, HasVolume: true},
	{Symbol: "OIL", Key: "crude_oil", Label: "Crude Oil", Category: CategoryCommodity, HasVolume: true},
	{Symbol: "COPPER", Key: "copper", Label: "Copper", Category: CategoryCommodity, HasVolume: true},
	{Symbol: "BTC", Key: "bitcoin", Label: "Bitcoin", Category: CategoryCrypto, HasVolume: true},
	{Symbol: "PLATINUM", Key: "platinum", Label: "Platinum", Category: CategoryCommodity, HasVolume: true},
	{Symbol: "ETH", Key: "ethereum", Label: "Ethereum", Category: CategoryCrypto, HasVolume: true},
	{Symbol: "SPY", Key: "s_p_500", Label: "S&P 500", Category: CategoryIndex, HasVolume: false},
	{Symbol: "QQQ", Key: "nasdaq_100", Label: "Nasdaq 100", Category: CategoryIndex, HasVolume: true},
	{Symbol: "AAPL", Key: "apple", Label: "Apple", Category: CategoryTechStock, HasVolume: true},
	{Symbol: "TSLA", Key: "tesla", Label: "Tesla", Category: CategoryTechStock, HasVolume: true},
	{Symbol: "MSFT", Key: "microsoft", Label: "Microsoft", Category: CategoryTechStock, HasVolume: true},
	{Symbol: "SILVER", Key: "silver", Label: "Silver", Category: CategoryCommodity, HasVolume: true},
	{Symbol: "GOOGL", Key: "google", Label: "Google", Category: CategoryTechStock, HasVolume: true},
	{Symbol: "NVDA", Key: "nvidia", Label: "Nvidia", Category: CategoryTechStock, HasVolume: true},
	{Symbol: "BRK", Key: "berkshire", Label: "Berkshire Hathaway", Category: CategoryTechStock, HasVolume: true},
	{Symbol: "NFLX", Key: "netflix", Label: "Netflix", Category: CategoryTechStock, HasVolume: true},
	{Symbol: "AMZN", Key: "amazon", Label: "Amazon", Category: CategoryTechStock, HasVolume: true},
	{Symbol: "META", Key: "meta", Label: "Meta", Category: CategoryTechStock, HasVolume: true},
	{Symbol: "GOLD", Key: "gold", Label: "Gold", Category: CategoryCommodity, HasVolume: true},
}

// symbolAliases maps additional accepted spellings to canonical symbols.
// Symbols and column stems are accepted without an alias entry.
var symbolAliases = map[string]string{
	"GOOG":       "GOOGL",
	"SP500":      "SPY",
	"SP_500":     "SPY",
	"S_P_500":    "SPY",
	"NASDAQ":     "QQQ",
	"NASDAQ_100": "QQQ",
	"CRUDE_OIL":  "OIL",
	"BRK_B":      "BRK",
	"NATGAS":     "NATURAL_GAS",
}

// Instruments returns the fixed instrument set in source column order.
// The returned slice must not be modified.
func Instruments() []Instrument {
	return instruments
}

// LookupInstrument resolves a case-insensitive symbol, column stem, or
// alias to an instrument. Returns false for unknown names.
func LookupInstrument(name string) (Instrument, bool) {
	key := strings.ToUpper(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, " ", "_")
	if canonical, ok := symbolAliases[key]; ok {
		key = canonical
	}
	for _, inst := range instruments {
		if key == inst.Symbol || key == strings.ToUpper(inst.Key) {
			return inst, true
		}
	}
	return Instrument{}, false
}

// Symbols returns the canonical symbols in instrument order.
func Symbols() []string {
	out := make([]string, len(instruments))
	for i, inst := range instruments {
		out[i] = inst.Symbol
	}
	return out
}

// NumericColumns returns every numeric column name in stable order:
// for each instrument its price column, then its volume column if present.
func NumericColumns() []string {
	out := make([]string, 0, 2*len(instruments))
	for _, inst := range instruments {
		out = append(out, inst.PriceColumn())
		if vol, ok := inst.VolumeColumn(); ok {
			out = append(out, vol)
		}
	}
	return out
}

// PriceColumns returns only the price columns, in instrument order.
func PriceColumns() []string {
	out := make([]string, len(instruments))
	for i, inst := range instruments {
		out[i] = inst.PriceColumn()
	}
	return out
}
