package ingest

import (
	"strings"
	"unicode"

	"github.com/dmaher/stockdata/internal/model"
)

// DateColumn is the canonical name of the date column.
const DateColumn = "date"

// columnSynonyms maps normalized header variants to canonical column
// names. Keys are the post-NormalizeColumn form of known source spellings.
var columnSynonyms = map[string]string{
	"datetime":     DateColumn,
	"day":          DateColumn,
	"trade_date":   DateColumn,
	"aapl_price":   "apple_price",
	"aapl_vol":     "apple_vol",
	"tsla_price":   "tesla_price",
	"tsla_vol":     "tesla_vol",
	"msft_price":   "microsoft_price",
	"msft_vol":     "microsoft_vol",
	"googl_price":  "google_price",
	"googl_vol":    "google_vol",
	"goog_price":   "google_price",
	"nvda_price":   "nvidia_price",
	"nvda_vol":     "nvidia_vol",
	"brk_price":    "berkshire_price",
	"brk_vol":      "berkshire_vol",
	"nflx_price":   "netflix_price",
	"nflx_vol":     "netflix_vol",
	"amzn_price":   "amazon_price",
	"amzn_vol":     "amazon_vol",
	"btc_price":    "bitcoin_price",
	"btc_vol":      "bitcoin_vol",
	"eth_price":    "ethereum_price",
	"eth_vol":      "ethereum_vol",
	"sp_500_price": "s_p_500_price",
	"sp500_price":  "s_p_500_price",
	"nasdaq_price": "nasdaq_100_price",
	"nasdaq_vol":   "nasdaq_100_vol",
	"oil_price":    "crude_oil_price",
	"oil_vol":      "crude_oil_vol",
	"natgas_price": "natural_gas_price",
	"natgas_vol":   "natural_gas_vol",
}

// canonicalColumns is the set of accepted numeric column names.
var canonicalColumns = func() map[string]bool {
	set := make(map[string]bool)
	for _, col := range model.NumericColumns() {
		set[col] = true
	}
	return set
}()

// NormalizeColumn converts a raw CSV header into identifier form:
// lower-case, any run of non-alphanumeric characters collapsed to one
// underscore, leading/trailing underscores stripped, and a leading
// underscore added when the name starts with a digit.
func NormalizeColumn(raw string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(raw) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	name := strings.Trim(b.String(), "_")
	if name != "" && unicode.IsDigit(rune(name[0])) {
		name = "_" + name
	}
	return name
}

// ResolveColumn normalizes a raw header and maps it to a canonical column
// name. Returns false when the header matches neither a canonical column
// nor a known synonym; such columns are dropped by the loader.
func ResolveColumn(raw string) (string, bool) {
	name := NormalizeColumn(raw)
	if name == DateColumn {
		return DateColumn, true
	}
	if canonical, ok := columnSynonyms[name]; ok {
		return canonical, true
	}
	if canonicalColumns[name] {
		return name, true
	}
	return "", false
}
