package nlquery

import (
	"regexp"
	"strings"

	"github.com/dmaher/stockdata/internal/model"
)

// Intent names the operation a query routes to.
const (
	IntentListRows = "list_rows"
	IntentLatest   = "latest_prices"
	IntentOverview = "market_overview"
	IntentAnalysis = "historical_analysis"
	IntentCompare  = "market_comparison"
)

// Decision is the routing outcome for one query.
type Decision struct {
	Intent  string
	Symbols []string // matched instruments, query order, deduplicated
	Date    string   // first ISO date found, if any
}

var (
	isoDateRE = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	tokenRE   = regexp.MustCompile(`[a-z0-9]+`)
)

var analysisVerbs = wordSet(
	"trend", "trending", "volatility", "volatile", "performance", "performing",
	"history", "historical", "analyze", "analysis", "change", "changed",
	"cagr", "growth", "momentum", "moving", "doing",
)

var listingVerbs = wordSet(
	"list", "show", "rows", "records", "data", "table", "entries",
)

var latestVerbs = wordSet(
	"latest", "current", "now", "today", "price", "prices", "quote", "quotes",
)

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// Route decides which operation a free-text query maps to. Pure: it
// never errors and never touches the store. Precedence, first match
// wins:
//
//  1. two or more instruments mentioned: comparison of the first two
//  2. an instrument plus an analysis verb: historical analysis
//  3. exactly one instrument without a listing cue: historical analysis
//  4. a listing verb or an ISO date: row listing
//  5. a latest-price verb: latest prices
//  6. anything else: market overview
func Route(q string) Decision {
	lower := strings.ToLower(q)
	d := Decision{Date: isoDateRE.FindString(lower)}

	tokens := tokenRE.FindAllString(lower, -1)
	d.Symbols = matchInstruments(tokens)

	switch {
	case len(d.Symbols) >= 2:
		d.Intent = IntentCompare
		d.Symbols = d.Symbols[:2]
	case len(d.Symbols) == 1 && hasAny(tokens, analysisVerbs):
		d.Intent = IntentAnalysis
	case len(d.Symbols) == 1 && !hasAny(tokens, listingVerbs) && d.Date == "":
		d.Intent = IntentAnalysis
	case hasAny(tokens, listingVerbs) || d.Date != "":
		d.Intent = IntentListRows
	case hasAny(tokens, latestVerbs):
		d.Intent = IntentLatest
	default:
		d.Intent = IntentOverview
	}
	return d
}

// matchInstruments scans tokens for instrument mentions, trying the
// longest join first so "natural gas" and "s p 500" resolve before
// their fragments are considered alone.
func matchInstruments(tokens []string) []string {
	var out []string
	seen := map[string]bool{}

	add := func(symbol string) {
		if !seen[symbol] {
			seen[symbol] = true
			out = append(out, symbol)
		}
	}

	for i := 0; i < len(tokens); {
		matched := false
		for span := 3; span >= 1 && !matched; span-- {
			if i+span > len(tokens) {
				continue
			}
			joined := strings.Join(tokens[i:i+span], "_")
			if inst, ok := model.LookupInstrument(joined); ok {
				add(inst.Symbol)
				i += span
				matched = true
			}
		}
		if !matched {
			i++
		}
	}
	return out
}

func hasAny(tokens []string, set map[string]bool) bool {
	for _, tok := range tokens {
		if set[tok] {
			return true
		}
	}
	return false
}
