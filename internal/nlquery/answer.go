package nlquery

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmaher/stockdata/internal/model"
	"github.com/dmaher/stockdata/internal/service"
)

// Answerer routes a free-text query, runs the chosen operation, and
// renders the result as prose alongside the structured data.
type Answerer struct {
	svc *service.Service
}

// NewAnswerer creates an Answerer over a service.
func NewAnswerer(svc *service.Service) *Answerer {
	return &Answerer{svc: svc}
}

// Answer is a routed query result. Text is the prose rendering; Data is
// the structured result the prose was derived from.
type Answer struct {
	Query  string `json:"query"`
	Intent string `json:"intent"`
	Text   string `json:"text"`
	Data   any    `json:"data,omitempty"`
}

// Answer routes q and executes the chosen operation. Service errors
// pass through unchanged so callers keep the error taxonomy.
func (a *Answerer) Answer(ctx context.Context, q string) (Answer, error) {
	if strings.TrimSpace(q) == "" {
		return Answer{}, &service.InputError{Param: "q", Reason: "is required"}
	}
	d := Route(q)
	ans := Answer{Query: q, Intent: d.Intent}

	switch d.Intent {
	case IntentCompare:
		cmp, err := a.svc.Compare(ctx, d.Symbols[0], d.Symbols[1], nil)
		if err != nil {
			return Answer{}, err
		}
		ans.Text = formatComparison(cmp)
		ans.Data = cmp

	case IntentAnalysis:
		analysis, err := a.svc.HistoricalAnalysis(ctx, d.Symbols[0], nil)
		if err != nil {
			return Answer{}, err
		}
		ans.Text = formatAnalysis(analysis)
		ans.Data = analysis

	case IntentListRows:
		p := service.ListParams{DateEq: d.Date}
		list, err := a.svc.ListRows(ctx, p)
		if err != nil {
			return Answer{}, err
		}
		ans.Text = formatList(list)
		ans.Data = list

	case IntentLatest:
		latest, err := a.svc.Latest(ctx)
		if err != nil {
			return Answer{}, err
		}
		ans.Text = formatLatest(latest)
		ans.Data = latest

	default:
		overview, err := a.svc.MarketOverview(ctx)
		if err != nil {
			return Answer{}, err
		}
		ans.Text = formatOverview(overview)
		ans.Data = overview
	}
	return ans, nil
}

func formatAnalysis(a service.Analysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s is %s over %s to %s: %.2f to %.2f (%+.2f%%).",
		a.Label, a.Direction, a.StartDate, a.EndDate, a.StartPrice, a.CurrentPrice, a.ChangePct)
	fmt.Fprintf(&b, " Daily volatility %.2f%%, trend %+.2f per day over %d samples.",
		a.Volatility, a.TrendSlope, a.Samples)
	if a.CAGRPct != nil {
		fmt.Fprintf(&b, " Annualized growth %+.2f%%.", *a.CAGRPct)
	}
	return b.String()
}

func formatComparison(c service.Comparison) string {
	return fmt.Sprintf("%s outperformed %s: %+.2f%% versus %+.2f%% (spread %.2f points); %s was the more volatile.",
		c.Stronger, other(c.Stronger, c.First.Symbol, c.Second.Symbol),
		c.First.ChangePct, c.Second.ChangePct, c.SpreadPct, c.MoreVolatile)
}

func other(chosen, a, b string) string {
	if chosen == a {
		return b
	}
	return a
}

func formatList(l service.ListResult) string {
	if l.Count == 0 {
		return "No rows match."
	}
	return fmt.Sprintf("%d rows, newest %s (limit %d, offset %d).",
		l.Count, l.Rows[0].Date.Format(model.DateFormat), l.Limit, l.Offset)
}

func formatLatest(lp service.LatestPrices) string {
	var parts []string
	for _, inst := range model.Instruments() {
		if v := lp.Prices[inst.PriceColumn()]; v != nil {
			parts = append(parts, fmt.Sprintf("%s %.2f", inst.Symbol, *v))
		}
	}
	return fmt.Sprintf("Latest prices as of %s: %s.", lp.Date, strings.Join(parts, ", "))
}

func formatOverview(o service.Overview) string {
	return fmt.Sprintf("Market overview as of %s: %d instruments tracked, %d fields with statistics over a %d-day window.",
		o.LatestDate, len(o.Instruments), len(o.Statistics), o.WindowDays)
}
