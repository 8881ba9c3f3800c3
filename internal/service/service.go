package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmaher/stockdata/internal/config"
	"github.com/dmaher/stockdata/internal/model"
	"github.com/dmaher/stockdata/internal/stats"
	"github.com/dmaher/stockdata/internal/store"
)

// Service executes validated queries against a row store.
type Service struct {
	store  store.Store
	cfg    config.QueryConfig
	logger *slog.Logger
}

// New creates a Service. A nil logger falls back to slog.Default().
func New(st store.Store, cfg config.QueryConfig, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: st, cfg: cfg, logger: logger}
}

// ListParams carries the raw list-rows request. Date filters arrive as
// strings so validation errors can name the parameter.
type ListParams struct {
	Limit   *int
	Offset  *int
	DateEq  string
	DateGte string
	DateLte string
}

// ListResult is a page of rows, newest first.
type ListResult struct {
	Count  int         `json:"count"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
	Rows   []model.Row `json:"rows"`
}

// LatestPrices is the most recent row projected onto price columns.
type LatestPrices struct {
	Date   string              `json:"date"`
	Prices map[string]*float64 `json:"prices"`
}

// InstrumentInfo is the instrument registry entry exposed to clients.
type InstrumentInfo struct {
	Symbol    string `json:"symbol"`
	Label     string `json:"label"`
	Category  string `json:"category"`
	HasVolume bool   `json:"has_volume"`
}

// Overview is the latest row plus windowed statistics per numeric column.
// Columns with fewer than two non-nil samples in the window are omitted
// from Statistics.
type Overview struct {
	LatestDate   string                   `json:"latest_date"`
	LatestPrices map[string]*float64      `json:"latest_prices"`
	WindowDays   int                      `json:"window_days"`
	Statistics   map[string]stats.Summary `json:"statistics"`
	Instruments  []InstrumentInfo         `json:"instruments"`
}

// Analysis is the result of a historical analysis over one instrument's
// price series.
type Analysis struct {
	Symbol          string   `json:"symbol"`
	Label           string   `json:"label"`
	Days            int      `json:"days"`
	WindowTruncated bool     `json:"window_truncated,omitempty"`
	Samples         int      `json:"samples"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	StartPrice      float64  `json:"start_price"`
	CurrentPrice    float64  `json:"current_price"`
	Change          float64  `json:"change"`
	ChangePct       float64  `json:"change_pct"`
	Volatility      float64  `json:"volatility"`
	TrendSlope      float64  `json:"trend_slope"`
	CAGRPct         *float64 `json:"cagr_pct,omitempty"`
	Direction       string   `json:"direction"`
}

// Comparison is two analyses over the same window plus relative facts.
type Comparison struct {
	First        Analysis `json:"first"`
	Second       Analysis `json:"second"`
	SpreadPct    float64  `json:"spread_pct"`
	Stronger     string   `json:"stronger"`
	MoreVolatile string   `json:"more_volatile"`
}

// ListRows validates the request and returns a page of rows newest first.
// An offset past the end of the matching set yields an empty page.
func (s *Service) ListRows(ctx context.Context, p ListParams) (ListResult, error) {
	limit, err := s.resolveLimit(p.Limit)
	if err != nil {
		return ListResult{}, err
	}
	offset, err := resolveOffset(p.Offset)
	if err != nil {
		return ListResult{}, err
	}
	q := store.ListQuery{Limit: limit, Offset: offset}
	if q.DateEq, err = parseDate("date_eq", p.DateEq); err != nil {
		return ListResult{}, err
	}
	if q.DateGte, err = parseDate("date_gte", p.DateGte); err != nil {
		return ListResult{}, err
	}
	if q.DateLte, err = parseDate("date_lte", p.DateLte); err != nil {
		return ListResult{}, err
	}

	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	rows, err := s.store.ListRows(ctx, q)
	if err != nil {
		return ListResult{}, s.storeErr(err)
	}
	if rows == nil {
		rows = []model.Row{}
	}
	return ListResult{Count: len(rows), Limit: limit, Offset: offset, Rows: rows}, nil
}

// Latest returns the most recent row's prices. An empty table is NotFound.
func (s *Service) Latest(ctx context.Context) (LatestPrices, error) {
	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	row, err := s.store.Latest(ctx)
	if err != nil {
		if errors.Is(err, store.ErrEmpty) {
			return LatestPrices{}, &NotFoundError{What: "stock data"}
		}
		return LatestPrices{}, s.storeErr(err)
	}
	return LatestPrices{
		Date:   row.Date.Format(model.DateFormat),
		Prices: row.Prices(),
	}, nil
}

// MarketOverview returns the latest prices plus avg/min/max per numeric
// column over the window of calendar days ending at the latest stored
// date. The window anchors on stored data, not the wall clock, so a
// stale dataset still produces a full overview.
func (s *Service) MarketOverview(ctx context.Context) (Overview, error) {
	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	latest, err := s.store.Latest(ctx)
	if err != nil {
		if errors.Is(err, store.ErrEmpty) {
			return Overview{}, &NotFoundError{What: "stock data"}
		}
		return Overview{}, s.storeErr(err)
	}

	windowDays := s.cfg.OverviewWindowDays
	since := latest.Date.AddDate(0, 0, -(windowDays - 1))
	rows, err := s.store.RowsSince(ctx, since)
	if err != nil {
		return Overview{}, s.storeErr(err)
	}

	statistics := make(map[string]stats.Summary)
	for _, col := range model.NumericColumns() {
		series := columnSeries(rows, col)
		if summary, ok := stats.Summarize(series); ok {
			statistics[col] = summary
		}
	}

	return Overview{
		LatestDate:   latest.Date.Format(model.DateFormat),
		LatestPrices: latest.Prices(),
		WindowDays:   windowDays,
		Statistics:   statistics,
		Instruments:  s.Instruments(),
	}, nil
}

// HistoricalAnalysis analyzes one instrument's price series over the most
// recent days rows. Volatility is the sample standard deviation of
// day-over-day percentage changes.
func (s *Service) HistoricalAnalysis(ctx context.Context, symbol string, days *int) (Analysis, error) {
	inst, err := resolveSymbol("symbol", symbol)
	if err != nil {
		return Analysis{}, err
	}
	window, err := s.resolveDays(days)
	if err != nil {
		return Analysis{}, err
	}

	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	rows, err := s.store.RecentRows(ctx, window)
	if err != nil {
		return Analysis{}, s.storeErr(err)
	}
	return s.analyze(inst, window, rows)
}

// Compare runs two historical analyses over the same window and reports
// which instrument moved more and which was more volatile.
func (s *Service) Compare(ctx context.Context, symbolA, symbolB string, days *int) (Comparison, error) {
	instA, err := resolveSymbol("symbol_a", symbolA)
	if err != nil {
		return Comparison{}, err
	}
	instB, err := resolveSymbol("symbol_b", symbolB)
	if err != nil {
		return Comparison{}, err
	}
	if instA.Symbol == instB.Symbol {
		return Comparison{}, &InputError{Param: "symbol_b", Reason: "must differ from symbol_a"}
	}
	window, err := s.resolveDays(days)
	if err != nil {
		return Comparison{}, err
	}

	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	rows, err := s.store.RecentRows(ctx, window)
	if err != nil {
		return Comparison{}, s.storeErr(err)
	}

	first, err := s.analyze(instA, window, rows)
	if err != nil {
		return Comparison{}, err
	}
	second, err := s.analyze(instB, window, rows)
	if err != nil {
		return Comparison{}, err
	}

	cmp := Comparison{
		First:     first,
		Second:    second,
		SpreadPct: first.ChangePct - second.ChangePct,
	}
	cmp.Stronger = first.Symbol
	if second.ChangePct > first.ChangePct {
		cmp.Stronger = second.Symbol
	}
	cmp.MoreVolatile = first.Symbol
	if second.Volatility > first.Volatility {
		cmp.MoreVolatile = second.Symbol
	}
	return cmp, nil
}

// Instruments returns the registry projection used by overview responses.
func (s *Service) Instruments() []InstrumentInfo {
	infos := make([]InstrumentInfo, 0, len(model.Instruments()))
	for _, inst := range model.Instruments() {
		infos = append(infos, InstrumentInfo{
			Symbol:    inst.Symbol,
			Label:     inst.Label,
			Category:  string(inst.Category),
			HasVolume: inst.HasVolume,
		})
	}
	return infos
}

// Ping reports whether the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	ctx, cancel := s.queryCtx(ctx)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		return s.storeErr(err)
	}
	return nil
}

// analyze computes the statistics over an instrument's price column for a
// window of rows ordered newest first.
func (s *Service) analyze(inst model.Instrument, window int, rows []model.Row) (Analysis, error) {
	type sample struct {
		date  time.Time
		price float64
	}

	// Oldest first for the return and trend math.
	var samples []sample
	for i := len(rows) - 1; i >= 0; i-- {
		if v := rows[i].Value(inst.PriceColumn()); v != nil {
			samples = append(samples, sample{date: rows[i].Date, price: *v})
		}
	}
	if len(samples) < 2 {
		return Analysis{}, &InsufficientDataError{Symbol: inst.Symbol, Samples: len(samples)}
	}

	prices := make([]float64, len(samples))
	for i, smp := range samples {
		prices[i] = smp.price
	}
	first, last := samples[0], samples[len(samples)-1]
	changePct := stats.PctChange(first.price, last.price)

	a := Analysis{
		Symbol:          inst.Symbol,
		Label:           inst.Label,
		Days:            window,
		WindowTruncated: len(rows) < window,
		Samples:         len(samples),
		StartDate:       first.date.Format(model.DateFormat),
		EndDate:         last.date.Format(model.DateFormat),
		StartPrice:      first.price,
		CurrentPrice:    last.price,
		Change:          last.price - first.price,
		ChangePct:       changePct,
		Volatility:      stats.Volatility(prices),
		TrendSlope:      stats.TrendSlope(prices),
		Direction:       stats.Direction(changePct, s.cfg.FlatThresholdPct),
	}

	spanDays := int(last.date.Sub(first.date).Hours() / 24)
	if cagr, ok := stats.CAGR(first.price, last.price, spanDays); ok {
		a.CAGRPct = &cagr
	}
	return a, nil
}

// columnSeries extracts a column's non-nil values, preserving order.
func columnSeries(rows []model.Row, col string) []float64 {
	var out []float64
	for _, r := range rows {
		if v := r.Value(col); v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// queryCtx bounds a store call with the configured query timeout.
func (s *Service) queryCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.cfg.Timeout)
}

// storeErr wraps any store failure as StoreUnavailableError so the HTTP
// layer maps it to 503.
func (s *Service) storeErr(err error) error {
	s.logger.Error("store query failed", "error", err)
	return &StoreUnavailableError{Err: fmt.Errorf("query store: %w", err)}
}
