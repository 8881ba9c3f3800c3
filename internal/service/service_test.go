package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/dmaher/stockdata/internal/config"
	"github.com/dmaher/stockdata/internal/model"
	"github.com/dmaher/stockdata/internal/store"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func testQueryConfig() config.QueryConfig {
	return config.QueryConfig{
		DefaultLimit:       config.DefaultQueryLimit,
		MaxLimit:           config.DefaultMaxLimit,
		DefaultDays:        config.DefaultAnalysisDays,
		MaxDays:            config.DefaultMaxAnalysisDays,
		OverviewWindowDays: config.DefaultOverviewWindowDays,
		FlatThresholdPct:   config.DefaultFlatThresholdPct,
		Timeout:            config.DefaultQueryTimeout,
	}
}

// seedRows builds 2024-01-01..05 with apple 100,101,99,105,110 and a
// constant tesla series at 50.
func seedRows() []model.Row {
	apple := []float64{100, 101, 99, 105, 110}
	rows := make([]model.Row, len(apple))
	for i, p := range apple {
		row := model.NewRow(time.Date(2024, 1, i+1, 0, 0, 0, 0, time.UTC))
		row.Set("apple_price", fptr(p))
		row.Set("tesla_price", fptr(50))
		rows[i] = row
	}
	return rows
}

func testService(rows ...model.Row) *Service {
	return New(store.NewMemory(rows...), testQueryConfig(), nil)
}

func TestListRows(t *testing.T) {
	svc := testService(seedRows()...)
	ctx := context.Background()

	t.Run("default limit newest first", func(t *testing.T) {
		res, err := svc.ListRows(ctx, ListParams{})
		if err != nil {
			t.Fatalf("ListRows failed: %v", err)
		}
		if res.Limit != config.DefaultQueryLimit {
			t.Errorf("limit = %d, want %d", res.Limit, config.DefaultQueryLimit)
		}
		if res.Count != 5 {
			t.Fatalf("count = %d, want 5", res.Count)
		}
		if res.Rows[0].Date.Day() != 5 {
			t.Errorf("first row day = %d, want 5", res.Rows[0].Date.Day())
		}
	})

	t.Run("limit two with date_gte", func(t *testing.T) {
		res, err := svc.ListRows(ctx, ListParams{Limit: iptr(2), DateGte: "2024-01-03"})
		if err != nil {
			t.Fatalf("ListRows failed: %v", err)
		}
		if res.Count != 2 {
			t.Fatalf("count = %d, want 2", res.Count)
		}
		if res.Rows[0].Date.Day() != 5 || res.Rows[1].Date.Day() != 4 {
			t.Errorf("got days %d, %d, want 5, 4",
				res.Rows[0].Date.Day(), res.Rows[1].Date.Day())
		}
	})

	t.Run("limit clamped to max", func(t *testing.T) {
		res, err := svc.ListRows(ctx, ListParams{Limit: iptr(9999)})
		if err != nil {
			t.Fatalf("ListRows failed: %v", err)
		}
		if res.Limit != config.DefaultMaxLimit {
			t.Errorf("limit = %d, want clamped to %d", res.Limit, config.DefaultMaxLimit)
		}
	})

	t.Run("offset past end is empty not error", func(t *testing.T) {
		res, err := svc.ListRows(ctx, ListParams{Offset: iptr(100)})
		if err != nil {
			t.Fatalf("ListRows failed: %v", err)
		}
		if res.Count != 0 || res.Rows == nil {
			t.Errorf("count = %d, rows = %v, want empty slice", res.Count, res.Rows)
		}
	})

	t.Run("invalid inputs", func(t *testing.T) {
		cases := []struct {
			name  string
			p     ListParams
			param string
		}{
			{"zero limit", ListParams{Limit: iptr(0)}, "limit"},
			{"negative limit", ListParams{Limit: iptr(-5)}, "limit"},
			{"negative offset", ListParams{Offset: iptr(-1)}, "offset"},
			{"bad date_eq", ListParams{DateEq: "Jan 3 2024"}, "date_eq"},
			{"bad date_gte", ListParams{DateGte: "2024-13-01"}, "date_gte"},
			{"bad date_lte", ListParams{DateLte: "nope"}, "date_lte"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.ListRows(ctx, tc.p)
				var inputErr *InputError
				if !errors.As(err, &inputErr) {
					t.Fatalf("err = %v, want InputError", err)
				}
				if inputErr.Param != tc.param {
					t.Errorf("param = %q, want %q", inputErr.Param, tc.param)
				}
			})
		}
	})
}

func TestLatest(t *testing.T) {
	ctx := context.Background()

	t.Run("newest row", func(t *testing.T) {
		svc := testService(seedRows()...)
		res, err := svc.Latest(ctx)
		if err != nil {
			t.Fatalf("Latest failed: %v", err)
		}
		if res.Date != "2024-01-05" {
			t.Errorf("date = %q, want 2024-01-05", res.Date)
		}
		if v := res.Prices["apple_price"]; v == nil || *v != 110 {
			t.Errorf("apple_price = %v, want 110", v)
		}
		// Projection includes every price column, nil where absent.
		if _, ok := res.Prices["gold_price"]; !ok {
			t.Error("projection missing gold_price key")
		}
	})

	t.Run("empty table is not found", func(t *testing.T) {
		svc := testService()
		_, err := svc.Latest(ctx)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestMarketOverview(t *testing.T) {
	ctx := context.Background()
	svc := testService(seedRows()...)

	ov, err := svc.MarketOverview(ctx)
	if err != nil {
		t.Fatalf("MarketOverview failed: %v", err)
	}
	if ov.LatestDate != "2024-01-05" {
		t.Errorf("latest_date = %q, want 2024-01-05", ov.LatestDate)
	}

	// latest_prices must match the Latest projection.
	latest, err := svc.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	for col, want := range latest.Prices {
		got := ov.LatestPrices[col]
		if (got == nil) != (want == nil) {
			t.Errorf("latest_prices[%s] = %v, want %v", col, got, want)
		} else if got != nil && *got != *want {
			t.Errorf("latest_prices[%s] = %v, want %v", col, *got, *want)
		}
	}

	apple, ok := ov.Statistics["apple_price"]
	if !ok {
		t.Fatal("statistics missing apple_price")
	}
	if apple.Count != 5 || apple.Min != 99 || apple.Max != 110 || apple.Latest != 110 {
		t.Errorf("apple summary = %+v", apple)
	}
	if math.Abs(apple.Avg-103) > 1e-9 {
		t.Errorf("apple avg = %v, want 103", apple.Avg)
	}

	// Columns with no samples in the window are omitted, never zeroed.
	if _, ok := ov.Statistics["gold_price"]; ok {
		t.Error("statistics should omit columns without samples")
	}

	if len(ov.Instruments) != len(model.Instruments()) {
		t.Errorf("instruments = %d, want %d", len(ov.Instruments), len(model.Instruments()))
	}
}

func TestMarketOverviewWindowAnchorsOnLatestDate(t *testing.T) {
	// Two rows 40 days apart: only the newer one falls in the 30-day
	// window, so apple_price has one sample and is omitted.
	old := model.NewRow(time.Date(2023, 11, 20, 0, 0, 0, 0, time.UTC))
	old.Set("apple_price", fptr(90))
	recent := model.NewRow(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	recent.Set("apple_price", fptr(100))

	svc := testService(old, recent)
	ov, err := svc.MarketOverview(context.Background())
	if err != nil {
		t.Fatalf("MarketOverview failed: %v", err)
	}
	if _, ok := ov.Statistics["apple_price"]; ok {
		t.Error("single in-window sample should be omitted from statistics")
	}
}

func TestHistoricalAnalysis(t *testing.T) {
	ctx := context.Background()
	svc := testService(seedRows()...)

	t.Run("five day example", func(t *testing.T) {
		a, err := svc.HistoricalAnalysis(ctx, "AAPL", nil)
		if err != nil {
			t.Fatalf("HistoricalAnalysis failed: %v", err)
		}
		if a.CurrentPrice != 110 {
			t.Errorf("current = %v, want 110", a.CurrentPrice)
		}
		if a.StartPrice != 100 {
			t.Errorf("start = %v, want 100", a.StartPrice)
		}
		if math.Abs(a.ChangePct-10) > 1e-9 {
			t.Errorf("change_pct = %v, want 10", a.ChangePct)
		}
		if a.Direction != "up" {
			t.Errorf("direction = %q, want up", a.Direction)
		}
		if a.Volatility <= 0 {
			t.Errorf("volatility = %v, want > 0", a.Volatility)
		}
		if !a.WindowTruncated {
			t.Error("30-day window over 5 rows should be truncated")
		}
		if a.Samples != 5 {
			t.Errorf("samples = %d, want 5", a.Samples)
		}
		if a.StartDate != "2024-01-01" || a.EndDate != "2024-01-05" {
			t.Errorf("window = %s..%s", a.StartDate, a.EndDate)
		}
	})

	t.Run("constant series is flat", func(t *testing.T) {
		a, err := svc.HistoricalAnalysis(ctx, "TSLA", iptr(5))
		if err != nil {
			t.Fatalf("HistoricalAnalysis failed: %v", err)
		}
		if a.ChangePct != 0 {
			t.Errorf("change_pct = %v, want 0", a.ChangePct)
		}
		if a.Volatility != 0 {
			t.Errorf("volatility = %v, want 0", a.Volatility)
		}
		if a.Direction != "flat" {
			t.Errorf("direction = %q, want flat", a.Direction)
		}
		if a.TrendSlope != 0 {
			t.Errorf("trend_slope = %v, want 0", a.TrendSlope)
		}
	})

	t.Run("symbol aliases accepted", func(t *testing.T) {
		a, err := svc.HistoricalAnalysis(ctx, "apple", nil)
		if err != nil {
			t.Fatalf("HistoricalAnalysis failed: %v", err)
		}
		if a.Symbol != "AAPL" {
			t.Errorf("symbol = %q, want AAPL", a.Symbol)
		}
	})

	t.Run("unknown symbol", func(t *testing.T) {
		_, err := svc.HistoricalAnalysis(ctx, "DOGE", nil)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("days below two", func(t *testing.T) {
		_, err := svc.HistoricalAnalysis(ctx, "AAPL", iptr(1))
		var inputErr *InputError
		if !errors.As(err, &inputErr) || inputErr.Param != "days" {
			t.Errorf("err = %v, want InputError on days", err)
		}
	})

	t.Run("days clamped to max", func(t *testing.T) {
		a, err := svc.HistoricalAnalysis(ctx, "AAPL", iptr(10000))
		if err != nil {
			t.Fatalf("HistoricalAnalysis failed: %v", err)
		}
		if a.Days != config.DefaultMaxAnalysisDays {
			t.Errorf("days = %d, want clamped to %d", a.Days, config.DefaultMaxAnalysisDays)
		}
	})

	t.Run("insufficient samples", func(t *testing.T) {
		row := model.NewRow(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		row.Set("apple_price", fptr(100))
		one := testService(row)

		_, err := one.HistoricalAnalysis(ctx, "AAPL", nil)
		var insufficient *InsufficientDataError
		if !errors.As(err, &insufficient) {
			t.Fatalf("err = %v, want InsufficientDataError", err)
		}
		if insufficient.Samples != 1 {
			t.Errorf("samples = %d, want 1", insufficient.Samples)
		}
	})

	t.Run("nil prices excluded from samples", func(t *testing.T) {
		rows := seedRows()
		rows[4].Set("apple_price", nil)
		svc := testService(rows...)

		a, err := svc.HistoricalAnalysis(ctx, "AAPL", nil)
		if err != nil {
			t.Fatalf("HistoricalAnalysis failed: %v", err)
		}
		if a.Samples != 4 {
			t.Errorf("samples = %d, want 4", a.Samples)
		}
		if a.CurrentPrice != 105 {
			t.Errorf("current = %v, want 105 (newest non-nil)", a.CurrentPrice)
		}
	})
}

func TestCompare(t *testing.T) {
	ctx := context.Background()
	svc := testService(seedRows()...)

	t.Run("apple versus tesla", func(t *testing.T) {
		cmp, err := svc.Compare(ctx, "AAPL", "TSLA", iptr(5))
		if err != nil {
			t.Fatalf("Compare failed: %v", err)
		}
		if cmp.Stronger != "AAPL" {
			t.Errorf("stronger = %q, want AAPL", cmp.Stronger)
		}
		if cmp.MoreVolatile != "AAPL" {
			t.Errorf("more_volatile = %q, want AAPL", cmp.MoreVolatile)
		}
		if math.Abs(cmp.SpreadPct-10) > 1e-9 {
			t.Errorf("spread_pct = %v, want 10", cmp.SpreadPct)
		}
	})

	t.Run("same symbol rejected", func(t *testing.T) {
		_, err := svc.Compare(ctx, "AAPL", "aapl", nil)
		var inputErr *InputError
		if !errors.As(err, &inputErr) || inputErr.Param != "symbol_b" {
			t.Errorf("err = %v, want InputError on symbol_b", err)
		}
	})

	t.Run("unknown second symbol", func(t *testing.T) {
		_, err := svc.Compare(ctx, "AAPL", "DOGE", nil)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}
