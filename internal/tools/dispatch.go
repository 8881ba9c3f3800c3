package tools

import (
	"context"
	"encoding/json"
	"math"

	"github.com/dmaher/stockdata/internal/service"
)

// Dispatcher executes named tools against the service.
type Dispatcher struct {
	svc *service.Service
}

// NewDispatcher creates a Dispatcher over a service.
func NewDispatcher(svc *service.Service) *Dispatcher {
	return &Dispatcher{svc: svc}
}

// Call executes the named tool with loosely-typed arguments, as decoded
// from a JSON function call. Argument validation matches the direct
// service calls. An unknown name is NotFound.
func (d *Dispatcher) Call(ctx context.Context, name string, args map[string]any) (any, error) {
	switch name {
	case ToolStockData:
		return d.callStockData(ctx, args)
	case ToolLatestPrices:
		return d.svc.Latest(ctx)
	case ToolMarketOverview:
		return d.svc.MarketOverview(ctx)
	case ToolHistoricalAnalysis:
		return d.callHistoricalAnalysis(ctx, args)
	case ToolMarketComparison:
		return d.callMarketComparison(ctx, args)
	default:
		return nil, &service.NotFoundError{What: "tool", Name: name}
	}
}

func (d *Dispatcher) callStockData(ctx context.Context, args map[string]any) (any, error) {
	var p service.ListParams
	var err error
	if p.Limit, err = argInt(args, "limit"); err != nil {
		return nil, err
	}
	if p.Offset, err = argInt(args, "offset"); err != nil {
		return nil, err
	}
	if p.DateEq, err = argString(args, "date_eq"); err != nil {
		return nil, err
	}
	if p.DateGte, err = argString(args, "date_gte"); err != nil {
		return nil, err
	}
	if p.DateLte, err = argString(args, "date_lte"); err != nil {
		return nil, err
	}
	return d.svc.ListRows(ctx, p)
}

func (d *Dispatcher) callHistoricalAnalysis(ctx context.Context, args map[string]any) (any, error) {
	symbol, err := argString(args, "symbol")
	if err != nil {
		return nil, err
	}
	days, err := argInt(args, "days")
	if err != nil {
		return nil, err
	}
	return d.svc.HistoricalAnalysis(ctx, symbol, days)
}

func (d *Dispatcher) callMarketComparison(ctx context.Context, args map[string]any) (any, error) {
	symbolA, err := argString(args, "symbol_a")
	if err != nil {
		return nil, err
	}
	symbolB, err := argString(args, "symbol_b")
	if err != nil {
		return nil, err
	}
	days, err := argInt(args, "days")
	if err != nil {
		return nil, err
	}
	return d.svc.Compare(ctx, symbolA, symbolB, days)
}

// argInt reads an optional integer argument. JSON numbers arrive as
// float64; fractional values are rejected rather than truncated.
func argInt(args map[string]any, key string) (*int, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return nil, &service.InputError{Param: key, Reason: "must be an integer"}
		}
		i := int(n)
		return &i, nil
	case int:
		i := n
		return &i, nil
	case json.Number:
		i64, err := n.Int64()
		if err != nil {
			return nil, &service.InputError{Param: key, Reason: "must be an integer"}
		}
		i := int(i64)
		return &i, nil
	default:
		return nil, &service.InputError{Param: key, Reason: "must be an integer"}
	}
}

// argString reads an optional string argument. Absent keys return ""
// so required-parameter checks stay in the service layer.
func argString(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &service.InputError{Param: key, Reason: "must be a string"}
	}
	return s, nil
}
