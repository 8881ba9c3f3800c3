package service

import (
	"time"

	"github.com/dmaher/stockdata/internal/model"
)

// parseDate parses an ISO date parameter, returning an InputError that
// names the parameter on failure.
func parseDate(param, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(model.DateFormat, value)
	if err != nil {
		return nil, &InputError{Param: param, Reason: "must be an ISO date (YYYY-MM-DD)"}
	}
	t = model.Midnight(t)
	return &t, nil
}

// resolveLimit applies the default, rejects non-positive values, and
// clamps to the configured maximum.
func (s *Service) resolveLimit(limit *int) (int, error) {
	if limit == nil {
		return s.cfg.DefaultLimit, nil
	}
	if *limit <= 0 {
		return 0, &InputError{Param: "limit", Reason: "must be positive"}
	}
	if *limit > s.cfg.MaxLimit {
		return s.cfg.MaxLimit, nil
	}
	return *limit, nil
}

func resolveOffset(offset *int) (int, error) {
	if offset == nil {
		return 0, nil
	}
	if *offset < 0 {
		return 0, &InputError{Param: "offset", Reason: "must not be negative"}
	}
	return *offset, nil
}

// resolveDays applies the default analysis window, rejects windows too
// small to analyze, and clamps to the configured maximum.
func (s *Service) resolveDays(days *int) (int, error) {
	if days == nil {
		return s.cfg.DefaultDays, nil
	}
	if *days < 2 {
		return 0, &InputError{Param: "days", Reason: "must be at least 2"}
	}
	if *days > s.cfg.MaxDays {
		return s.cfg.MaxDays, nil
	}
	return *days, nil
}

func resolveSymbol(param, symbol string) (model.Instrument, error) {
	if symbol == "" {
		return model.Instrument{}, &InputError{Param: param, Reason: "is required"}
	}
	inst, ok := model.LookupInstrument(symbol)
	if !ok {
		return model.Instrument{}, &NotFoundError{What: "symbol", Name: symbol}
	}
	return inst, nil
}
