package ingest

import (
	"strconv"
	"strings"
	"time"
)

// dateFormats are tried in order. ISO first, then the US-locale forms the
// source dataset has shipped with.
var dateFormats = []string{
	"2006-01-02",
	"01-02-2006",
	"01/02/2006",
	"2006/01/02",
	"2006-01-02T15:04:05",
}

// ParseDate parses a date cell. The result is truncated to UTC midnight.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// ParseNumeric coerces a cell to a float. Currency symbols, thousands
// separators, and surrounding space are stripped first. Anything that
// still fails to parse becomes nil, never zero.
func ParseNumeric(s string) *float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return nil
	}
	switch strings.ToLower(s) {
	case "-", "n/a", "na", "nan", "null", "none":
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
