package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DateFormat is the canonical wire format for row dates.
const DateFormat = "2006-01-02"

// Row holds one calendar date's values across all tracked instruments.
// Values is keyed by numeric column name; a nil entry or a missing key
// both mean the value is unavailable.
type Row struct {
	Date   time.Time
	Values map[string]*float64
}

// NewRow creates an empty row for the given date, truncated to UTC midnight.
func NewRow(date time.Time) Row {
	return Row{
		Date:   Midnight(date),
		Values: make(map[string]*float64, len(NumericColumns())),
	}
}

// Midnight truncates a time to UTC midnight.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Value returns the value for a column, or nil if absent.
func (r Row) Value(column string) *float64 {
	return r.Values[column]
}

// Set stores a value under a column name, allocating the map if needed.
func (r *Row) Set(column string, v *float64) {
	if r.Values == nil {
		r.Values = make(map[string]*float64, len(NumericColumns()))
	}
	r.Values[column] = v
}

// Prices projects the row onto its price columns, keyed by column name.
// Nil values are included so callers can distinguish missing from absent.
func (r Row) Prices() map[string]*float64 {
	out := make(map[string]*float64, len(instruments))
	for _, col := range PriceColumns() {
		out[col] = r.Values[col]
	}
	return out
}

// MarshalJSON flattens the row into a single object with a "date" field
// followed by every numeric column in stable order. Missing values
// serialize as null, never as zero.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	fmt.Fprintf(&buf, `"date":%q`, r.Date.Format(DateFormat))
	for _, col := range NumericColumns() {
		buf.WriteByte(',')
		fmt.Fprintf(&buf, "%q:", col)
		if v := r.Values[col]; v != nil {
			b, err := json.Marshal(*v)
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		} else {
			buf.WriteString("null")
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON parses the flattened object form produced by MarshalJSON.
func (r *Row) UnmarshalJSON(data []byte) error {
	var raw map[string]*float64
	var dateOnly struct {
		Date string `json:"date"`
	}
	if err := json.Unmarshal(data, &dateOnly); err != nil {
		return err
	}
	date, err := time.Parse(DateFormat, dateOnly.Date)
	if err != nil {
		return fmt.Errorf("parse row date: %w", err)
	}
	// Second pass for the numeric fields; "date" fails float decoding,
	// so strip it first.
	var generic map[string]json.RawMessage
	if err := json.Unmarshal(data, &generic); err != nil {
		return err
	}
	delete(generic, "date")
	raw = make(map[string]*float64, len(generic))
	for k, v := range generic {
		var f *float64
		if err := json.Unmarshal(v, &f); err != nil {
			return fmt.Errorf("parse column %s: %w", k, err)
		}
		raw[k] = f
	}
	r.Date = Midnight(date)
	r.Values = raw
	return nil
}
