// Package model defines shared data types for the stock data service.
//
// Conventions:
//   - Dates: time.Time truncated to UTC midnight; one row per date
//   - Numeric values: *float64, nil means the source had no parseable value
//   - Column names: lower_snake_case, e.g. "apple_price", "crude_oil_vol"
package model
