// Package service implements the validated query and aggregation
// operations over the stock data store. It owns the error taxonomy the
// HTTP layer maps to status codes: InputError for malformed parameters,
// NotFoundError for unknown symbols or an empty table,
// InsufficientDataError for windows too small to analyze, and
// StoreUnavailableError for store failures and timeouts.
package service
