// Package store provides read access to ingested rows.
//
// Two implementations exist: Postgres (the production store, backed by a
// pgx pool) and Memory (used in tests and local development). Both return
// rows newest first; date is unique, so the order is stable.
package store
