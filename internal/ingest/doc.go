// Package ingest loads the daily price CSV into the stock data store.
//
// The pipeline:
//   - normalize header names and resolve them against the canonical
//     column set (unknown columns are dropped with a warning)
//   - coerce cell values to float64, treating unparseable tokens as null
//   - skip rows whose date cannot be parsed, counting them in the report
//   - bulk insert into a staging table and atomically swap it in
//
// Ingestion is idempotent: the live table is replaced, never appended to,
// so re-running on the same source yields identical stored contents. A
// process mutex plus a Postgres advisory lock serialize concurrent runs.
package ingest
