// Package database provides connection pool management and schema
// maintenance for the PostgreSQL stock data store.
//
// The live table is stock_data, keyed by date. Ingestion never mutates it
// in place: rows are loaded into stock_data_new and swapped in with a
// single transactional rename, so readers always see a complete table.
package database
