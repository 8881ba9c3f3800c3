package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dmaher/stockdata/internal/model"
)

const (
	// TableName is the live table read by the query layer.
	TableName = "stock_data"

	// StagingTableName is the table ingestion loads into before the swap.
	StagingTableName = "stock_data_new"

	// ingestLockID keys the advisory lock serializing ingestion runs.
	ingestLockID = 7251_0001
)

// CreateTableSQL returns the DDL for a stock data table with the given
// name: a date primary key plus one nullable double precision column per
// numeric field. Column order follows model.NumericColumns so reloads
// always produce an identical schema.
func CreateTableSQL(table string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", table)
	b.WriteString("\tdate date PRIMARY KEY")
	for _, col := range model.NumericColumns() {
		fmt.Fprintf(&b, ",\n\t%s double precision", col)
	}
	b.WriteString("\n)")
	return b.String()
}

// InsertSQL returns a parameterized INSERT for one full row into table.
func InsertSQL(table string) string {
	cols := model.NumericColumns()
	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (date", table)
	for _, col := range cols {
		b.WriteString(", ")
		b.WriteString(col)
	}
	b.WriteString(") VALUES ($1")
	for i := range cols {
		fmt.Fprintf(&b, ", $%d", i+2)
	}
	b.WriteString(")")
	return b.String()
}

// ResetStaging drops any leftover staging table and creates a fresh one.
func ResetStaging(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, "DROP TABLE IF EXISTS "+StagingTableName); err != nil {
		return fmt.Errorf("drop staging table: %w", err)
	}
	if _, err := tx.Exec(ctx, CreateTableSQL(StagingTableName)); err != nil {
		return fmt.Errorf("create staging table: %w", err)
	}
	return nil
}

// SwapStaging atomically replaces the live table with the staging table.
// Readers either see the old table or the new one, never a partial load.
func SwapStaging(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, "DROP TABLE IF EXISTS "+TableName); err != nil {
		return fmt.Errorf("drop live table: %w", err)
	}
	if _, err := tx.Exec(ctx,
		fmt.Sprintf("ALTER TABLE %s RENAME TO %s", StagingTableName, TableName)); err != nil {
		return fmt.Errorf("rename staging table: %w", err)
	}
	return nil
}

// AcquireIngestLock takes the session-level advisory lock that serializes
// ingestion runs across processes. Blocks until the lock is available or
// the context expires.
func AcquireIngestLock(ctx context.Context, conn *pgx.Conn) error {
	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", ingestLockID); err != nil {
		return fmt.Errorf("acquire ingest lock: %w", err)
	}
	return nil
}

// ReleaseIngestLock releases the advisory lock taken by AcquireIngestLock.
func ReleaseIngestLock(ctx context.Context, conn *pgx.Conn) error {
	if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", ingestLockID); err != nil {
		return fmt.Errorf("release ingest lock: %w", err)
	}
	return nil
}
