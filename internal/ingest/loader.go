package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmaher/stockdata/internal/database"
	"github.com/dmaher/stockdata/internal/model"
)

// Loader ingests a CSV source into the stock data store.
type Loader struct {
	pool      *pgxpool.Pool
	batchSize int
	logger    *slog.Logger

	// Serializes ingestion runs within this process. Cross-process runs
	// are serialized by the database advisory lock.
	mu sync.Mutex
}

// NewLoader creates a Loader. batchSize controls how many inserts are
// queued per pgx batch.
func NewLoader(pool *pgxpool.Pool, batchSize int, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if batchSize < 1 {
		batchSize = 500
	}
	return &Loader{
		pool:      pool,
		batchSize: batchSize,
		logger:    logger,
	}
}

// LoadFile ingests the CSV at path, replacing the live table.
func (l *Loader) LoadFile(ctx context.Context, path string) (*model.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return l.Load(ctx, path, f)
}

// Load parses the CSV from r and replaces the live table with its rows.
func (l *Loader) Load(ctx context.Context, source string, r io.Reader) (*model.Report, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := time.Now()
	report := &model.Report{
		RunID:  uuid.New(),
		Source: source,
	}

	rows, err := l.parseTable(r, report)
	if err != nil {
		return nil, err
	}

	l.logger.Info("parsed source",
		"run_id", report.RunID,
		"rows", len(rows),
		"rejected", report.RowsRejected,
		"dropped_columns", len(report.DroppedColumns),
	)

	if err := l.replaceTable(ctx, rows); err != nil {
		return nil, err
	}

	report.RowsLoaded = len(rows)
	report.Duration = time.Since(start)

	l.logger.Info("ingestion complete",
		"run_id", report.RunID,
		"rows_loaded", report.RowsLoaded,
		"duration", report.Duration,
	)
	return report, nil
}

// parseTable reads the header and data rows, producing one model.Row per
// date. Later occurrences of a date replace earlier ones.
func (l *Loader) parseTable(r io.Reader, report *model.Report) ([]model.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	// Map each source column index to its canonical name; drop the rest.
	dateIdx := -1
	colByIdx := make(map[int]string)
	for i, raw := range header {
		canonical, ok := ResolveColumn(raw)
		if !ok {
			l.logger.Warn("dropping unknown column", "header", raw)
			report.DroppedColumns = append(report.DroppedColumns, raw)
			continue
		}
		if canonical == DateColumn {
			dateIdx = i
			continue
		}
		colByIdx[i] = canonical
	}
	if dateIdx < 0 {
		return nil, fmt.Errorf("source has no date column")
	}

	byDate := make(map[time.Time]model.Row)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		if dateIdx >= len(record) {
			report.RowsRejected++
			continue
		}
		date, ok := ParseDate(record[dateIdx])
		if !ok {
			report.RowsRejected++
			continue
		}

		row := model.NewRow(date)
		for i, canonical := range colByIdx {
			if i >= len(record) {
				continue
			}
			row.Set(canonical, ParseNumeric(record[i]))
		}
		if _, exists := byDate[date]; exists {
			report.DuplicateDates++
		}
		byDate[date] = row
	}

	rows := make([]model.Row, 0, len(byDate))
	for _, row := range byDate {
		rows = append(rows, row)
	}
	// Deterministic insert order so reloads produce identical tables.
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows, nil
}

// replaceTable loads rows into the staging table and swaps it in. The
// whole operation runs in one transaction under the ingest advisory lock,
// so in-flight reads never observe a partially loaded table.
func (l *Loader) replaceTable(ctx context.Context, rows []model.Row) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	if err := database.AcquireIngestLock(ctx, conn.Conn()); err != nil {
		return err
	}
	defer func() {
		if err := database.ReleaseIngestLock(context.WithoutCancel(ctx), conn.Conn()); err != nil {
			l.logger.Warn("release ingest lock failed", "error", err)
		}
	}()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := database.ResetStaging(ctx, tx); err != nil {
		return err
	}

	insertSQL := database.InsertSQL(database.StagingTableName)
	cols := model.NumericColumns()

	for offset := 0; offset < len(rows); offset += l.batchSize {
		end := min(offset+l.batchSize, len(rows))

		batch := &pgx.Batch{}
		for _, row := range rows[offset:end] {
			args := make([]any, 0, len(cols)+1)
			args = append(args, row.Date)
			for _, col := range cols {
				args = append(args, row.Value(col))
			}
			batch.Queue(insertSQL, args...)
		}

		results := tx.SendBatch(ctx, batch)
		for range rows[offset:end] {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return fmt.Errorf("insert batch: %w", err)
			}
		}
		if err := results.Close(); err != nil {
			return fmt.Errorf("close batch: %w", err)
		}
	}

	if err := database.SwapStaging(ctx, tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit ingestion: %w", err)
	}
	return nil
}
