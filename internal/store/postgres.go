package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmaher/stockdata/internal/model"
)

// Postgres reads rows from the live stock_data table.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps a pgx pool in the Store interface.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) ListRows(ctx context.Context, q ListQuery) ([]model.Row, error) {
	sql, args := BuildListSQL(q)
	return p.queryRows(ctx, sql, args...)
}

func (p *Postgres) Latest(ctx context.Context) (model.Row, error) {
	rows, err := p.queryRows(ctx, BuildRecentSQL(), 1)
	if err != nil {
		return model.Row{}, err
	}
	if len(rows) == 0 {
		return model.Row{}, ErrEmpty
	}
	return rows[0], nil
}

func (p *Postgres) RecentRows(ctx context.Context, n int) ([]model.Row, error) {
	return p.queryRows(ctx, BuildRecentSQL(), n)
}

func (p *Postgres) RowsSince(ctx context.Context, since time.Time) ([]model.Row, error) {
	return p.queryRows(ctx, BuildSinceSQL(), since)
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// queryRows runs a select over the shared column list and scans each row
// into a model.Row. NULLs scan into nil pointers and stay nil.
func (p *Postgres) queryRows(ctx context.Context, sql string, args ...any) ([]model.Row, error) {
	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query rows: %w", err)
	}
	defer rows.Close()

	cols := model.NumericColumns()
	var out []model.Row
	for rows.Next() {
		var date time.Time
		vals := make([]*float64, len(cols))

		dest := make([]any, 0, len(cols)+1)
		dest = append(dest, &date)
		for i := range vals {
			dest = append(dest, &vals[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		row := model.NewRow(date)
		for i, col := range cols {
			row.Set(col, vals[i])
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}
