package store

import (
	"context"
	"errors"
	"time"

	"github.com/dmaher/stockdata/internal/model"
)

// ErrEmpty is returned when a query that requires rows finds none.
var ErrEmpty = errors.New("store: no rows")

// ListQuery filters and paginates a row listing. The service layer
// validates and clamps the values before they reach a Store.
type ListQuery struct {
	Limit   int
	Offset  int
	DateEq  *time.Time
	DateGte *time.Time
	DateLte *time.Time
}

// Store is the read interface over ingested rows. All listings are
// ordered newest first.
type Store interface {
	// ListRows returns rows matching q. An offset past the last match
	// yields an empty slice, not an error.
	ListRows(ctx context.Context, q ListQuery) ([]model.Row, error)

	// Latest returns the row with the maximum date, or ErrEmpty.
	Latest(ctx context.Context) (model.Row, error)

	// RecentRows returns at most n of the newest rows.
	RecentRows(ctx context.Context, n int) ([]model.Row, error)

	// RowsSince returns rows with date >= since, newest first.
	RowsSince(ctx context.Context, since time.Time) ([]model.Row, error)

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}
