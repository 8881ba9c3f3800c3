package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmaher/stockdata/internal/model"
)

// Memory is an in-memory Store used in tests and local development.
// Replace swaps the whole dataset atomically, mirroring the table swap
// the Postgres store sees after ingestion.
type Memory struct {
	mu   sync.RWMutex
	rows []model.Row // newest first
}

// NewMemory creates a Memory store seeded with the given rows.
func NewMemory(rows ...model.Row) *Memory {
	m := &Memory{}
	m.Replace(rows)
	return m
}

// Replace atomically swaps the dataset. Rows are de-duplicated by date
// (last wins) and held newest first.
func (m *Memory) Replace(rows []model.Row) {
	byDate := make(map[time.Time]model.Row, len(rows))
	for _, r := range rows {
		byDate[model.Midnight(r.Date)] = r
	}
	sorted := make([]model.Row, 0, len(byDate))
	for _, r := range byDate {
		sorted = append(sorted, r)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })

	m.mu.Lock()
	m.rows = sorted
	m.mu.Unlock()
}

func (m *Memory) ListRows(ctx context.Context, q ListQuery) ([]model.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []model.Row
	for _, r := range m.rows {
		if q.DateEq != nil && !r.Date.Equal(*q.DateEq) {
			continue
		}
		if q.DateGte != nil && r.Date.Before(*q.DateGte) {
			continue
		}
		if q.DateLte != nil && r.Date.After(*q.DateLte) {
			continue
		}
		matched = append(matched, r)
	}

	if q.Offset >= len(matched) {
		return []model.Row{}, nil
	}
	matched = matched[q.Offset:]
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func (m *Memory) Latest(ctx context.Context) (model.Row, error) {
	if err := ctx.Err(); err != nil {
		return model.Row{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.rows) == 0 {
		return model.Row{}, ErrEmpty
	}
	return m.rows[0], nil
}

func (m *Memory) RecentRows(ctx context.Context, n int) ([]model.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if n > len(m.rows) {
		n = len(m.rows)
	}
	if n < 0 {
		n = 0
	}
	out := make([]model.Row, n)
	copy(out, m.rows[:n])
	return out, nil
}

func (m *Memory) RowsSince(ctx context.Context, since time.Time) ([]model.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []model.Row
	for _, r := range m.rows {
		if r.Date.Before(since) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *Memory) Ping(ctx context.Context) error {
	return ctx.Err()
}
