package store

import (
	"strings"
	"testing"
	"time"
)

func dptr(t time.Time) *time.Time { return &t }

func TestBuildListSQL(t *testing.T) {
	jan3 := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	jan5 := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		q        ListQuery
		wantSub  []string
		wantArgs int
	}{
		{
			name:     "no filters",
			q:        ListQuery{Limit: 100, Offset: 0},
			wantSub:  []string{"ORDER BY date DESC", "LIMIT $1", "OFFSET $2"},
			wantArgs: 2,
		},
		{
			name:     "date eq",
			q:        ListQuery{Limit: 10, DateEq: dptr(jan3)},
			wantSub:  []string{"WHERE date = $1", "LIMIT $2", "OFFSET $3"},
			wantArgs: 3,
		},
		{
			name:     "date range",
			q:        ListQuery{Limit: 10, DateGte: dptr(jan3), DateLte: dptr(jan5)},
			wantSub:  []string{"WHERE date >= $1 AND date <= $2", "LIMIT $3", "OFFSET $4"},
			wantArgs: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := BuildListSQL(tt.q)
			for _, sub := range tt.wantSub {
				if !strings.Contains(sql, sub) {
					t.Errorf("sql %q missing %q", sql, sub)
				}
			}
			if len(args) != tt.wantArgs {
				t.Errorf("len(args) = %d, want %d", len(args), tt.wantArgs)
			}
			if !strings.HasPrefix(sql, "SELECT date, ") {
				t.Errorf("sql should select date first: %q", sql)
			}
		})
	}
}

func TestBuildListSQLFiltersBeforePagination(t *testing.T) {
	jan3 := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	sql, _ := BuildListSQL(ListQuery{Limit: 2, Offset: 1, DateGte: dptr(jan3)})

	whereIdx := strings.Index(sql, "WHERE")
	limitIdx := strings.Index(sql, "LIMIT")
	if whereIdx < 0 || limitIdx < 0 || whereIdx > limitIdx {
		t.Errorf("filters must apply before pagination: %q", sql)
	}
}
