package store

import (
	"fmt"
	"strings"

	"github.com/dmaher/stockdata/internal/database"
	"github.com/dmaher/stockdata/internal/model"
)

// selectColumns is the column list shared by every read: date first, then
// the numeric columns in registry order.
func selectColumns() string {
	return "date, " + strings.Join(model.NumericColumns(), ", ")
}

// BuildListSQL renders a ListQuery into a parameterized SELECT.
func BuildListSQL(q ListQuery) (string, []any) {
	var b strings.Builder
	args := make([]any, 0, 5)

	fmt.Fprintf(&b, "SELECT %s FROM %s", selectColumns(), database.TableName)

	var where []string
	if q.DateEq != nil {
		args = append(args, *q.DateEq)
		where = append(where, fmt.Sprintf("date = $%d", len(args)))
	}
	if q.DateGte != nil {
		args = append(args, *q.DateGte)
		where = append(where, fmt.Sprintf("date >= $%d", len(args)))
	}
	if q.DateLte != nil {
		args = append(args, *q.DateLte)
		where = append(where, fmt.Sprintf("date <= $%d", len(args)))
	}
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}

	b.WriteString(" ORDER BY date DESC")

	args = append(args, q.Limit)
	fmt.Fprintf(&b, " LIMIT $%d", len(args))
	args = append(args, q.Offset)
	fmt.Fprintf(&b, " OFFSET $%d", len(args))

	return b.String(), args
}

// BuildRecentSQL renders the newest-n query.
func BuildRecentSQL() string {
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY date DESC LIMIT $1",
		selectColumns(), database.TableName)
}

// BuildSinceSQL renders the date >= since query.
func BuildSinceSQL() string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE date >= $1 ORDER BY date DESC",
		selectColumns(), database.TableName)
}
