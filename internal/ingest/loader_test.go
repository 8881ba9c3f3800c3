package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dmaher/stockdata/internal/model"
)

const sampleCSV = `Date,Apple Price,Apple_Vol.,Bitcoin Price,Unnamed: 0
2024-01-01,100,"1,000",42000,junk
2024-01-02,"$101","1,100",42500,junk
bad-date,102,1200,43000,junk
2024-01-03,,1300,n/a,junk
`

func parseSample(t *testing.T, csv string) ([]model.Row, *model.Report) {
	t.Helper()
	l := NewLoader(nil, 500, nil)
	report := &model.Report{RunID: uuid.New()}
	rows, err := l.parseTable(strings.NewReader(csv), report)
	if err != nil {
		t.Fatalf("parseTable failed: %v", err)
	}
	return rows, report
}

func TestParseTable(t *testing.T) {
	rows, report := parseSample(t, sampleCSV)

	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}
	if report.RowsRejected != 1 {
		t.Errorf("RowsRejected = %d, want 1", report.RowsRejected)
	}
	if len(report.DroppedColumns) != 1 || report.DroppedColumns[0] != "Unnamed: 0" {
		t.Errorf("DroppedColumns = %v, want [Unnamed: 0]", report.DroppedColumns)
	}

	// Rows come out in ascending date order.
	for i := 1; i < len(rows); i++ {
		if !rows[i-1].Date.Before(rows[i].Date) {
			t.Errorf("rows not sorted: %v before %v", rows[i-1].Date, rows[i].Date)
		}
	}

	first := rows[0]
	if got := first.Date; !got.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("first row date = %v", got)
	}
	if v := first.Value("apple_price"); v == nil || *v != 100 {
		t.Errorf("apple_price = %v, want 100", v)
	}
	if v := first.Value("apple_vol"); v == nil || *v != 1000 {
		t.Errorf("apple_vol = %v, want 1000", v)
	}

	// Currency and separators stripped.
	second := rows[1]
	if v := second.Value("apple_price"); v == nil || *v != 101 {
		t.Errorf("second apple_price = %v, want 101", v)
	}

	// Unparseable tokens stay nil, never zero.
	third := rows[2]
	if v := third.Value("apple_price"); v != nil {
		t.Errorf("third apple_price = %v, want nil", *v)
	}
	if v := third.Value("bitcoin_price"); v != nil {
		t.Errorf("third bitcoin_price = %v, want nil", *v)
	}
	// A column absent from the source is still present in the row map
	// (all-nil columns keep the schema stable).
	if v := third.Value("gold_price"); v != nil {
		t.Errorf("gold_price = %v, want nil", *v)
	}
}

func TestParseTableDuplicateDates(t *testing.T) {
	csv := `Date,Apple Price
2024-01-01,100
2024-01-01,105
`
	rows, report := parseSample(t, csv)

	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if report.DuplicateDates != 1 {
		t.Errorf("DuplicateDates = %d, want 1", report.DuplicateDates)
	}
	// Last occurrence wins.
	if v := rows[0].Value("apple_price"); v == nil || *v != 105 {
		t.Errorf("apple_price = %v, want 105", v)
	}
}

func TestParseTableDeterministic(t *testing.T) {
	rowsA, _ := parseSample(t, sampleCSV)
	rowsB, _ := parseSample(t, sampleCSV)

	if len(rowsA) != len(rowsB) {
		t.Fatalf("row counts differ: %d vs %d", len(rowsA), len(rowsB))
	}
	for i := range rowsA {
		if !rowsA[i].Date.Equal(rowsB[i].Date) {
			t.Errorf("row %d date differs", i)
		}
		for _, col := range model.NumericColumns() {
			a, b := rowsA[i].Value(col), rowsB[i].Value(col)
			if (a == nil) != (b == nil) || (a != nil && *a != *b) {
				t.Errorf("row %d column %s differs", i, col)
			}
		}
	}
}

func TestParseTableNoDateColumn(t *testing.T) {
	l := NewLoader(nil, 500, nil)
	report := &model.Report{}
	_, err := l.parseTable(strings.NewReader("Apple Price\n100\n"), report)
	if err == nil {
		t.Error("parseTable without date column should fail")
	}
}
