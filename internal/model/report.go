package model

import (
	"time"

	"github.com/google/uuid"
)

// Report summarizes one ingestion run.
type Report struct {
	RunID          uuid.UUID     `json:"run_id"`
	Source         string        `json:"source"`
	RowsLoaded     int           `json:"rows_loaded"`
	RowsRejected   int           `json:"rows_rejected"`   // rows skipped for unparseable dates
	DuplicateDates int           `json:"duplicate_dates"` // later occurrence replaced earlier
	DroppedColumns []string      `json:"dropped_columns"` // source headers with no canonical mapping
	Duration       time.Duration `json:"duration"`
}
