package report

import (
	"context"
	"time"
)

// ReportRepository defines the interface for report data access
type ReportRepository interface {
	// DailyRows lists every session recorded for the day, joined with trainee and shift names.
	DailyRows(ctx context.Context, day time.Time) ([]DailyRow, error)

	// TraineeTotals aggregates sessions per trainee over an inclusive date range.
	TraineeTotals(ctx context.Context, from, to time.Time) ([]TraineeTotals, error)
}
