package report

import (
	"bytes"
	"context"
)

// ReportService defines the interface for report generation
type ReportService interface {
	Daily(ctx context.Context, req DailyReportRequest) (DailyReport, error)

	// ExportDaily renders the daily report as an XLSX workbook and suggests a filename.
	ExportDaily(ctx context.Context, req DailyReportRequest) (*bytes.Buffer, string, error)

	Period(ctx context.Context, req PeriodReportRequest) (PeriodReport, error)
}
