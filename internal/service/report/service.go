package report

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/report"
)

type ReportServiceImpl struct {
	reportRepo report.ReportRepository
	loc        *time.Location
	now        func() time.Time
}

func NewReportService(reportRepo report.ReportRepository, loc *time.Location) report.ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportServiceImpl{
		reportRepo: reportRepo,
		loc:        loc,
		now:        time.Now,
	}
}

// Daily implements report.ReportService.
func (s *ReportServiceImpl) Daily(ctx context.Context, req report.DailyReportRequest) (report.DailyReport, error) {
	if err := req.Validate(); err != nil {
		return report.DailyReport{}, err
	}

	rows, err := s.reportRepo.DailyRows(ctx, req.Day())
	if err != nil {
		return report.DailyReport{}, fmt.Errorf("failed to load daily rows: %w", err)
	}

	result := report.DailyReport{
		Date:        req.Date,
		GeneratedAt: s.now().In(s.loc).Format(time.RFC3339),
		Attendance:  []report.DailyRow{},
		Absences:    []report.DailyRow{},
		Escapes:     []report.DailyRow{},
	}

	for _, row := range rows {
		sum := &result.Summary
		sum.Total++
		sum.TotalLateMinutes += row.LateMinutes
		if row.LostMinutes != nil {
			sum.TotalLostMinutes += *row.LostMinutes
		}
		if row.EarlyLeaveMinutes != nil {
			sum.TotalEarlyLeaveMinutes += *row.EarlyLeaveMinutes
		}

		switch attendance.Status(row.Status) {
		case attendance.StatusPresent:
			sum.Present++
			result.Attendance = append(result.Attendance, row)
		case attendance.StatusLate:
			sum.Late++
			result.Attendance = append(result.Attendance, row)
		case attendance.StatusAbsent:
			sum.Absent++
			result.Absences = append(result.Absences, row)
		case attendance.StatusEscaped:
			sum.Escaped++
			result.Escapes = append(result.Escapes, row)
		}
	}

	return result, nil
}

// Period implements report.ReportService.
func (s *ReportServiceImpl) Period(ctx context.Context, req report.PeriodReportRequest) (report.PeriodReport, error) {
	if err := req.Validate(); err != nil {
		return report.PeriodReport{}, err
	}

	from, _ := time.Parse(time.DateOnly, req.StartDate)
	to, _ := time.Parse(time.DateOnly, req.EndDate)

	totals, err := s.reportRepo.TraineeTotals(ctx, from, to)
	if err != nil {
		return report.PeriodReport{}, fmt.Errorf("failed to aggregate trainee totals: %w", err)
	}
	if totals == nil {
		totals = []report.TraineeTotals{}
	}

	return report.PeriodReport{
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		GeneratedAt: s.now().In(s.loc).Format(time.RFC3339),
		Trainees:    totals,
	}, nil
}
