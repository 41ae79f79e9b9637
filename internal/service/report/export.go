package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const (
	sheetAttendance = "Attendance"
	sheetAbsences   = "Absences"
	sheetSummary    = "Summary"
)

var attendanceHeader = []string{
	"Name", "Civil ID", "Military ID", "Rank", "Specialization", "Shift",
	"Check In", "Check Out", "Scheduled (min)", "Late (min)", "Actual (min)",
	"Lost (min)", "Early Leave (min)", "Status", "Notes",
}

var absenceHeader = []string{"Name", "Civil ID", "Military ID", "Rank", "Shift", "Status", "Notes"}

// ExportDaily implements report.ReportService.
func (s *ReportServiceImpl) ExportDaily(ctx context.Context, req report.DailyReportRequest) (*bytes.Buffer, string, error) {
	daily, err := s.Daily(ctx, req)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, "", s.exportFailed(err)
	}

	if err := f.SetSheetName("Sheet1", sheetAttendance); err != nil {
		return nil, "", s.exportFailed(err)
	}
	if err := writeHeader(f, sheetAttendance, attendanceHeader, headerStyle); err != nil {
		return nil, "", s.exportFailed(err)
	}
	for i, row := range daily.Attendance {
		values := []any{
			row.TraineeName, row.CivilID, row.MilitaryID, row.RankName, row.SpecializationName, row.ShiftName,
			s.clock(row.CheckInAt), s.clock(row.CheckOutAt), row.ScheduledMinutes, row.LateMinutes,
			intOrBlank(row.ActualMinutes), intOrBlank(row.LostMinutes), intOrBlank(row.EarlyLeaveMinutes),
			row.Status, stringOrBlank(row.Notes),
		}
		if err := writeRow(f, sheetAttendance, i+2, values); err != nil {
			return nil, "", s.exportFailed(err)
		}
	}

	if _, err := f.NewSheet(sheetAbsences); err != nil {
		return nil, "", s.exportFailed(err)
	}
	if err := writeHeader(f, sheetAbsences, absenceHeader, headerStyle); err != nil {
		return nil, "", s.exportFailed(err)
	}
	missing := append(append([]report.DailyRow{}, daily.Absences...), daily.Escapes...)
	for i, row := range missing {
		values := []any{row.TraineeName, row.CivilID, row.MilitaryID, row.RankName, row.ShiftName, row.Status, stringOrBlank(row.Notes)}
		if err := writeRow(f, sheetAbsences, i+2, values); err != nil {
			return nil, "", s.exportFailed(err)
		}
	}

	if _, err := f.NewSheet(sheetSummary); err != nil {
		return nil, "", s.exportFailed(err)
	}
	sum := daily.Summary
	summary := [][]any{
		{"Date", daily.Date},
		{"Total", sum.Total},
		{"Present", sum.Present},
		{"Late", sum.Late},
		{"Absent", sum.Absent},
		{"Escaped", sum.Escaped},
		{"Total Late Minutes", sum.TotalLateMinutes},
		{"Total Lost Minutes", sum.TotalLostMinutes},
		{"Total Early Leave Minutes", sum.TotalEarlyLeaveMinutes},
	}
	for i, values := range summary {
		if err := writeRow(f, sheetSummary, i+1, values); err != nil {
			return nil, "", s.exportFailed(err)
		}
	}
	_ = f.SetColWidth(sheetSummary, "A", "A", 28)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", s.exportFailed(err)
	}

	return buf, fmt.Sprintf("attendance_%s.xlsx", daily.Date), nil
}

func (s *ReportServiceImpl) exportFailed(err error) error {
	slog.Error("failed to build xlsx export", "error", err)
	return fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
}

func (s *ReportServiceImpl) clock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(s.loc).Format("15:04:05")
}

func writeHeader(f *excelize.File, sheet string, header []string, style int) error {
	values := make([]any, len(header))
	for i, h := range header {
		values[i] = h
	}
	if err := writeRow(f, sheet, 1, values); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	return f.SetColWidth(sheet, "A", lastCol, 16)
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, start, &values)
}

func intOrBlank(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}

func stringOrBlank(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
