package report

import (
	"time"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/validator"
)

// ========================================
// DAILY REPORT
// ========================================

type DailyReportRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
}

func (r *DailyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *DailyReportRequest) Day() time.Time {
	d, _ := validator.IsValidDate(r.Date)
	return d
}

type DailyRow struct {
	SessionID          string     `json:"session_id"`
	TraineeID          string     `json:"trainee_id"`
	TraineeName        string     `json:"trainee_name"`
	CivilID            string     `json:"civil_id"`
	MilitaryID         string     `json:"military_id"`
	RankName           string     `json:"rank_name"`
	SpecializationName string     `json:"specialization_name"`
	ShiftName          string     `json:"shift_name"`
	CheckInAt          *time.Time `json:"check_in_at"`
	CheckOutAt         *time.Time `json:"check_out_at"`
	ScheduledMinutes   int        `json:"scheduled_minutes"`
	LateMinutes        int        `json:"late_minutes"`
	ActualMinutes      *int       `json:"actual_minutes"`
	LostMinutes        *int       `json:"lost_minutes"`
	EarlyLeaveMinutes  *int       `json:"early_leave_minutes"`
	Status             string     `json:"status"`
	Notes              *string    `json:"notes,omitempty"`
}

type DailySummary struct {
	Total                  int `json:"total"`
	Present                int `json:"present"`
	Late                   int `json:"late"`
	Absent                 int `json:"absent"`
	Escaped                int `json:"escaped"`
	TotalLateMinutes       int `json:"total_late_minutes"`
	TotalLostMinutes       int `json:"total_lost_minutes"`
	TotalEarlyLeaveMinutes int `json:"total_early_leave_minutes"`
}

type DailyReport struct {
	Date        string       `json:"date"`
	GeneratedAt string       `json:"generated_at"`
	Summary     DailySummary `json:"summary"`
	Attendance  []DailyRow   `json:"attendance"`
	Absences    []DailyRow   `json:"absences"`
	Escapes     []DailyRow   `json:"escapes"`
}

// ========================================
// PERIOD REPORT
// ========================================

type PeriodReportRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *PeriodReportRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: ErrInvalidDateRange.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TraineeTotals struct {
	TraineeID         string `json:"trainee_id"`
	TraineeName       string `json:"trainee_name"`
	CivilID           string `json:"civil_id"`
	RankName          string `json:"rank_name"`
	Sessions          int    `json:"sessions"`
	PresentDays       int    `json:"present_days"`
	LateDays          int    `json:"late_days"`
	AbsentDays        int    `json:"absent_days"`
	EscapedDays       int    `json:"escaped_days"`
	LateMinutes       int    `json:"late_minutes"`
	LostMinutes       int    `json:"lost_minutes"`
	EarlyLeaveMinutes int    `json:"early_leave_minutes"`
}

type PeriodReport struct {
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	GeneratedAt string          `json:"generated_at"`
	Trainees    []TraineeTotals `json:"trainees"`
}
