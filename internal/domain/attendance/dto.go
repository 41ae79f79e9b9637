package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/validator"
)

// ========================================
// KIOSK DTOs
// ========================================

type ScanRequest struct {
	Code string   `json:"code"`
	Mode ScanMode `json:"mode"`
}

func (r *ScanRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Code = strings.TrimSpace(r.Code)
	if validator.IsEmpty(r.Code) {
		errs.Add("code", "code is required")
	} else if !validator.IsValidBarcode(r.Code) {
		errs.Add("code", "code may only contain letters, numbers and dashes")
	}

	r.Mode = ScanMode(strings.ToUpper(strings.TrimSpace(string(r.Mode))))
	if r.Mode != ScanModeIn && r.Mode != ScanModeOut {
		errs.Add("mode", "mode must be one of: IN, OUT")
	}

	return errs.Err()
}

type ScanResponse struct {
	Mode        ScanMode        `json:"mode"`
	TraineeID   string          `json:"trainee_id"`
	TraineeName string          `json:"trainee_name"`
	ShiftName   string          `json:"shift_name"`
	Message     string          `json:"message"`
	Session     SessionResponse `json:"session"`
}

// ========================================
// SESSION DTOs
// ========================================

type SessionResponse struct {
	ID                string  `json:"id"`
	TraineeID         string  `json:"trainee_id"`
	TraineeName       *string `json:"trainee_name,omitempty"`
	CivilID           *string `json:"civil_id,omitempty"`
	RankName          *string `json:"rank_name,omitempty"`
	ShiftID           string  `json:"shift_id"`
	ShiftName         *string `json:"shift_name,omitempty"`
	DayDate           string  `json:"day_date"`
	CheckInAt         *string `json:"check_in_at"`
	CheckOutAt        *string `json:"check_out_at"`
	ScheduledMinutes  int     `json:"scheduled_minutes"`
	LateMinutes       int     `json:"late_minutes"`
	ActualMinutes     *int    `json:"actual_minutes"`
	LostMinutes       *int    `json:"lost_minutes"`
	EarlyLeaveMinutes *int    `json:"early_leave_minutes"`
	Status            Status  `json:"status"`
	Notes             *string `json:"notes,omitempty"`
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func NewSessionResponse(s Session) SessionResponse {
	return SessionResponse{
		ID:                s.ID,
		TraineeID:         s.TraineeID,
		TraineeName:       s.TraineeName,
		CivilID:           s.CivilID,
		RankName:          s.RankName,
		ShiftID:           s.ShiftID,
		ShiftName:         s.ShiftName,
		DayDate:           s.DayDate.Format("2006-01-02"),
		CheckInAt:         timePtrToString(s.CheckInAt),
		CheckOutAt:        timePtrToString(s.CheckOutAt),
		ScheduledMinutes:  s.ScheduledMinutes,
		LateMinutes:       s.LateMinutes,
		ActualMinutes:     s.ActualMinutes,
		LostMinutes:       s.LostMinutes,
		EarlyLeaveMinutes: s.EarlyLeaveMinutes,
		Status:            s.Status,
		Notes:             s.Notes,
	}
}

type SessionFilter struct {
	TraineeID *string `json:"trainee_id,omitempty"`
	ShiftID   *string `json:"shift_id,omitempty"`
	Date      *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status    *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // day_date, trainee_name, check_in_at, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *SessionFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.TraineeID != nil && !validator.IsValidUUID(*f.TraineeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "trainee_id",
			Message: "trainee_id must be a valid UUID",
		})
	}
	if f.ShiftID != nil && !validator.IsValidUUID(*f.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id must be a valid UUID",
		})
	}

	if f.Status != nil && !Status(*f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, late, absent, escaped",
		})
	}

	for field, value := range map[string]*string{"date": f.Date, "start_date": f.StartDate, "end_date": f.EndDate} {
		if value != nil && *value != "" {
			if _, valid := validator.IsValidDate(*value); !valid {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: field + " must be in YYYY-MM-DD format",
				})
			}
		}
	}

	if f.SortBy != "" {
		validSortFields := []string{"day_date", "trainee_name", "check_in_at", "status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: day_date, trainee_name, check_in_at, status",
			})
		}
	} else {
		f.SortBy = "day_date"
	}

	if f.SortOrder != "" {
		f.SortOrder = strings.ToLower(f.SortOrder)
		if !validator.IsInSlice(f.SortOrder, []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc"
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListSessionResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Showing    string            `json:"showing"`
	Sessions   []SessionResponse `json:"sessions"`
}

// UpdateStatusRequest lets a supervisor mark a session absent or escaped, or correct it back.
type UpdateStatusRequest struct {
	ID     string  `json:"-"`
	Status Status  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}

	if !r.Status.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, late, absent, escaped",
		})
	}

	if r.Notes != nil && len(*r.Notes) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ManualPunchRequest lets a supervisor record a check-in or check-out on a trainee's behalf.
// At defaults to the current instant.
type ManualPunchRequest struct {
	TraineeID string  `json:"trainee_id"`
	At        *string `json:"at,omitempty"` // RFC3339
}

func (r *ManualPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.TraineeID) {
		errs.Add("trainee_id", "trainee_id must be a valid UUID")
	}
	if r.At != nil {
		if _, ok := validator.IsValidDateTime(*r.At); !ok {
			errs.Add("at", "at must be an RFC3339 timestamp")
		}
	}

	return errs.Err()
}

// Instant resolves At, falling back to now. Call after Validate.
func (r *ManualPunchRequest) Instant(now time.Time) time.Time {
	if r.At == nil {
		return now
	}
	t, _ := validator.IsValidDateTime(*r.At)
	return t
}
