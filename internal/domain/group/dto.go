package group

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/validator"
)

// MaxScheduleDays bounds a single bulk assignment.
const MaxScheduleDays = 62

type CreateGroupRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (r *CreateGroupRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	if r.Description != nil && len(*r.Description) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateGroupRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (r *UpdateGroupRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}

	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name must not be empty",
			})
		} else if len(*r.Name) > 100 {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name must not exceed 100 characters",
			})
		}
	}

	if r.Description != nil && len(*r.Description) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type GroupResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	TraineeCount int     `json:"trainee_count"`
	CreatedAt    string  `json:"created_at"`
}

func NewGroupResponse(g Group) GroupResponse {
	return GroupResponse{
		ID:           g.ID,
		Name:         g.Name,
		Description:  g.Description,
		TraineeCount: g.TraineeCount,
		CreatedAt:    g.CreatedAt.Format(time.RFC3339),
	}
}

// AssignShiftRequest assigns one shift to a group on Date, or on every day from Date through EndDate.
type AssignShiftRequest struct {
	GroupID string  `json:"-"`
	ShiftID string  `json:"shift_id"`
	Date    string  `json:"date"`
	EndDate *string `json:"end_date,omitempty"`
}

func (r *AssignShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.GroupID) {
		errs = append(errs, validator.ValidationError{
			Field:   "group_id",
			Message: "group_id must be a valid UUID",
		})
	}
	if !validator.IsValidUUID(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id must be a valid UUID",
		})
	}

	start, validStart := validator.IsValidDate(r.Date)
	if !validStart {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.EndDate != nil {
		end, validEnd := validator.IsValidDate(*r.EndDate)
		switch {
		case !validEnd:
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		case validStart && end.Before(start):
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before date",
			})
		case validStart && int(end.Sub(start).Hours()/24)+1 > MaxScheduleDays:
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: ErrScheduleRange.Error(),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Days expands the request into the calendar days it covers. Call after Validate.
func (r *AssignShiftRequest) Days() []time.Time {
	start, _ := validator.IsValidDate(r.Date)
	end := start
	if r.EndDate != nil {
		end, _ = validator.IsValidDate(*r.EndDate)
	}
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

type ScheduleFilter struct {
	GroupID   string `json:"-"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (f *ScheduleFilter) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(f.GroupID) {
		errs = append(errs, validator.ValidationError{
			Field:   "group_id",
			Message: "group_id must be a valid UUID",
		})
	}
	start, validStart := validator.IsValidDate(f.StartDate)
	if !validStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, validEnd := validator.IsValidDate(f.EndDate)
	if !validEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if validStart && validEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ScheduleResponse struct {
	ID        string  `json:"id"`
	GroupID   string  `json:"group_id"`
	ShiftID   string  `json:"shift_id"`
	ShiftName *string `json:"shift_name,omitempty"`
	DayDate   string  `json:"day_date"`
}

func NewScheduleResponse(s Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:        s.ID,
		GroupID:   s.GroupID,
		ShiftID:   s.ShiftID,
		ShiftName: s.ShiftName,
		DayDate:   s.DayDate.Format("2006-01-02"),
	}
}
