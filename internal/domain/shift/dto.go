package shift

import (
	"time"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	Name         string `json:"name"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	GraceMinutes *int   `json:"grace_minutes,omitempty"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	if validator.IsEmpty(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time is required",
		})
	} else if !validator.IsValidTime(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}

	if validator.IsEmpty(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time is required",
		})
	} else if !validator.IsValidTime(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}

	if r.GraceMinutes != nil && *r.GraceMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_minutes",
			Message: "grace_minutes must be 0 or greater",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateShiftRequest is a partial update; nil fields keep their stored value.
type UpdateShiftRequest struct {
	ID           string  `json:"-"`
	Name         *string `json:"name,omitempty"`
	StartTime    *string `json:"start_time,omitempty"`
	EndTime      *string `json:"end_time,omitempty"`
	GraceMinutes *int    `json:"grace_minutes,omitempty"`
}

func (r *UpdateShiftRequest) Validate() error {
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

	if r.StartTime != nil && !validator.IsValidTime(*r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}

	if r.EndTime != nil && !validator.IsValidTime(*r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}

	if r.GraceMinutes != nil && *r.GraceMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_minutes",
			Message: "grace_minutes must be 0 or greater",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ShiftResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	StartTime          TimeOfDay `json:"start_time"`
	EndTime            TimeOfDay `json:"end_time"`
	GraceMinutes       int       `json:"grace_minutes"`
	EffectiveStartTime TimeOfDay `json:"effective_start_time"`
	ScheduledMinutes   int       `json:"scheduled_minutes"`
	IsOvernight        bool      `json:"is_overnight"`
	CreatedAt          string    `json:"created_at"`
	UpdatedAt          string    `json:"updated_at"`
}

func NewShiftResponse(s Shift) ShiftResponse {
	return ShiftResponse{
		ID:                 s.ID,
		Name:               s.Name,
		StartTime:          s.StartTime,
		EndTime:            s.EndTime,
		GraceMinutes:       s.GraceMinutes,
		EffectiveStartTime: s.EffectiveStartTime,
		ScheduledMinutes:   s.ScheduledMinutes(),
		IsOvernight:        s.IsOvernight(),
		CreatedAt:          s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          s.UpdatedAt.Format(time.RFC3339),
	}
}
