package trainee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/validator"
)

type CreateTraineeRequest struct {
	CivilID          string  `json:"civil_id"`
	MilitaryID       string  `json:"military_id"`
	FullName         string  `json:"full_name"`
	RankID           string  `json:"rank_id"`
	SpecializationID string  `json:"specialization_id"`
	ShiftID          string  `json:"shift_id"`
	GroupID          *string `json:"group_id,omitempty"`
	BarcodeValue     *string `json:"barcode_value,omitempty"`
	Status           *string `json:"status,omitempty"`
}

func (r *CreateTraineeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.CivilID = strings.TrimSpace(r.CivilID)
	r.MilitaryID = strings.TrimSpace(r.MilitaryID)
	r.FullName = strings.TrimSpace(r.FullName)

	errs = append(errs, validateNumericID("civil_id", r.CivilID)...)
	errs = append(errs, validateNumericID("military_id", r.MilitaryID)...)

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	} else if len(r.FullName) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not exceed 255 characters",
		})
	}

	for field, id := range map[string]string{"rank_id": r.RankID, "specialization_id": r.SpecializationID, "shift_id": r.ShiftID} {
		if validator.IsEmpty(id) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " is required",
			})
		} else if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be a valid UUID",
			})
		}
	}

	if r.GroupID != nil && !validator.IsValidUUID(*r.GroupID) {
		errs = append(errs, validator.ValidationError{
			Field:   "group_id",
			Message: "group_id must be a valid UUID",
		})
	}

	if r.BarcodeValue != nil && !validator.IsValidBarcode(*r.BarcodeValue) {
		errs = append(errs, validator.ValidationError{
			Field:   "barcode_value",
			Message: "barcode_value may only contain letters, numbers and dashes",
		})
	}

	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{string(StatusActive), string(StatusInactive)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: active, inactive",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateTraineeRequest is a partial update; nil fields keep their stored value.
type UpdateTraineeRequest struct {
	ID               string  `json:"-"`
	CivilID          *string `json:"civil_id,omitempty"`
	MilitaryID       *string `json:"military_id,omitempty"`
	FullName         *string `json:"full_name,omitempty"`
	RankID           *string `json:"rank_id,omitempty"`
	SpecializationID *string `json:"specialization_id,omitempty"`
	ShiftID          *string `json:"shift_id,omitempty"`
	GroupID          *string `json:"group_id,omitempty"`
	ClearGroup       bool    `json:"clear_group,omitempty"`
	BarcodeValue     *string `json:"barcode_value,omitempty"`
	Status           *string `json:"status,omitempty"`
}

func (r *UpdateTraineeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}

	if r.CivilID != nil {
		errs = append(errs, validateNumericID("civil_id", strings.TrimSpace(*r.CivilID))...)
	}
	if r.MilitaryID != nil {
		errs = append(errs, validateNumericID("military_id", strings.TrimSpace(*r.MilitaryID))...)
	}

	if r.FullName != nil {
		if validator.IsEmpty(*r.FullName) {
			errs = append(errs, validator.ValidationError{
				Field:   "full_name",
				Message: "full_name must not be empty",
			})
		} else if len(*r.FullName) > 255 {
			errs = append(errs, validator.ValidationError{
				Field:   "full_name",
				Message: "full_name must not exceed 255 characters",
			})
		}
	}

	for field, id := range map[string]*string{"rank_id": r.RankID, "specialization_id": r.SpecializationID, "shift_id": r.ShiftID, "group_id": r.GroupID} {
		if id != nil && !validator.IsValidUUID(*id) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be a valid UUID",
			})
		}
	}

	if r.BarcodeValue != nil && !validator.IsValidBarcode(*r.BarcodeValue) {
		errs = append(errs, validator.ValidationError{
			Field:   "barcode_value",
			Message: "barcode_value may only contain letters, numbers and dashes",
		})
	}

	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{string(StatusActive), string(StatusInactive)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: active, inactive",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateNumericID(field, value string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if validator.IsEmpty(value) {
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: field + " is required",
		})
	} else if !validator.IsNumeric(value) {
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: field + " must contain only numbers",
		})
	} else if len(value) > 20 {
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: field + " must not exceed 20 digits",
		})
	}
	return errs
}

type TraineeFilter struct {
	Search  *string `json:"search,omitempty"`
	ShiftID *string `json:"shift_id,omitempty"`
	GroupID *string `json:"group_id,omitempty"`
	Status  *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *TraineeFilter) Validate() error {
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

	if f.ShiftID != nil && !validator.IsValidUUID(*f.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id must be a valid UUID",
		})
	}
	if f.GroupID != nil && !validator.IsValidUUID(*f.GroupID) {
		errs = append(errs, validator.ValidationError{
			Field:   "group_id",
			Message: "group_id must be a valid UUID",
		})
	}
	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{string(StatusActive), string(StatusInactive)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: active, inactive",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TraineeResponse struct {
	ID                 string  `json:"id"`
	CivilID            string  `json:"civil_id"`
	MilitaryID         string  `json:"military_id"`
	FullName           string  `json:"full_name"`
	RankID             string  `json:"rank_id"`
	RankName           *string `json:"rank_name,omitempty"`
	SpecializationID   string  `json:"specialization_id"`
	SpecializationName *string `json:"specialization_name,omitempty"`
	ShiftID            string  `json:"shift_id"`
	ShiftName          *string `json:"shift_name,omitempty"`
	GroupID            *string `json:"group_id,omitempty"`
	GroupName          *string `json:"group_name,omitempty"`
	BarcodeValue       string  `json:"barcode_value"`
	Status             Status  `json:"status"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

func NewTraineeResponse(t Trainee) TraineeResponse {
	return TraineeResponse{
		ID:                 t.ID,
		CivilID:            t.CivilID,
		MilitaryID:         t.MilitaryID,
		FullName:           t.FullName,
		RankID:             t.RankID,
		RankName:           t.RankName,
		SpecializationID:   t.SpecializationID,
		SpecializationName: t.SpecializationName,
		ShiftID:            t.ShiftID,
		ShiftName:          t.ShiftName,
		GroupID:            t.GroupID,
		GroupName:          t.GroupName,
		BarcodeValue:       t.BarcodeValue,
		Status:             t.Status,
		CreatedAt:          t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          t.UpdatedAt.Format(time.RFC3339),
	}
}

type ListTraineeResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Trainees   []TraineeResponse `json:"trainees"`
}
