package rank

import (
	"strings"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/validator"
)

type CreateRankRequest struct {
	Name string `json:"name"`
}

func (r *CreateRankRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
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

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateRankRequest struct {
	ID   string `json:"-"`
	Name string `json:"name"`
}

func (r *UpdateRankRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}

	r.Name = strings.TrimSpace(r.Name)
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

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RankResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewRankResponse(v Rank) RankResponse {
	return RankResponse{ID: v.ID, Name: v.Name}
}
