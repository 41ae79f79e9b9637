package shift

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/validator"
)

type ShiftServiceImpl struct {
	shiftRepo shift.ShiftRepository
}

func NewShiftService(shiftRepo shift.ShiftRepository) shift.ShiftService {
	return &ShiftServiceImpl{shiftRepo: shiftRepo}
}

// Create implements shift.ShiftService.
func (s *ShiftServiceImpl) Create(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	start, err := shift.ParseTimeOfDay(strings.TrimSpace(req.StartTime))
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	end, err := shift.ParseTimeOfDay(strings.TrimSpace(req.EndTime))
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	grace := 0
	if req.GraceMinutes != nil {
		grace = *req.GraceMinutes
	}

	entity, err := shift.NewShift(req.Name, start, end, grace)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	created, err := s.shiftRepo.Create(ctx, entity)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return shift.NewShiftResponse(created), nil
}

// Get implements shift.ShiftService.
func (s *ShiftServiceImpl) Get(ctx context.Context, id string) (shift.ShiftResponse, error) {
	if !validator.IsValidUUID(id) {
		return shift.ShiftResponse{}, validator.ValidationErrors{{Field: "id", Message: "id must be a valid UUID"}}
	}

	found, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return shift.NewShiftResponse(found), nil
}

// List implements shift.ShiftService.
func (s *ShiftServiceImpl) List(ctx context.Context) ([]shift.ShiftResponse, error) {
	shifts, err := s.shiftRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, shift.NewShiftResponse(sh))
	}
	return responses, nil
}

// Update implements shift.ShiftService. Any change to the start time or grace recomputes the effective start time.
func (s *ShiftServiceImpl) Update(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	existing, err := s.shiftRepo.GetByID(ctx, req.ID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	if req.Name != nil {
		existing.Name = strings.TrimSpace(*req.Name)
	}

	start, end, grace := existing.StartTime, existing.EndTime, existing.GraceMinutes
	if req.StartTime != nil {
		if start, err = shift.ParseTimeOfDay(strings.TrimSpace(*req.StartTime)); err != nil {
			return shift.ShiftResponse{}, err
		}
	}
	if req.EndTime != nil {
		if end, err = shift.ParseTimeOfDay(strings.TrimSpace(*req.EndTime)); err != nil {
			return shift.ShiftResponse{}, err
		}
	}
	if req.GraceMinutes != nil {
		grace = *req.GraceMinutes
	}
	if err := existing.Reschedule(start, end, grace); err != nil {
		return shift.ShiftResponse{}, err
	}

	updated, err := s.shiftRepo.Update(ctx, existing)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return shift.NewShiftResponse(updated), nil
}

// Delete implements shift.ShiftService.
func (s *ShiftServiceImpl) Delete(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return validator.ValidationErrors{{Field: "id", Message: "id must be a valid UUID"}}
	}
	return s.shiftRepo.Delete(ctx, id)
}
