package trainee

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/trainee"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/validator"
)

type TraineeServiceImpl struct {
	traineeRepo trainee.TraineeRepository
}

func NewTraineeService(traineeRepo trainee.TraineeRepository) trainee.TraineeService {
	return &TraineeServiceImpl{traineeRepo: traineeRepo}
}

// Create implements trainee.TraineeService. The barcode defaults to the military ID.
func (s *TraineeServiceImpl) Create(ctx context.Context, req trainee.CreateTraineeRequest) (trainee.TraineeResponse, error) {
	if err := req.Validate(); err != nil {
		return trainee.TraineeResponse{}, err
	}

	entity := trainee.Trainee{
		CivilID:          req.CivilID,
		MilitaryID:       req.MilitaryID,
		FullName:         req.FullName,
		RankID:           req.RankID,
		SpecializationID: req.SpecializationID,
		ShiftID:          req.ShiftID,
		GroupID:          req.GroupID,
		BarcodeValue:     req.MilitaryID,
		Status:           trainee.StatusActive,
	}
	if req.BarcodeValue != nil && strings.TrimSpace(*req.BarcodeValue) != "" {
		entity.BarcodeValue = strings.TrimSpace(*req.BarcodeValue)
	}
	if req.Status != nil {
		entity.Status = trainee.Status(*req.Status)
	}

	created, err := s.traineeRepo.Create(ctx, entity)
	if err != nil {
		return trainee.TraineeResponse{}, err
	}

	return trainee.NewTraineeResponse(created), nil
}

// Get implements trainee.TraineeService.
func (s *TraineeServiceImpl) Get(ctx context.Context, id string) (trainee.TraineeResponse, error) {
	if !validator.IsValidUUID(id) {
		return trainee.TraineeResponse{}, validator.ValidationErrors{{Field: "id", Message: "id must be a valid UUID"}}
	}

	found, err := s.traineeRepo.GetByID(ctx, id)
	if err != nil {
		return trainee.TraineeResponse{}, err
	}
	return trainee.NewTraineeResponse(found), nil
}

// List implements trainee.TraineeService.
func (s *TraineeServiceImpl) List(ctx context.Context, filter trainee.TraineeFilter) (trainee.ListTraineeResponse, error) {
	if err := filter.Validate(); err != nil {
		return trainee.ListTraineeResponse{}, err
	}

	trainees, total, err := s.traineeRepo.List(ctx, filter)
	if err != nil {
		return trainee.ListTraineeResponse{}, fmt.Errorf("failed to list trainees: %w", err)
	}

	responses := make([]trainee.TraineeResponse, 0, len(trainees))
	for _, t := range trainees {
		responses = append(responses, trainee.NewTraineeResponse(t))
	}

	return trainee.ListTraineeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Trainees:   responses,
	}, nil
}

// Update implements trainee.TraineeService.
func (s *TraineeServiceImpl) Update(ctx context.Context, req trainee.UpdateTraineeRequest) (trainee.TraineeResponse, error) {
	if err := req.Validate(); err != nil {
		return trainee.TraineeResponse{}, err
	}

	existing, err := s.traineeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return trainee.TraineeResponse{}, err
	}

	if req.CivilID != nil {
		existing.CivilID = strings.TrimSpace(*req.CivilID)
	}
	if req.MilitaryID != nil {
		existing.MilitaryID = strings.TrimSpace(*req.MilitaryID)
	}
	if req.FullName != nil {
		existing.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.RankID != nil {
		existing.RankID = *req.RankID
	}
	if req.SpecializationID != nil {
		existing.SpecializationID = *req.SpecializationID
	}
	if req.ShiftID != nil {
		existing.ShiftID = *req.ShiftID
	}
	switch {
	case req.ClearGroup:
		existing.GroupID = nil
	case req.GroupID != nil:
		existing.GroupID = req.GroupID
	}
	if req.BarcodeValue != nil {
		existing.BarcodeValue = strings.TrimSpace(*req.BarcodeValue)
	}
	if req.Status != nil {
		existing.Status = trainee.Status(*req.Status)
	}

	updated, err := s.traineeRepo.Update(ctx, existing)
	if err != nil {
		return trainee.TraineeResponse{}, err
	}

	return trainee.NewTraineeResponse(updated), nil
}

// Delete implements trainee.TraineeService.
func (s *TraineeServiceImpl) Delete(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return validator.ValidationErrors{{Field: "id", Message: "id must be a valid UUID"}}
	}
	return s.traineeRepo.Delete(ctx, id)
}
