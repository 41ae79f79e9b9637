package master

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/master/rank"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/master/specialization"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/validator"
)

type MasterService interface {
	// Rank operations
	CreateRank(ctx context.Context, req rank.CreateRankRequest) (rank.RankResponse, error)
	GetRank(ctx context.Context, id string) (rank.RankResponse, error)
	ListRanks(ctx context.Context) ([]rank.RankResponse, error)
	UpdateRank(ctx context.Context, req rank.UpdateRankRequest) (rank.RankResponse, error)
	DeleteRank(ctx context.Context, id string) error

	// Specialization operations
	CreateSpecialization(ctx context.Context, req specialization.CreateSpecializationRequest) (specialization.SpecializationResponse, error)
	GetSpecialization(ctx context.Context, id string) (specialization.SpecializationResponse, error)
	ListSpecializations(ctx context.Context) ([]specialization.SpecializationResponse, error)
	UpdateSpecialization(ctx context.Context, req specialization.UpdateSpecializationRequest) (specialization.SpecializationResponse, error)
	DeleteSpecialization(ctx context.Context, id string) error
}

type masterServiceImpl struct {
	rankRepo           rank.RankRepository
	specializationRepo specialization.SpecializationRepository
}

func NewMasterService(
	rankRepo rank.RankRepository,
	specializationRepo specialization.SpecializationRepository,
) MasterService {
	return &masterServiceImpl{
		rankRepo:           rankRepo,
		specializationRepo: specializationRepo,
	}
}

func validateID(id string) error {
	if !validator.IsValidUUID(id) {
		return validator.ValidationErrors{{Field: "id", Message: "id must be a valid UUID"}}
	}
	return nil
}

// ==================== RANK OPERATIONS ====================

func (s *masterServiceImpl) CreateRank(ctx context.Context, req rank.CreateRankRequest) (rank.RankResponse, error) {
	if err := req.Validate(); err != nil {
		return rank.RankResponse{}, err
	}

	created, err := s.rankRepo.Create(ctx, req.Name)
	if err != nil {
		return rank.RankResponse{}, err
	}

	return rank.NewRankResponse(created), nil
}

func (s *masterServiceImpl) GetRank(ctx context.Context, id string) (rank.RankResponse, error) {
	if err := validateID(id); err != nil {
		return rank.RankResponse{}, err
	}

	entity, err := s.rankRepo.GetByID(ctx, id)
	if err != nil {
		return rank.RankResponse{}, err
	}

	return rank.NewRankResponse(entity), nil
}

func (s *masterServiceImpl) ListRanks(ctx context.Context) ([]rank.RankResponse, error) {
	entities, err := s.rankRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ranks: %w", err)
	}

	responses := make([]rank.RankResponse, 0, len(entities))
	for _, e := range entities {
		responses = append(responses, rank.NewRankResponse(e))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdateRank(ctx context.Context, req rank.UpdateRankRequest) (rank.RankResponse, error) {
	if err := req.Validate(); err != nil {
		return rank.RankResponse{}, err
	}

	updated, err := s.rankRepo.Update(ctx, req)
	if err != nil {
		return rank.RankResponse{}, err
	}

	return rank.NewRankResponse(updated), nil
}

func (s *masterServiceImpl) DeleteRank(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return s.rankRepo.Delete(ctx, id)
}

// ==================== SPECIALIZATION OPERATIONS ====================

func (s *masterServiceImpl) CreateSpecialization(ctx context.Context, req specialization.CreateSpecializationRequest) (specialization.SpecializationResponse, error) {
	if err := req.Validate(); err != nil {
		return specialization.SpecializationResponse{}, err
	}

	created, err := s.specializationRepo.Create(ctx, req.Name)
	if err != nil {
		return specialization.SpecializationResponse{}, err
	}

	return specialization.NewSpecializationResponse(created), nil
}

func (s *masterServiceImpl) GetSpecialization(ctx context.Context, id string) (specialization.SpecializationResponse, error) {
	if err := validateID(id); err != nil {
		return specialization.SpecializationResponse{}, err
	}

	entity, err := s.specializationRepo.GetByID(ctx, id)
	if err != nil {
		return specialization.SpecializationResponse{}, err
	}

	return specialization.NewSpecializationResponse(entity), nil
}

func (s *masterServiceImpl) ListSpecializations(ctx context.Context) ([]specialization.SpecializationResponse, error) {
	entities, err := s.specializationRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list specializations: %w", err)
	}

	responses := make([]specialization.SpecializationResponse, 0, len(entities))
	for _, e := range entities {
		responses = append(responses, specialization.NewSpecializationResponse(e))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdateSpecialization(ctx context.Context, req specialization.UpdateSpecializationRequest) (specialization.SpecializationResponse, error) {
	if err := req.Validate(); err != nil {
		return specialization.SpecializationResponse{}, err
	}

	updated, err := s.specializationRepo.Update(ctx, req)
	if err != nil {
		return specialization.SpecializationResponse{}, err
	}

	return specialization.NewSpecializationResponse(updated), nil
}

func (s *masterServiceImpl) DeleteSpecialization(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return s.specializationRepo.Delete(ctx, id)
}
