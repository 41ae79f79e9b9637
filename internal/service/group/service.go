package group

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/group"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/validator"
)

type GroupServiceImpl struct {
	tx           database.Transactor
	groupRepo    group.GroupRepository
	scheduleRepo group.ScheduleRepository
}

func NewGroupService(tx database.Transactor, groupRepo group.GroupRepository, scheduleRepo group.ScheduleRepository) group.GroupService {
	return &GroupServiceImpl{
		tx:           tx,
		groupRepo:    groupRepo,
		scheduleRepo: scheduleRepo,
	}
}

func invalidID(field string) error {
	return validator.ValidationErrors{{Field: field, Message: field + " must be a valid UUID"}}
}

// Create implements group.GroupService.
func (s *GroupServiceImpl) Create(ctx context.Context, req group.CreateGroupRequest) (group.GroupResponse, error) {
	if err := req.Validate(); err != nil {
		return group.GroupResponse{}, err
	}

	created, err := s.groupRepo.Create(ctx, group.Group{Name: req.Name, Description: req.Description})
	if err != nil {
		return group.GroupResponse{}, err
	}
	return group.NewGroupResponse(created), nil
}

// Get implements group.GroupService.
func (s *GroupServiceImpl) Get(ctx context.Context, id string) (group.GroupResponse, error) {
	if !validator.IsValidUUID(id) {
		return group.GroupResponse{}, invalidID("id")
	}

	found, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		return group.GroupResponse{}, err
	}
	return group.NewGroupResponse(found), nil
}

// List implements group.GroupService.
func (s *GroupServiceImpl) List(ctx context.Context) ([]group.GroupResponse, error) {
	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	responses := make([]group.GroupResponse, 0, len(groups))
	for _, g := range groups {
		responses = append(responses, group.NewGroupResponse(g))
	}
	return responses, nil
}

// Update implements group.GroupService.
func (s *GroupServiceImpl) Update(ctx context.Context, req group.UpdateGroupRequest) (group.GroupResponse, error) {
	if err := req.Validate(); err != nil {
		return group.GroupResponse{}, err
	}

	existing, err := s.groupRepo.GetByID(ctx, req.ID)
	if err != nil {
		return group.GroupResponse{}, err
	}
	if req.Name != nil {
		existing.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		existing.Description = req.Description
	}

	updated, err := s.groupRepo.Update(ctx, existing)
	if err != nil {
		return group.GroupResponse{}, err
	}
	return group.NewGroupResponse(updated), nil
}

// Delete implements group.GroupService.
func (s *GroupServiceImpl) Delete(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return invalidID("id")
	}
	return s.groupRepo.Delete(ctx, id)
}

// AssignShift implements group.GroupService. Every day in the range is written in one transaction.
func (s *GroupServiceImpl) AssignShift(ctx context.Context, req group.AssignShiftRequest) ([]group.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var saved []group.Schedule
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.groupRepo.GetByID(ctx, req.GroupID); err != nil {
			return err
		}
		for _, day := range req.Days() {
			sch, err := s.scheduleRepo.Upsert(ctx, group.Schedule{GroupID: req.GroupID, ShiftID: req.ShiftID, DayDate: day})
			if err != nil {
				return err
			}
			saved = append(saved, sch)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	responses := make([]group.ScheduleResponse, 0, len(saved))
	for _, sch := range saved {
		responses = append(responses, group.NewScheduleResponse(sch))
	}
	return responses, nil
}

// ListSchedules implements group.GroupService.
func (s *GroupServiceImpl) ListSchedules(ctx context.Context, filter group.ScheduleFilter) ([]group.ScheduleResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	from, _ := validator.IsValidDate(filter.StartDate)
	to, _ := validator.IsValidDate(filter.EndDate)

	schedules, err := s.scheduleRepo.ListByGroup(ctx, filter.GroupID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list group schedules: %w", err)
	}

	responses := make([]group.ScheduleResponse, 0, len(schedules))
	for _, sch := range schedules {
		responses = append(responses, group.NewScheduleResponse(sch))
	}
	return responses, nil
}

// DeleteSchedule implements group.GroupService.
func (s *GroupServiceImpl) DeleteSchedule(ctx context.Context, groupID, scheduleID string) error {
	if !validator.IsValidUUID(groupID) {
		return invalidID("group_id")
	}
	if !validator.IsValidUUID(scheduleID) {
		return invalidID("schedule_id")
	}
	return s.scheduleRepo.Delete(ctx, groupID, scheduleID)
}
