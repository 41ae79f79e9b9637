package group

import "context"

type GroupService interface {
	Create(ctx context.Context, req CreateGroupRequest) (GroupResponse, error)
	Get(ctx context.Context, id string) (GroupResponse, error)
	List(ctx context.Context) ([]GroupResponse, error)
	Update(ctx context.Context, req UpdateGroupRequest) (GroupResponse, error)
	Delete(ctx context.Context, id string) error

	AssignShift(ctx context.Context, req AssignShiftRequest) ([]ScheduleResponse, error)
	ListSchedules(ctx context.Context, filter ScheduleFilter) ([]ScheduleResponse, error)
	DeleteSchedule(ctx context.Context, groupID, scheduleID string) error
}
