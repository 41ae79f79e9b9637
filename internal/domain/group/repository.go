package group

import (
	"context"
	"time"
)

type GroupRepository interface {
	Create(ctx context.Context, g Group) (Group, error)
	GetByID(ctx context.Context, id string) (Group, error)
	List(ctx context.Context) ([]Group, error)
	Update(ctx context.Context, g Group) (Group, error)
	Delete(ctx context.Context, id string) error
}

type ScheduleRepository interface {
	// Upsert assigns the shift for (group, day), replacing an earlier assignment.
	Upsert(ctx context.Context, s Schedule) (Schedule, error)
	GetByGroupAndDate(ctx context.Context, groupID string, day time.Time) (Schedule, error)
	ListByGroup(ctx context.Context, groupID string, from, to time.Time) ([]Schedule, error)
	Delete(ctx context.Context, groupID, id string) error
}
