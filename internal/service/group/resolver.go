package group

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/group"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/trainee"
)

// ShiftResolver resolves a trainee's shift for a day: the group's schedule for that day
// wins, otherwise the trainee's own shift applies.
type ShiftResolver struct {
	scheduleRepo group.ScheduleRepository
	shiftRepo    shift.ShiftRepository
}

func NewShiftResolver(scheduleRepo group.ScheduleRepository, shiftRepo shift.ShiftRepository) *ShiftResolver {
	return &ShiftResolver{scheduleRepo: scheduleRepo, shiftRepo: shiftRepo}
}

var _ attendance.ShiftResolver = (*ShiftResolver)(nil)

func (r *ShiftResolver) Resolve(ctx context.Context, t trainee.Trainee, day time.Time) (shift.Shift, error) {
	shiftID := t.ShiftID

	if t.GroupID != nil {
		sch, err := r.scheduleRepo.GetByGroupAndDate(ctx, *t.GroupID, day)
		switch {
		case err == nil:
			shiftID = sch.ShiftID
		case !errors.Is(err, group.ErrScheduleNotFound):
			return shift.Shift{}, fmt.Errorf("failed to get group schedule: %w", err)
		}
	}

	if shiftID == "" {
		return shift.Shift{}, attendance.ErrNoShiftToday
	}

	sh, err := r.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			return shift.Shift{}, attendance.ErrNoShiftToday
		}
		return shift.Shift{}, err
	}
	return sh, nil
}
