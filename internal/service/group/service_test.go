package group

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/group"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/trainee"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newID() string { return uuid.Must(uuid.NewV7()).String() }

func ptr[T any](v T) *T { return &v }

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memGroupRepo struct {
	groups map[string]group.Group
}

func (r *memGroupRepo) Create(_ context.Context, g group.Group) (group.Group, error) {
	for _, existing := range r.groups {
		if existing.Name == g.Name {
			return group.Group{}, group.ErrGroupNameExists
		}
	}
	g.ID = newID()
	r.groups[g.ID] = g
	return g, nil
}

func (r *memGroupRepo) GetByID(_ context.Context, id string) (group.Group, error) {
	g, ok := r.groups[id]
	if !ok {
		return group.Group{}, group.ErrGroupNotFound
	}
	return g, nil
}

func (r *memGroupRepo) List(_ context.Context) ([]group.Group, error) {
	var all []group.Group
	for _, g := range r.groups {
		all = append(all, g)
	}
	return all, nil
}

func (r *memGroupRepo) Update(_ context.Context, g group.Group) (group.Group, error) {
	r.groups[g.ID] = g
	return g, nil
}

func (r *memGroupRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.groups[id]; !ok {
		return group.ErrGroupNotFound
	}
	delete(r.groups, id)
	return nil
}

type memScheduleRepo struct {
	schedules map[string]group.Schedule
	err       error
}

func scheduleKey(groupID string, day time.Time) string {
	return groupID + "/" + day.Format("2006-01-02")
}

func (r *memScheduleRepo) Upsert(_ context.Context, s group.Schedule) (group.Schedule, error) {
	key := scheduleKey(s.GroupID, s.DayDate)
	if existing, ok := r.schedules[key]; ok {
		existing.ShiftID = s.ShiftID
		r.schedules[key] = existing
		return existing, nil
	}
	s.ID = newID()
	r.schedules[key] = s
	return s, nil
}

func (r *memScheduleRepo) GetByGroupAndDate(_ context.Context, groupID string, day time.Time) (group.Schedule, error) {
	if r.err != nil {
		return group.Schedule{}, r.err
	}
	s, ok := r.schedules[scheduleKey(groupID, day)]
	if !ok {
		return group.Schedule{}, group.ErrScheduleNotFound
	}
	return s, nil
}

func (r *memScheduleRepo) ListByGroup(_ context.Context, groupID string, from, to time.Time) ([]group.Schedule, error) {
	var out []group.Schedule
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if s, ok := r.schedules[scheduleKey(groupID, d)]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memScheduleRepo) Delete(_ context.Context, groupID, id string) error {
	for key, s := range r.schedules {
		if s.ID == id && s.GroupID == groupID {
			delete(r.schedules, key)
			return nil
		}
	}
	return group.ErrScheduleNotFound
}

type memShiftRepo struct {
	shifts map[string]shift.Shift
}

func (r *memShiftRepo) Create(_ context.Context, s shift.Shift) (shift.Shift, error) {
	r.shifts[s.ID] = s
	return s, nil
}

func (r *memShiftRepo) GetByID(_ context.Context, id string) (shift.Shift, error) {
	s, ok := r.shifts[id]
	if !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return s, nil
}

func (r *memShiftRepo) List(_ context.Context) ([]shift.Shift, error) { return nil, nil }

func (r *memShiftRepo) Update(_ context.Context, s shift.Shift) (shift.Shift, error) { return s, nil }

func (r *memShiftRepo) Delete(_ context.Context, _ string) error { return nil }

type fixture struct {
	svc       group.GroupService
	groups    *memGroupRepo
	schedules *memScheduleRepo
	shifts    *memShiftRepo
	resolver  *ShiftResolver
}

func newFixture() *fixture {
	f := &fixture{
		groups:    &memGroupRepo{groups: make(map[string]group.Group)},
		schedules: &memScheduleRepo{schedules: make(map[string]group.Schedule)},
		shifts:    &memShiftRepo{shifts: make(map[string]shift.Shift)},
	}
	f.svc = NewGroupService(passthroughTx{}, f.groups, f.schedules)
	f.resolver = NewShiftResolver(f.schedules, f.shifts)
	return f
}

func (f *fixture) addShift(t *testing.T, name, start, end string) shift.Shift {
	t.Helper()
	s, err := shift.NewShift(name, shift.MustParseTimeOfDay(start), shift.MustParseTimeOfDay(end), 10)
	require.NoError(t, err)
	s.ID = newID()
	f.shifts.shifts[s.ID] = s
	return s
}

func TestGroupService_AssignShiftRange(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	night := f.addShift(t, "Night", "22:00", "06:00")

	g, err := f.svc.Create(ctx, group.CreateGroupRequest{Name: "Cohort A"})
	require.NoError(t, err)

	saved, err := f.svc.AssignShift(ctx, group.AssignShiftRequest{
		GroupID: g.ID,
		ShiftID: night.ID,
		Date:    "2025-03-30",
		EndDate: ptr("2025-04-02"),
	})
	require.NoError(t, err)
	require.Len(t, saved, 4)
	assert.Equal(t, "2025-03-30", saved[0].DayDate)
	assert.Equal(t, "2025-04-02", saved[3].DayDate)

	listed, err := f.svc.ListSchedules(ctx, group.ScheduleFilter{GroupID: g.ID, StartDate: "2025-03-31", EndDate: "2025-04-01"})
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestGroupService_AssignShiftValidation(t *testing.T) {
	f := newFixture()

	_, err := f.svc.AssignShift(context.Background(), group.AssignShiftRequest{
		GroupID: newID(),
		ShiftID: newID(),
		Date:    "2025-01-01",
		EndDate: ptr("2025-06-01"),
	})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "end_date")

	_, err = f.svc.AssignShift(context.Background(), group.AssignShiftRequest{GroupID: newID(), ShiftID: newID(), Date: "2025-01-01"})
	assert.ErrorIs(t, err, group.ErrGroupNotFound)
}

func TestShiftResolver(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	day := f.addShift(t, "Day", "08:00", "16:00")
	night := f.addShift(t, "Night", "22:00", "06:00")

	g, err := f.svc.Create(ctx, group.CreateGroupRequest{Name: "Cohort B"})
	require.NoError(t, err)
	_, err = f.svc.AssignShift(ctx, group.AssignShiftRequest{GroupID: g.ID, ShiftID: night.ID, Date: "2025-03-10"})
	require.NoError(t, err)

	member := trainee.Trainee{ID: newID(), ShiftID: day.ID, GroupID: &g.ID}
	loner := trainee.Trainee{ID: newID(), ShiftID: day.ID}
	scheduled := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	unscheduled := scheduled.AddDate(0, 0, 1)

	got, err := f.resolver.Resolve(ctx, member, scheduled)
	require.NoError(t, err)
	assert.Equal(t, night.ID, got.ID, "group schedule overrides the trainee shift")

	got, err = f.resolver.Resolve(ctx, member, unscheduled)
	require.NoError(t, err)
	assert.Equal(t, day.ID, got.ID, "falls back to the trainee shift")

	got, err = f.resolver.Resolve(ctx, loner, scheduled)
	require.NoError(t, err)
	assert.Equal(t, day.ID, got.ID)

	_, err = f.resolver.Resolve(ctx, trainee.Trainee{ID: newID()}, scheduled)
	assert.ErrorIs(t, err, attendance.ErrNoShiftToday)

	_, err = f.resolver.Resolve(ctx, trainee.Trainee{ID: newID(), ShiftID: newID()}, scheduled)
	assert.ErrorIs(t, err, attendance.ErrNoShiftToday)

	boom := errors.New("connection reset")
	f.schedules.err = boom
	_, err = f.resolver.Resolve(ctx, member, scheduled)
	assert.ErrorIs(t, err, boom)
}

func TestGroupService_UpdateAndDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	g, err := f.svc.Create(ctx, group.CreateGroupRequest{Name: "Cohort C"})
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, group.UpdateGroupRequest{ID: g.ID, Description: ptr("evening intake")})
	require.NoError(t, err)
	assert.Equal(t, "Cohort C", updated.Name)
	assert.Equal(t, "evening intake", *updated.Description)

	require.NoError(t, f.svc.Delete(ctx, g.ID))
	_, err = f.svc.Get(ctx, g.ID)
	assert.ErrorIs(t, err, group.ErrGroupNotFound)
}
