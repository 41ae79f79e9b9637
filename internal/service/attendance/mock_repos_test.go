package attendance

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/trainee"
	"github.com/google/uuid"
)

type fakeTransactor struct{ calls int }

func (f *fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[attendance.SessionKey]attendance.Session
	writes   int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[attendance.SessionKey]attendance.Session)}
}

func (r *fakeSessionRepo) UpsertCheckIn(_ context.Context, s attendance.Session) (attendance.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++

	if existing, ok := r.sessions[s.Key()]; ok {
		existing.CheckInAt = s.CheckInAt
		existing.ScheduledMinutes = s.ScheduledMinutes
		existing.LateMinutes = s.LateMinutes
		existing.Status = s.Status
		existing.CheckOutAt = nil
		existing.ActualMinutes = nil
		existing.LostMinutes = nil
		existing.EarlyLeaveMinutes = nil
		r.sessions[s.Key()] = existing
		return existing, nil
	}
	s.ID = uuid.Must(uuid.NewV7()).String()
	r.sessions[s.Key()] = s
	return s, nil
}

func (r *fakeSessionRepo) GetByKey(_ context.Context, key attendance.SessionKey) (attendance.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[key]
	if !ok {
		return attendance.Session{}, attendance.ErrSessionNotFound
	}
	return s, nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id string) (attendance.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return attendance.Session{}, attendance.ErrSessionNotFound
}

func (r *fakeSessionRepo) RecordCheckOut(_ context.Context, s attendance.Session) (attendance.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++

	existing, ok := r.sessions[s.Key()]
	if !ok {
		return attendance.Session{}, attendance.ErrSessionNotFound
	}
	existing.CheckOutAt = s.CheckOutAt
	existing.ActualMinutes = s.ActualMinutes
	existing.LostMinutes = s.LostMinutes
	existing.EarlyLeaveMinutes = s.EarlyLeaveMinutes
	r.sessions[s.Key()] = existing
	return existing, nil
}

func (r *fakeSessionRepo) UpdateStatus(_ context.Context, id string, status attendance.Status, notes *string) (attendance.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, s := range r.sessions {
		if s.ID == id {
			s.Status = status
			if notes != nil {
				s.Notes = notes
			}
			r.sessions[key] = s
			r.writes++
			return s, nil
		}
	}
	return attendance.Session{}, attendance.ErrSessionNotFound
}

func (r *fakeSessionRepo) List(_ context.Context, filter attendance.SessionFilter) ([]attendance.Session, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []attendance.Session
	for _, s := range r.sessions {
		if filter.Status != nil && string(s.Status) != *filter.Status {
			continue
		}
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	start := min((filter.Page-1)*filter.Limit, len(all))
	end := min(start+filter.Limit, len(all))
	return all[start:end], int64(len(all)), nil
}

func (r *fakeSessionRepo) BulkCreateAbsences(_ context.Context, sessions []attendance.Session) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var inserted int64
	for _, s := range sessions {
		if _, ok := r.sessions[s.Key()]; ok {
			continue
		}
		s.ID = uuid.Must(uuid.NewV7()).String()
		zero := 0
		lost := s.ScheduledMinutes
		s.ActualMinutes = &zero
		s.EarlyLeaveMinutes = &zero
		s.LostMinutes = &lost
		r.sessions[s.Key()] = s
		inserted++
	}
	return inserted, nil
}

func (r *fakeSessionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

type fakeTraineeRepo struct {
	trainees map[string]trainee.Trainee
}

func newFakeTraineeRepo(ts ...trainee.Trainee) *fakeTraineeRepo {
	r := &fakeTraineeRepo{trainees: make(map[string]trainee.Trainee)}
	for _, t := range ts {
		r.trainees[t.ID] = t
	}
	return r
}

func (r *fakeTraineeRepo) Create(_ context.Context, t trainee.Trainee) (trainee.Trainee, error) {
	r.trainees[t.ID] = t
	return t, nil
}

func (r *fakeTraineeRepo) GetByID(_ context.Context, id string) (trainee.Trainee, error) {
	t, ok := r.trainees[id]
	if !ok {
		return trainee.Trainee{}, trainee.ErrTraineeNotFound
	}
	return t, nil
}

func (r *fakeTraineeRepo) GetByCode(_ context.Context, code string) (trainee.Trainee, error) {
	for _, match := range []func(trainee.Trainee) bool{
		func(t trainee.Trainee) bool { return t.BarcodeValue == code },
		func(t trainee.Trainee) bool { return t.MilitaryID == code },
		func(t trainee.Trainee) bool { return t.CivilID == code },
	} {
		for _, t := range r.trainees {
			if match(t) {
				return t, nil
			}
		}
	}
	return trainee.Trainee{}, trainee.ErrTraineeNotFound
}

func (r *fakeTraineeRepo) List(_ context.Context, _ trainee.TraineeFilter) ([]trainee.Trainee, int64, error) {
	var all []trainee.Trainee
	for _, t := range r.trainees {
		all = append(all, t)
	}
	return all, int64(len(all)), nil
}

func (r *fakeTraineeRepo) ListActive(_ context.Context) ([]trainee.Trainee, error) {
	var active []trainee.Trainee
	for _, t := range r.trainees {
		if t.IsActive() {
			active = append(active, t)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })
	return active, nil
}

func (r *fakeTraineeRepo) Update(_ context.Context, t trainee.Trainee) (trainee.Trainee, error) {
	r.trainees[t.ID] = t
	return t, nil
}

func (r *fakeTraineeRepo) Delete(_ context.Context, id string) error {
	delete(r.trainees, id)
	return nil
}

// fakeResolver returns the trainee's default shift every day unless a day is listed as off
// or overridden.
type fakeResolver struct {
	defaults  map[string]shift.Shift
	overrides map[string]shift.Shift
	off       map[string]bool
	err       error
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{
		defaults:  make(map[string]shift.Shift),
		overrides: make(map[string]shift.Shift),
		off:       make(map[string]bool),
	}
}

func resolverKey(traineeID string, day time.Time) string {
	return traineeID + "/" + day.Format("2006-01-02")
}

func (r *fakeResolver) Resolve(_ context.Context, t trainee.Trainee, day time.Time) (shift.Shift, error) {
	if r.err != nil {
		return shift.Shift{}, r.err
	}
	key := resolverKey(t.ID, day)
	if r.off[key] {
		return shift.Shift{}, attendance.ErrNoShiftToday
	}
	if sh, ok := r.overrides[key]; ok {
		return sh, nil
	}
	if sh, ok := r.defaults[t.ID]; ok {
		return sh, nil
	}
	return shift.Shift{}, attendance.ErrNoShiftToday
}

type publishedEvent struct {
	topic string
	name  string
	data  any
}

type fakePublisher struct {
	events []publishedEvent
}

func (p *fakePublisher) Publish(topic, name string, data any) {
	p.events = append(p.events, publishedEvent{topic: topic, name: name, data: data})
}
