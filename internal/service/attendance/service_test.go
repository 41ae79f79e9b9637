package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/trainee"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/sse"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	svc       *AttendanceServiceImpl
	sessions  *fakeSessionRepo
	trainees  *fakeTraineeRepo
	resolver  *fakeResolver
	publisher *fakePublisher
	tx        *fakeTransactor
}

func newServiceFixture(t *testing.T, trainees ...trainee.Trainee) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		sessions:  newFakeSessionRepo(),
		trainees:  newFakeTraineeRepo(trainees...),
		resolver:  newFakeResolver(),
		publisher: &fakePublisher{},
		tx:        &fakeTransactor{},
	}
	svc := NewAttendanceService(f.tx, f.sessions, f.trainees, f.resolver, NewCalculator(testLoc), f.publisher)
	f.svc = svc.(*AttendanceServiceImpl)
	return f
}

func (f *serviceFixture) setClock(at time.Time) {
	f.svc.now = func() time.Time { return at }
}

func activeTrainee(id, code string) trainee.Trainee {
	return trainee.Trainee{
		ID:           id,
		CivilID:      "2900" + code,
		MilitaryID:   "77" + code,
		FullName:     "Trainee " + id,
		BarcodeValue: "TR-" + code,
		Status:       trainee.StatusActive,
	}
}

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func TestScan_CheckInThenCheckOut(t *testing.T) {
	tr := activeTrainee("t1", "001")
	f := newServiceFixture(t, tr)
	f.resolver.defaults[tr.ID] = mustShift(t, "08:00", "16:00", 10)
	ctx := context.Background()

	f.setClock(at(day, 8, 5, 0))
	in, err := f.svc.Scan(ctx, attendance.ScanRequest{Code: " TR-001 ", Mode: "in"})
	require.NoError(t, err)
	assert.Equal(t, attendance.ScanModeIn, in.Mode)
	assert.Equal(t, "Checked in on time", in.Message)
	assert.Equal(t, attendance.StatusPresent, in.Session.Status)
	assert.Equal(t, 0, in.Session.LateMinutes)
	assert.Equal(t, 480, in.Session.ScheduledMinutes)
	assert.Equal(t, "2025-03-10", in.Session.DayDate)

	f.setClock(at(day, 15, 50, 0))
	out, err := f.svc.Scan(ctx, attendance.ScanRequest{Code: "TR-001", Mode: attendance.ScanModeOut})
	require.NoError(t, err)
	require.NotNil(t, out.Session.ActualMinutes)
	assert.Equal(t, 465, *out.Session.ActualMinutes)
	assert.Equal(t, 15, *out.Session.LostMinutes)
	assert.Equal(t, 10, *out.Session.EarlyLeaveMinutes)
	assert.Equal(t, attendance.StatusPresent, out.Session.Status, "check-out keeps the check-in status")
	assert.Equal(t, "Checked out 10 minutes early", out.Message)

	assert.Equal(t, 1, f.sessions.count())
	require.Len(t, f.publisher.events, 2)
	assert.Equal(t, sse.TopicAttendance, f.publisher.events[0].topic)
	assert.Equal(t, "scan", f.publisher.events[1].name)
}

func TestScan_LateCheckIn(t *testing.T) {
	tr := activeTrainee("t1", "001")
	f := newServiceFixture(t, tr)
	f.resolver.defaults[tr.ID] = mustShift(t, "08:00", "16:00", 10)

	f.setClock(at(day, 8, 10, 1))
	resp, err := f.svc.Scan(context.Background(), attendance.ScanRequest{Code: "TR-001", Mode: attendance.ScanModeIn})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, resp.Session.Status)
	assert.Equal(t, 10, resp.Session.LateMinutes)
	assert.Equal(t, "Checked in late by 10 minutes", resp.Message)
}

func TestScan_DuplicateCheckInOverwrites(t *testing.T) {
	tr := activeTrainee("t1", "001")
	f := newServiceFixture(t, tr)
	f.resolver.defaults[tr.ID] = mustShift(t, "08:00", "16:00", 10)
	ctx := context.Background()

	f.setClock(at(day, 8, 30, 0))
	first, err := f.svc.Scan(ctx, attendance.ScanRequest{Code: "TR-001", Mode: attendance.ScanModeIn})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, first.Session.Status)

	f.setClock(at(day, 8, 45, 0))
	second, err := f.svc.Scan(ctx, attendance.ScanRequest{Code: "TR-001", Mode: attendance.ScanModeIn})
	require.NoError(t, err)

	assert.Equal(t, first.Session.ID, second.Session.ID)
	assert.Equal(t, 45, second.Session.LateMinutes)
	assert.Equal(t, 1, f.sessions.count())
}

func TestScan_CheckInAfterCheckOutReopensSession(t *testing.T) {
	tr := activeTrainee("t1", "001")
	f := newServiceFixture(t, tr)
	f.resolver.defaults[tr.ID] = mustShift(t, "08:00", "16:00", 10)
	ctx := context.Background()

	f.setClock(at(day, 8, 0, 0))
	_, err := f.svc.Scan(ctx, attendance.ScanRequest{Code: "TR-001", Mode: attendance.ScanModeIn})
	require.NoError(t, err)

	f.setClock(at(day, 12, 0, 0))
	out, err := f.svc.Scan(ctx, attendance.ScanRequest{Code: "TR-001", Mode: attendance.ScanModeOut})
	require.NoError(t, err)
	require.NotNil(t, out.Session.ActualMinutes)
	assert.Equal(t, 240, *out.Session.ActualMinutes)

	f.setClock(at(day, 13, 0, 0))
	in, err := f.svc.Scan(ctx, attendance.ScanRequest{Code: "TR-001", Mode: attendance.ScanModeIn})
	require.NoError(t, err)
	assert.Equal(t, out.Session.ID, in.Session.ID)
	assert.Equal(t, attendance.StatusLate, in.Session.Status)
	assert.Equal(t, 300, in.Session.LateMinutes)
	assert.Nil(t, in.Session.CheckOutAt)
	assert.Nil(t, in.Session.ActualMinutes)
	assert.Nil(t, in.Session.LostMinutes)
	assert.Nil(t, in.Session.EarlyLeaveMinutes)

	stored, err := f.sessions.GetByID(ctx, in.Session.ID)
	require.NoError(t, err)
	assert.True(t, stored.HasOpenCheckIn())
	assert.Equal(t, 1, f.sessions.count())
}

func TestScan_CodeLookupFallsBackToMilitaryAndCivilID(t *testing.T) {
	tr := activeTrainee("t1", "001")
	f := newServiceFixture(t, tr)
	f.resolver.defaults[tr.ID] = mustShift(t, "08:00", "16:00", 10)
	f.setClock(at(day, 7, 55, 0))

	for _, code := range []string{tr.MilitaryID, tr.CivilID} {
		resp, err := f.svc.Scan(context.Background(), attendance.ScanRequest{Code: code, Mode: attendance.ScanModeIn})
		require.NoError(t, err)
		assert.Equal(t, tr.ID, resp.TraineeID)
	}
}

func TestScan_Errors(t *testing.T) {
	tr := activeTrainee("t1", "001")
	inactive := activeTrainee("t2", "002")
	inactive.Status = trainee.StatusInactive
	f := newServiceFixture(t, tr, inactive)
	f.resolver.defaults[tr.ID] = mustShift(t, "08:00", "16:00", 10)
	f.resolver.defaults[inactive.ID] = mustShift(t, "08:00", "16:00", 10)
	f.setClock(at(day, 9, 0, 0))
	ctx := context.Background()

	t.Run("invalid request", func(t *testing.T) {
		_, err := f.svc.Scan(ctx, attendance.ScanRequest{Code: "", Mode: "SIDEWAYS"})
		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Contains(t, verrs.ToMap(), "code")
		assert.Contains(t, verrs.ToMap(), "mode")
	})

	t.Run("unknown trainee", func(t *testing.T) {
		_, err := f.svc.Scan(ctx, attendance.ScanRequest{Code: "NOPE", Mode: attendance.ScanModeIn})
		assert.ErrorIs(t, err, trainee.ErrTraineeNotFound)
	})

	t.Run("inactive trainee", func(t *testing.T) {
		_, err := f.svc.Scan(ctx, attendance.ScanRequest{Code: "TR-002", Mode: attendance.ScanModeIn})
		assert.ErrorIs(t, err, attendance.ErrTraineeNotActive)
	})

	t.Run("no shift today", func(t *testing.T) {
		f.resolver.off[resolverKey(tr.ID, day)] = true
		defer delete(f.resolver.off, resolverKey(tr.ID, day))

		_, err := f.svc.Scan(ctx, attendance.ScanRequest{Code: "TR-001", Mode: attendance.ScanModeIn})
		assert.ErrorIs(t, err, attendance.ErrNoShiftToday)
	})

	t.Run("resolver failure", func(t *testing.T) {
		boom := errors.New("database unavailable")
		f.resolver.err = boom
		defer func() { f.resolver.err = nil }()

		_, err := f.svc.Scan(ctx, attendance.ScanRequest{Code: "TR-001", Mode: attendance.ScanModeIn})
		assert.ErrorIs(t, err, boom)
	})

	assert.Equal(t, 0, f.sessions.count())
	assert.Empty(t, f.publisher.events)
}

func TestCheckOut_WithoutCheckIn(t *testing.T) {
	tr := activeTrainee("t1", "001")
	f := newServiceFixture(t, tr)
	f.resolver.defaults[tr.ID] = mustShift(t, "08:00", "16:00", 10)

	_, err := f.svc.CheckOut(context.Background(), tr.ID, at(day, 15, 0, 0))
	assert.ErrorIs(t, err, attendance.ErrNoActiveCheckIn)
	assert.Equal(t, 0, f.sessions.count())
	assert.Equal(t, 0, f.sessions.writes)
}

func TestCheckOut_AfterAbsenceWithoutCheckIn(t *testing.T) {
	tr := activeTrainee("t1", "001")
	f := newServiceFixture(t, tr)
	f.resolver.defaults[tr.ID] = mustShift(t, "08:00", "16:00", 10)
	ctx := context.Background()

	_, err := f.svc.MarkAbsent(ctx, day)
	require.NoError(t, err)
	writes := f.sessions.writes

	_, err = f.svc.CheckOut(ctx, tr.ID, at(day, 15, 0, 0))
	assert.ErrorIs(t, err, attendance.ErrNoActiveCheckIn)
	assert.Equal(t, writes, f.sessions.writes)
}

func TestCheckOut_ClockSkewLeavesSessionUntouched(t *testing.T) {
	tr := activeTrainee("t1", "001")
	f := newServiceFixture(t, tr)
	sh := mustShift(t, "08:00", "16:00", 10)
	f.resolver.defaults[tr.ID] = sh
	ctx := context.Background()

	_, err := f.svc.CheckIn(ctx, tr.ID, at(day, 9, 0, 0))
	require.NoError(t, err)
	writes := f.sessions.writes

	_, err = f.svc.CheckOut(ctx, tr.ID, at(day, 8, 30, 0))
	assert.ErrorIs(t, err, attendance.ErrClockSkew)
	assert.Equal(t, writes, f.sessions.writes)

	stored, err := f.sessions.GetByKey(ctx, attendance.SessionKey{TraineeID: tr.ID, DayDate: day, ShiftID: sh.ID})
	require.NoError(t, err)
	assert.Nil(t, stored.CheckOutAt)
	assert.Nil(t, stored.ActualMinutes)
}

func TestOvernightShift(t *testing.T) {
	tr := activeTrainee("t1", "001")
	f := newServiceFixture(t, tr)
	night := mustShift(t, "22:00", "06:00", 15)
	night.ID = "night"
	f.resolver.defaults[tr.ID] = night
	ctx := context.Background()
	nextDay := day.AddDate(0, 0, 1)

	in, err := f.svc.CheckIn(ctx, tr.ID, at(nextDay, 0, 30, 0))
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", in.DayDate, "a scan after midnight belongs to the shift that started the day before")
	assert.Equal(t, attendance.StatusLate, in.Status)
	assert.Equal(t, 150, in.LateMinutes)
	assert.Equal(t, 480, in.ScheduledMinutes)

	out, err := f.svc.CheckOut(ctx, tr.ID, at(nextDay, 5, 30, 0))
	require.NoError(t, err)
	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, 300, *out.ActualMinutes)
	assert.Equal(t, 180, *out.LostMinutes)
	assert.Equal(t, 30, *out.EarlyLeaveMinutes)

	evening, err := f.svc.CheckIn(ctx, tr.ID, at(nextDay, 21, 50, 0))
	require.NoError(t, err)
	assert.Equal(t, "2025-03-11", evening.DayDate)
	assert.Equal(t, attendance.StatusPresent, evening.Status)
}

func TestOvernightShift_CheckOutPrefersOpenSessionFromYesterday(t *testing.T) {
	tr := activeTrainee("t1", "001")
	f := newServiceFixture(t, tr)
	night := mustShift(t, "22:00", "06:00", 0)
	night.ID = "night"
	f.resolver.defaults[tr.ID] = night
	ctx := context.Background()
	nextDay := day.AddDate(0, 0, 1)

	_, err := f.svc.CheckIn(ctx, tr.ID, at(day, 21, 58, 0))
	require.NoError(t, err)

	out, err := f.svc.CheckOut(ctx, tr.ID, at(nextDay, 6, 10, 0))
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", out.DayDate)
	assert.Equal(t, 492, *out.ActualMinutes)
	assert.Equal(t, 0, *out.LostMinutes)
	assert.Equal(t, 0, *out.EarlyLeaveMinutes)
}

func TestMarkAbsent(t *testing.T) {
	present := activeTrainee("t1", "001")
	missing := activeTrainee("t2", "002")
	dayOff := activeTrainee("t3", "003")
	inactive := activeTrainee("t4", "004")
	inactive.Status = trainee.StatusInactive

	f := newServiceFixture(t, present, missing, dayOff, inactive)
	sh := mustShift(t, "08:00", "16:00", 10)
	for _, tr := range []trainee.Trainee{present, missing, dayOff, inactive} {
		f.resolver.defaults[tr.ID] = sh
	}
	f.resolver.off[resolverKey(dayOff.ID, day)] = true
	ctx := context.Background()

	_, err := f.svc.CheckIn(ctx, present.ID, at(day, 8, 0, 0))
	require.NoError(t, err)

	inserted, err := f.svc.MarkAbsent(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, int64(1), inserted)

	absent, err := f.sessions.GetByKey(ctx, attendance.SessionKey{TraineeID: missing.ID, DayDate: day, ShiftID: sh.ID})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, absent.Status)
	assert.Equal(t, 480, absent.ScheduledMinutes)
	assert.Equal(t, 480, *absent.LostMinutes)
	assert.Nil(t, absent.CheckInAt)

	kept, err := f.sessions.GetByKey(ctx, attendance.SessionKey{TraineeID: present.ID, DayDate: day, ShiftID: sh.ID})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, kept.Status)

	again, err := f.svc.MarkAbsent(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, int64(0), again)
}

func TestMarkAbsent_SkipsShiftStillRunning(t *testing.T) {
	tr := activeTrainee("t1", "001")
	f := newServiceFixture(t, tr)
	night := mustShift(t, "23:30", "07:30", 45)
	night.ID = "night"
	f.resolver.defaults[tr.ID] = night
	ctx := context.Background()
	nextDay := day.AddDate(0, 0, 1)

	f.setClock(at(nextDay, 0, 5, 0))
	inserted, err := f.svc.MarkAbsent(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, int64(0), inserted)

	in, err := f.svc.CheckIn(ctx, tr.ID, at(nextDay, 0, 10, 0))
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", in.DayDate)
	assert.Equal(t, attendance.StatusPresent, in.Status)

	f.setClock(at(nextDay, 7, 31, 0))
	inserted, err = f.svc.MarkAbsent(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, int64(0), inserted, "the checked-in session is kept")
}

func TestMarkAbsent_MarksOnceShiftHasEnded(t *testing.T) {
	tr := activeTrainee("t1", "001")
	f := newServiceFixture(t, tr)
	night := mustShift(t, "23:30", "07:30", 45)
	night.ID = "night"
	f.resolver.defaults[tr.ID] = night
	ctx := context.Background()
	nextDay := day.AddDate(0, 0, 1)

	f.setClock(at(nextDay, 7, 29, 0))
	inserted, err := f.svc.MarkAbsent(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, int64(0), inserted)

	f.setClock(at(nextDay, 7, 30, 0))
	inserted, err = f.svc.MarkAbsent(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, int64(1), inserted)

	absent, err := f.sessions.GetByKey(ctx, attendance.SessionKey{TraineeID: tr.ID, DayDate: day, ShiftID: night.ID})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, absent.Status)
	assert.Equal(t, 480, absent.ScheduledMinutes)
}

func TestUpdateStatus(t *testing.T) {
	tr := activeTrainee("t1", "001")
	f := newServiceFixture(t, tr)
	f.resolver.defaults[tr.ID] = mustShift(t, "08:00", "16:00", 10)
	ctx := context.Background()

	in, err := f.svc.CheckIn(ctx, tr.ID, at(day, 8, 0, 0))
	require.NoError(t, err)

	notes := "left through the side gate"
	updated, err := f.svc.UpdateStatus(ctx, attendance.UpdateStatusRequest{ID: in.ID, Status: attendance.StatusEscaped, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusEscaped, updated.Status)
	assert.Equal(t, &notes, updated.Notes)
	assert.NotNil(t, updated.CheckInAt)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, "status", f.publisher.events[0].name)

	_, err = f.svc.UpdateStatus(ctx, attendance.UpdateStatusRequest{ID: "0195b2c4-1d2e-7a3b-8c4d-5e6f7a8b9c0d", Status: attendance.StatusAbsent})
	assert.ErrorIs(t, err, attendance.ErrSessionNotFound)

	_, err = f.svc.UpdateStatus(ctx, attendance.UpdateStatusRequest{ID: in.ID, Status: "gone"})
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
}

func TestList_Pagination(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	sh := mustShift(t, "08:00", "16:00", 10)
	for i, id := range []string{"a", "b", "c"} {
		in := at(day, 8, i, 0)
		_, err := f.sessions.UpsertCheckIn(ctx, attendance.Session{TraineeID: id, ShiftID: sh.ID, DayDate: day, CheckInAt: &in, Status: attendance.StatusPresent})
		require.NoError(t, err)
	}

	resp, err := f.svc.List(ctx, attendance.SessionFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.TotalCount)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Equal(t, "3-3 of 3", resp.Showing)
	assert.Len(t, resp.Sessions, 1)

	empty, err := f.svc.List(ctx, attendance.SessionFilter{Status: ptr("escaped")})
	require.NoError(t, err)
	assert.Equal(t, "0 of 0", empty.Showing)
	assert.Equal(t, 20, empty.Limit)
}

func ptr[T any](v T) *T { return &v }
