package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/trainee"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/sse"
)

// Publisher delivers live events to stream subscribers.
type Publisher interface {
	Publish(topic, name string, data any)
}

type AttendanceServiceImpl struct {
	tx        database.Transactor
	sessions  attendance.SessionRepository
	trainees  trainee.TraineeRepository
	resolver  attendance.ShiftResolver
	calc      *Calculator
	publisher Publisher
	now       func() time.Time
}

func NewAttendanceService(
	tx database.Transactor,
	sessionRepo attendance.SessionRepository,
	traineeRepo trainee.TraineeRepository,
	resolver attendance.ShiftResolver,
	calc *Calculator,
	publisher Publisher,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:        tx,
		sessions:  sessionRepo,
		trainees:  traineeRepo,
		resolver:  resolver,
		calc:      calc,
		publisher: publisher,
		now:       time.Now,
	}
}

// Scan implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Scan(ctx context.Context, req attendance.ScanRequest) (attendance.ScanResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ScanResponse{}, err
	}

	t, err := a.trainees.GetByCode(ctx, req.Code)
	if err != nil {
		return attendance.ScanResponse{}, err
	}
	if !t.IsActive() {
		return attendance.ScanResponse{}, attendance.ErrTraineeNotActive
	}

	at := a.now()

	var (
		session attendance.Session
		sh      shift.Shift
		message string
	)
	switch req.Mode {
	case attendance.ScanModeIn:
		session, sh, err = a.checkIn(ctx, t, at)
		if err != nil {
			return attendance.ScanResponse{}, err
		}
		message = "Checked in on time"
		if session.Status == attendance.StatusLate {
			message = fmt.Sprintf("Checked in late by %d minutes", session.LateMinutes)
		}
	case attendance.ScanModeOut:
		session, sh, err = a.checkOut(ctx, t, at)
		if err != nil {
			return attendance.ScanResponse{}, err
		}
		message = "Checked out"
		if session.EarlyLeaveMinutes != nil && *session.EarlyLeaveMinutes > 0 {
			message = fmt.Sprintf("Checked out %d minutes early", *session.EarlyLeaveMinutes)
		}
	default:
		return attendance.ScanResponse{}, attendance.ErrInvalidScanMode
	}

	resp := attendance.ScanResponse{
		Mode:        req.Mode,
		TraineeID:   t.ID,
		TraineeName: t.FullName,
		ShiftName:   sh.Name,
		Message:     message,
		Session:     attendance.NewSessionResponse(session),
	}
	a.publish("scan", resp)

	slog.Info("kiosk scan recorded",
		"mode", req.Mode,
		"trainee_id", t.ID,
		"shift_id", sh.ID,
		"day_date", session.DayDate.Format("2006-01-02"),
		"status", session.Status,
	)

	return resp, nil
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, traineeID string, at time.Time) (attendance.SessionResponse, error) {
	t, err := a.activeTrainee(ctx, traineeID)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	session, _, err := a.checkIn(ctx, t, at)
	if err != nil {
		return attendance.SessionResponse{}, err
	}
	return attendance.NewSessionResponse(session), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, traineeID string, at time.Time) (attendance.SessionResponse, error) {
	t, err := a.activeTrainee(ctx, traineeID)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	session, _, err := a.checkOut(ctx, t, at)
	if err != nil {
		return attendance.SessionResponse{}, err
	}
	return attendance.NewSessionResponse(session), nil
}

func (a *AttendanceServiceImpl) activeTrainee(ctx context.Context, traineeID string) (trainee.Trainee, error) {
	t, err := a.trainees.GetByID(ctx, traineeID)
	if err != nil {
		return trainee.Trainee{}, err
	}
	if !t.IsActive() {
		return trainee.Trainee{}, attendance.ErrTraineeNotActive
	}
	return t, nil
}

func (a *AttendanceServiceImpl) checkIn(ctx context.Context, t trainee.Trainee, at time.Time) (attendance.Session, shift.Shift, error) {
	var (
		saved attendance.Session
		sh    shift.Shift
	)
	err := a.tx.WithinTx(ctx, func(ctx context.Context) error {
		day, resolved, err := a.checkInDay(ctx, t, at)
		if err != nil {
			return err
		}
		sh = resolved

		res := a.calc.CheckIn(sh, day, at)
		checkInAt := at
		saved, err = a.sessions.UpsertCheckIn(ctx, attendance.Session{
			TraineeID:        t.ID,
			ShiftID:          sh.ID,
			DayDate:          day,
			CheckInAt:        &checkInAt,
			ScheduledMinutes: res.ScheduledMinutes,
			LateMinutes:      res.LateMinutes,
			Status:           res.Status,
		})
		return err
	})
	if err != nil {
		return attendance.Session{}, shift.Shift{}, err
	}
	return saved, sh, nil
}

// checkInDay picks the shift occurrence a check-in belongs to. A scan before the end of
// yesterday's overnight shift belongs to yesterday.
func (a *AttendanceServiceImpl) checkInDay(ctx context.Context, t trainee.Trainee, at time.Time) (time.Time, shift.Shift, error) {
	today := a.calc.Day(at)
	yesterday := today.AddDate(0, 0, -1)

	ysh, err := a.resolver.Resolve(ctx, t, yesterday)
	switch {
	case err == nil:
		if ysh.IsOvernight() {
			if _, end := a.calc.Window(ysh, yesterday); at.Before(end) {
				return yesterday, ysh, nil
			}
		}
	case !errors.Is(err, attendance.ErrNoShiftToday):
		return time.Time{}, shift.Shift{}, err
	}

	sh, err := a.resolver.Resolve(ctx, t, today)
	if err != nil {
		return time.Time{}, shift.Shift{}, err
	}
	return today, sh, nil
}

func (a *AttendanceServiceImpl) checkOut(ctx context.Context, t trainee.Trainee, at time.Time) (attendance.Session, shift.Shift, error) {
	var (
		saved attendance.Session
		sh    shift.Shift
	)
	err := a.tx.WithinTx(ctx, func(ctx context.Context) error {
		open, resolved, err := a.openSession(ctx, t, at)
		if err != nil {
			return err
		}
		sh = resolved

		res, err := a.calc.CheckOut(sh, open, at)
		if err != nil {
			return err
		}

		checkOutAt := at
		open.CheckOutAt = &checkOutAt
		open.ActualMinutes = &res.ActualMinutes
		open.LostMinutes = &res.LostMinutes
		open.EarlyLeaveMinutes = &res.EarlyLeaveMinutes

		saved, err = a.sessions.RecordCheckOut(ctx, open)
		return err
	})
	if err != nil {
		return attendance.Session{}, shift.Shift{}, err
	}
	return saved, sh, nil
}

// openSession finds the session a check-out closes: today's, or yesterday's overnight
// session while it is still open and today's has no check-in.
func (a *AttendanceServiceImpl) openSession(ctx context.Context, t trainee.Trainee, at time.Time) (attendance.Session, shift.Shift, error) {
	today := a.calc.Day(at)
	yesterday := today.AddDate(0, 0, -1)

	todayShift, todayErr := a.resolver.Resolve(ctx, t, today)
	if todayErr != nil && !errors.Is(todayErr, attendance.ErrNoShiftToday) {
		return attendance.Session{}, shift.Shift{}, todayErr
	}

	var todaySession *attendance.Session
	if todayErr == nil {
		s, err := a.sessions.GetByKey(ctx, attendance.SessionKey{TraineeID: t.ID, DayDate: today, ShiftID: todayShift.ID})
		switch {
		case err == nil:
			todaySession = &s
		case !errors.Is(err, attendance.ErrSessionNotFound):
			return attendance.Session{}, shift.Shift{}, err
		}
	}

	if todaySession == nil || todaySession.CheckInAt == nil {
		ysh, err := a.resolver.Resolve(ctx, t, yesterday)
		switch {
		case err == nil && ysh.IsOvernight():
			ys, err := a.sessions.GetByKey(ctx, attendance.SessionKey{TraineeID: t.ID, DayDate: yesterday, ShiftID: ysh.ID})
			switch {
			case err == nil && ys.HasOpenCheckIn():
				return ys, ysh, nil
			case err != nil && !errors.Is(err, attendance.ErrSessionNotFound):
				return attendance.Session{}, shift.Shift{}, err
			}
		case err != nil && !errors.Is(err, attendance.ErrNoShiftToday):
			return attendance.Session{}, shift.Shift{}, err
		}
	}

	if todayErr != nil {
		return attendance.Session{}, shift.Shift{}, todayErr
	}
	if todaySession == nil || todaySession.CheckInAt == nil {
		return attendance.Session{}, shift.Shift{}, attendance.ErrNoActiveCheckIn
	}
	return *todaySession, todayShift, nil
}

// Get implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Get(ctx context.Context, id string) (attendance.SessionResponse, error) {
	s, err := a.sessions.GetByID(ctx, id)
	if err != nil {
		return attendance.SessionResponse{}, err
	}
	return attendance.NewSessionResponse(s), nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.SessionFilter) (attendance.ListSessionResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListSessionResponse{}, err
	}

	sessions, total, err := a.sessions.List(ctx, filter)
	if err != nil {
		return attendance.ListSessionResponse{}, fmt.Errorf("failed to list sessions: %w", err)
	}

	responses := make([]attendance.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		responses = append(responses, attendance.NewSessionResponse(s))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return attendance.ListSessionResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Sessions:   responses,
	}, nil
}

// UpdateStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateStatus(ctx context.Context, req attendance.UpdateStatusRequest) (attendance.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SessionResponse{}, err
	}

	updated, err := a.sessions.UpdateStatus(ctx, req.ID, req.Status, req.Notes)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	resp := attendance.NewSessionResponse(updated)
	a.publish("status", resp)
	return resp, nil
}

// MarkAbsent implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkAbsent(ctx context.Context, day time.Time) (int64, error) {
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	now := a.now()

	trainees, err := a.trainees.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active trainees: %w", err)
	}

	absences := make([]attendance.Session, 0, len(trainees))
	for _, t := range trainees {
		sh, err := a.resolver.Resolve(ctx, t, day)
		if err != nil {
			if errors.Is(err, attendance.ErrNoShiftToday) {
				continue
			}
			return 0, fmt.Errorf("failed to resolve shift for trainee %s: %w", t.ID, err)
		}

		start, end := a.calc.Window(sh, day)
		if end.After(now) {
			continue
		}
		scheduled := wholeMinutes(end.Sub(start))
		absences = append(absences, attendance.Session{
			TraineeID:        t.ID,
			ShiftID:          sh.ID,
			DayDate:          day,
			ScheduledMinutes: scheduled,
			Status:           attendance.StatusAbsent,
		})
	}

	inserted, err := a.sessions.BulkCreateAbsences(ctx, absences)
	if err != nil {
		return inserted, fmt.Errorf("failed to record absences: %w", err)
	}

	slog.Info("absences recorded", "day_date", day.Format("2006-01-02"), "scheduled", len(absences), "inserted", inserted)
	return inserted, nil
}

func (a *AttendanceServiceImpl) publish(name string, data any) {
	if a.publisher == nil {
		return
	}
	a.publisher.Publish(sse.TopicAttendance, name, data)
}
