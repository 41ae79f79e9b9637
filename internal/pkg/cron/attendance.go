package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/attendance"
)

// ExpiredTokenPurger deletes refresh tokens that expired before a cutoff.
type ExpiredTokenPurger interface {
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type AttendanceJobs struct {
	attendanceSvc attendance.AttendanceService
	refreshTokens ExpiredTokenPurger
	loc           *time.Location
	interval      time.Duration
	now           func() time.Time
}

func NewAttendanceJobs(attendanceSvc attendance.AttendanceService, refreshTokens ExpiredTokenPurger, loc *time.Location, interval time.Duration) *AttendanceJobs {
	if loc == nil {
		loc = time.UTC
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &AttendanceJobs{
		attendanceSvc: attendanceSvc,
		refreshTokens: refreshTokens,
		loc:           loc,
		interval:      interval,
		now:           time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_trainees", j.interval, j.MarkAbsentYesterday, WithTimeout(5*time.Minute))
	if j.refreshTokens != nil {
		scheduler.AddJob("purge_expired_refresh_tokens", 6*time.Hour, j.PurgeExpiredRefreshTokens, WithTimeout(time.Minute))
	}
}

// MarkAbsentYesterday records absences for the previous local day. Re-running is harmless.
// Shifts that have not ended yet are left for a later run.
func (j *AttendanceJobs) MarkAbsentYesterday(ctx context.Context) error {
	local := j.now().In(j.loc)
	yesterday := time.Date(local.Year(), local.Month(), local.Day()-1, 0, 0, 0, 0, time.UTC)

	inserted, err := j.attendanceSvc.MarkAbsent(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("failed to mark absences for %s: %w", yesterday.Format(time.DateOnly), err)
	}

	slog.Info("Cron: Marked absent trainees", "date", yesterday.Format(time.DateOnly), "count", inserted)
	return nil
}

func (j *AttendanceJobs) PurgeExpiredRefreshTokens(ctx context.Context) error {
	deleted, err := j.refreshTokens.DeleteExpired(ctx, j.now())
	if err != nil {
		return err
	}
	if deleted > 0 {
		slog.Info("Cron: Purged expired refresh tokens", "count", deleted)
	}
	return nil
}
