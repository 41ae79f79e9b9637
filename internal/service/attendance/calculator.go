package attendance

import (
	"time"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/shift"
)

// Calculator derives session metrics from a shift definition and scan instants.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	loc *time.Location
}

// NewCalculator returns a Calculator for loc, defaulting to UTC.
func NewCalculator(loc *time.Location) *Calculator {
	if loc == nil {
		loc = time.UTC
	}
	return &Calculator{loc: loc}
}

// Location returns the zone shift times are interpreted in.
func (c *Calculator) Location() *time.Location {
	return c.loc
}

// Day returns the local calendar date of at, as midnight UTC.
func (c *Calculator) Day(at time.Time) time.Time {
	y, m, d := at.In(c.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Window returns the start and end instants of the shift occurrence that begins on day.
func (c *Calculator) Window(sh shift.Shift, day time.Time) (start, end time.Time) {
	return sh.Window(day, c.loc)
}

// CheckInResult holds the lateness decision for a check-in.
type CheckInResult struct {
	Status           attendance.Status
	IsLate           bool
	LateMinutes      int
	ScheduledMinutes int
	ShiftStart       time.Time
	GraceEnd         time.Time
	ShiftEnd         time.Time
}

// CheckIn decides lateness for a check-in at the given instant.
// A check-in exactly at the end of the grace window is on time; lateness is counted from the nominal start.
func (c *Calculator) CheckIn(sh shift.Shift, day, at time.Time) CheckInResult {
	start, end := c.Window(sh, day)
	graceEnd := start.Add(time.Duration(sh.GraceMinutes) * time.Minute)

	res := CheckInResult{
		Status:           attendance.StatusPresent,
		ScheduledMinutes: wholeMinutes(end.Sub(start)),
		ShiftStart:       start,
		GraceEnd:         graceEnd,
		ShiftEnd:         end,
	}
	if at.After(graceEnd) {
		res.IsLate = true
		res.Status = attendance.StatusLate
		res.LateMinutes = wholeMinutes(at.Sub(start))
	}
	return res
}

// CheckOutResult holds the completion metrics for a check-out.
type CheckOutResult struct {
	ActualMinutes     int
	LostMinutes       int
	EarlyLeaveMinutes int
}

// CheckOut derives the completion metrics of a checked-in session.
func (c *Calculator) CheckOut(sh shift.Shift, s attendance.Session, at time.Time) (CheckOutResult, error) {
	if s.CheckInAt == nil {
		return CheckOutResult{}, attendance.ErrNoActiveCheckIn
	}
	if at.Before(*s.CheckInAt) {
		return CheckOutResult{}, attendance.ErrClockSkew
	}

	actual := wholeMinutes(at.Sub(*s.CheckInAt))
	res := CheckOutResult{
		ActualMinutes: actual,
		LostMinutes:   max(0, s.ScheduledMinutes-actual),
	}

	_, end := c.Window(sh, s.DayDate)
	if at.Before(end) {
		res.EarlyLeaveMinutes = wholeMinutes(end.Sub(at))
	}
	return res, nil
}

func wholeMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}
