package shift

import (
	"strings"
	"time"
)

// Shift is a named daily attendance window with a lateness grace period.
// EffectiveStartTime is derived and only ever set by NewShift and Reschedule.
type Shift struct {
	ID                 string
	Name               string
	StartTime          TimeOfDay
	EndTime            TimeOfDay
	GraceMinutes       int
	EffectiveStartTime TimeOfDay
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// EffectiveStartTime is the wall-clock time at which a check-in stops counting as on time.
func EffectiveStartTime(start TimeOfDay, graceMinutes int) (TimeOfDay, error) {
	if graceMinutes < 0 {
		return 0, ErrNegativeGrace
	}
	return start.Add(graceMinutes), nil
}

// NewShift validates the definition and derives its effective start time.
func NewShift(name string, start, end TimeOfDay, graceMinutes int) (Shift, error) {
	s := Shift{Name: strings.TrimSpace(name)}
	if s.Name == "" {
		return Shift{}, ErrShiftNameRequired
	}
	if err := s.Reschedule(start, end, graceMinutes); err != nil {
		return Shift{}, err
	}
	return s, nil
}

// Reschedule replaces the timing of the shift and recomputes the effective start time.
func (s *Shift) Reschedule(start, end TimeOfDay, graceMinutes int) error {
	effective, err := EffectiveStartTime(start, graceMinutes)
	if err != nil {
		return err
	}
	s.StartTime = start
	s.EndTime = end
	s.GraceMinutes = graceMinutes
	s.EffectiveStartTime = effective
	return nil
}

// IsOvernight reports whether the shift ends on the day after it starts.
func (s Shift) IsOvernight() bool {
	return s.EndTime <= s.StartTime
}

// ScheduledMinutes is the nominal length of one occurrence of the shift.
func (s Shift) ScheduledMinutes() int {
	return s.StartTime.MinutesUntil(s.EndTime)
}

// Window returns the start and end instants of the occurrence that begins on day.
func (s Shift) Window(day time.Time, loc *time.Location) (start, end time.Time) {
	start = s.StartTime.On(day, loc)
	endDay := day
	if s.IsOvernight() {
		endDay = time.Date(day.Year(), day.Month(), day.Day()+1, 0, 0, 0, 0, loc)
	}
	end = s.EndTime.On(endDay, loc)
	return start, end
}
