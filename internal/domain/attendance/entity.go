package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
	StatusEscaped Status = "escaped"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusAbsent, StatusEscaped:
		return true
	}
	return false
}

type ScanMode string

const (
	ScanModeIn  ScanMode = "IN"
	ScanModeOut ScanMode = "OUT"
)

// Session is one trainee's attendance for one occurrence of a shift.
// (TraineeID, DayDate, ShiftID) is unique; DayDate is the calendar date the shift starts on.
type Session struct {
	ID                string
	TraineeID         string
	ShiftID           string
	DayDate           time.Time
	CheckInAt         *time.Time
	CheckOutAt        *time.Time
	ScheduledMinutes  int
	LateMinutes       int
	ActualMinutes     *int
	LostMinutes       *int
	EarlyLeaveMinutes *int
	Status            Status
	Notes             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Join
	TraineeName *string
	CivilID     *string
	RankName    *string
	ShiftName   *string
}

func (s Session) Key() SessionKey {
	return SessionKey{TraineeID: s.TraineeID, DayDate: s.DayDate, ShiftID: s.ShiftID}
}

// HasOpenCheckIn reports whether the session was checked in and not yet checked out.
func (s Session) HasOpenCheckIn() bool {
	return s.CheckInAt != nil && s.CheckOutAt == nil
}

type SessionKey struct {
	TraineeID string
	DayDate   time.Time
	ShiftID   string
}
