package group

import "time"

// Group is a cohort of trainees that follows a common day-by-day shift schedule.
type Group struct {
	ID          string
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Join
	TraineeCount int
}

// Schedule assigns a shift to a group for one calendar day.
type Schedule struct {
	ID        string
	GroupID   string
	ShiftID   string
	DayDate   time.Time
	CreatedAt time.Time

	// Join
	ShiftName *string
}
