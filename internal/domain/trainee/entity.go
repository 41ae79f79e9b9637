package trainee

import "time"

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type Trainee struct {
	ID               string
	CivilID          string
	MilitaryID       string
	FullName         string
	RankID           string
	SpecializationID string
	ShiftID          string
	GroupID          *string
	BarcodeValue     string
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Join
	RankName           *string
	SpecializationName *string
	ShiftName          *string
	GroupName          *string
}

func (t Trainee) IsActive() bool {
	return t.Status == StatusActive
}
