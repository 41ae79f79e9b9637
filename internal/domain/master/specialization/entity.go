package specialization

import "time"

type Specialization struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
