package rank

import "time"

type Rank struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
