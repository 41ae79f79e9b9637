package attendance

import (
	"context"
	"time"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/trainee"
)

type SessionRepository interface {
	// UpsertCheckIn inserts the session or overwrites the check-in fields of the existing one for the same key,
	// clearing any recorded check-out.
	UpsertCheckIn(ctx context.Context, s Session) (Session, error)

	GetByKey(ctx context.Context, key SessionKey) (Session, error)
	GetByID(ctx context.Context, id string) (Session, error)

	// RecordCheckOut writes the check-out instant and the derived minutes; status is left untouched.
	RecordCheckOut(ctx context.Context, s Session) (Session, error)

	UpdateStatus(ctx context.Context, id string, status Status, notes *string) (Session, error)
	List(ctx context.Context, filter SessionFilter) ([]Session, int64, error)

	// BulkCreateAbsences inserts absent sessions, skipping keys that already have a session.
	BulkCreateAbsences(ctx context.Context, sessions []Session) (int64, error)
}

// ShiftResolver finds the shift a trainee is expected to attend on a calendar day.
type ShiftResolver interface {
	Resolve(ctx context.Context, t trainee.Trainee, day time.Time) (shift.Shift, error)
}
