package attendance

import (
	"context"
	"time"
)

type AttendanceService interface {
	// Scan handles a kiosk scan at the current instant.
	Scan(ctx context.Context, req ScanRequest) (ScanResponse, error)

	CheckIn(ctx context.Context, traineeID string, at time.Time) (SessionResponse, error)
	CheckOut(ctx context.Context, traineeID string, at time.Time) (SessionResponse, error)

	Get(ctx context.Context, id string) (SessionResponse, error)
	List(ctx context.Context, filter SessionFilter) (ListSessionResponse, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (SessionResponse, error)

	// MarkAbsent records an absent session for every active trainee with a shift on day and no session.
	MarkAbsent(ctx context.Context, day time.Time) (int64, error)
}
