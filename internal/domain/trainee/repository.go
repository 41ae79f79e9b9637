package trainee

import "context"

type TraineeRepository interface {
	Create(ctx context.Context, t Trainee) (Trainee, error)
	GetByID(ctx context.Context, id string) (Trainee, error)

	// GetByCode matches the barcode value first, then the military ID, then the civil ID.
	GetByCode(ctx context.Context, code string) (Trainee, error)

	List(ctx context.Context, filter TraineeFilter) ([]Trainee, int64, error)
	ListActive(ctx context.Context) ([]Trainee, error)
	Update(ctx context.Context, t Trainee) (Trainee, error)
	Delete(ctx context.Context, id string) error
}
