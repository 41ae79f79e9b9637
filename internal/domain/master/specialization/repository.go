package specialization

import "context"

type SpecializationRepository interface {
	Create(ctx context.Context, name string) (Specialization, error)
	GetByID(ctx context.Context, id string) (Specialization, error)
	List(ctx context.Context) ([]Specialization, error)
	Update(ctx context.Context, req UpdateSpecializationRequest) (Specialization, error)
	Delete(ctx context.Context, id string) error
}
