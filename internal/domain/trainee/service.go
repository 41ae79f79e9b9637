package trainee

import "context"

type TraineeService interface {
	Create(ctx context.Context, req CreateTraineeRequest) (TraineeResponse, error)
	Get(ctx context.Context, id string) (TraineeResponse, error)
	List(ctx context.Context, filter TraineeFilter) (ListTraineeResponse, error)
	Update(ctx context.Context, req UpdateTraineeRequest) (TraineeResponse, error)
	Delete(ctx context.Context, id string) error
}
