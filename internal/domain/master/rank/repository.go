package rank

import "context"

type RankRepository interface {
	Create(ctx context.Context, name string) (Rank, error)
	GetByID(ctx context.Context, id string) (Rank, error)
	List(ctx context.Context) ([]Rank, error)
	Update(ctx context.Context, req UpdateRankRequest) (Rank, error)
	Delete(ctx context.Context, id string) error
}
