package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/master/rank"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type rankRepositoryImpl struct {
	db *database.DB
}

func NewRankRepository(db *database.DB) rank.RankRepository {
	return &rankRepositoryImpl{db: db}
}

// Create implements rank.RankRepository.
func (r *rankRepositoryImpl) Create(ctx context.Context, name string) (rank.Rank, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return rank.Rank{}, err
	}

	query := `
		INSERT INTO ranks (id, name, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, name, created_at, updated_at
	`

	var result rank.Rank
	err = q.QueryRow(ctx, query, id, name).Scan(&result.ID, &result.Name, &result.CreatedAt, &result.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return rank.Rank{}, rank.ErrRankNameExists
		}
		return rank.Rank{}, fmt.Errorf("failed to create rank: %w", err)
	}

	return result, nil
}

// GetByID implements rank.RankRepository.
func (r *rankRepositoryImpl) GetByID(ctx context.Context, id string) (rank.Rank, error) {
	q := GetQuerier(ctx, r.db)

	var result rank.Rank
	err := q.QueryRow(ctx, `SELECT id, name, created_at, updated_at FROM ranks WHERE id = $1`, id).
		Scan(&result.ID, &result.Name, &result.CreatedAt, &result.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rank.Rank{}, rank.ErrRankNotFound
		}
		return rank.Rank{}, fmt.Errorf("failed to get rank: %w", err)
	}

	return result, nil
}

// List implements rank.RankRepository.
func (r *rankRepositoryImpl) List(ctx context.Context) ([]rank.Rank, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, created_at, updated_at FROM ranks ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list ranks: %w", err)
	}
	defer rows.Close()

	var ranks []rank.Rank
	for rows.Next() {
		var v rank.Rank
		if err := rows.Scan(&v.ID, &v.Name, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rank: %w", err)
		}
		ranks = append(ranks, v)
	}

	return ranks, rows.Err()
}

// Update implements rank.RankRepository.
func (r *rankRepositoryImpl) Update(ctx context.Context, req rank.UpdateRankRequest) (rank.Rank, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE ranks
		SET name = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, name, created_at, updated_at
	`

	var result rank.Rank
	err := q.QueryRow(ctx, query, req.Name, req.ID).Scan(&result.ID, &result.Name, &result.CreatedAt, &result.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return rank.Rank{}, rank.ErrRankNotFound
		case database.IsUniqueViolation(err):
			return rank.Rank{}, rank.ErrRankNameExists
		}
		return rank.Rank{}, fmt.Errorf("failed to update rank: %w", err)
	}

	return result, nil
}

// Delete implements rank.RankRepository.
func (r *rankRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM ranks WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return rank.ErrRankInUse
		}
		return fmt.Errorf("failed to delete rank: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return rank.ErrRankNotFound
	}

	return nil
}
