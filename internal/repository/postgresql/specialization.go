package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/master/specialization"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type specializationRepositoryImpl struct {
	db *database.DB
}

func NewSpecializationRepository(db *database.DB) specialization.SpecializationRepository {
	return &specializationRepositoryImpl{db: db}
}

// Create implements specialization.SpecializationRepository.
func (r *specializationRepositoryImpl) Create(ctx context.Context, name string) (specialization.Specialization, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return specialization.Specialization{}, err
	}

	query := `
		INSERT INTO specializations (id, name, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, name, created_at, updated_at
	`

	var result specialization.Specialization
	err = q.QueryRow(ctx, query, id, name).Scan(&result.ID, &result.Name, &result.CreatedAt, &result.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return specialization.Specialization{}, specialization.ErrSpecializationNameExists
		}
		return specialization.Specialization{}, fmt.Errorf("failed to create specialization: %w", err)
	}

	return result, nil
}

// GetByID implements specialization.SpecializationRepository.
func (r *specializationRepositoryImpl) GetByID(ctx context.Context, id string) (specialization.Specialization, error) {
	q := GetQuerier(ctx, r.db)

	var result specialization.Specialization
	err := q.QueryRow(ctx, `SELECT id, name, created_at, updated_at FROM specializations WHERE id = $1`, id).
		Scan(&result.ID, &result.Name, &result.CreatedAt, &result.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return specialization.Specialization{}, specialization.ErrSpecializationNotFound
		}
		return specialization.Specialization{}, fmt.Errorf("failed to get specialization: %w", err)
	}

	return result, nil
}

// List implements specialization.SpecializationRepository.
func (r *specializationRepositoryImpl) List(ctx context.Context) ([]specialization.Specialization, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, created_at, updated_at FROM specializations ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list specializations: %w", err)
	}
	defer rows.Close()

	var specializations []specialization.Specialization
	for rows.Next() {
		var v specialization.Specialization
		if err := rows.Scan(&v.ID, &v.Name, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan specialization: %w", err)
		}
		specializations = append(specializations, v)
	}

	return specializations, rows.Err()
}

// Update implements specialization.SpecializationRepository.
func (r *specializationRepositoryImpl) Update(ctx context.Context, req specialization.UpdateSpecializationRequest) (specialization.Specialization, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE specializations
		SET name = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, name, created_at, updated_at
	`

	var result specialization.Specialization
	err := q.QueryRow(ctx, query, req.Name, req.ID).Scan(&result.ID, &result.Name, &result.CreatedAt, &result.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return specialization.Specialization{}, specialization.ErrSpecializationNotFound
		case database.IsUniqueViolation(err):
			return specialization.Specialization{}, specialization.ErrSpecializationNameExists
		}
		return specialization.Specialization{}, fmt.Errorf("failed to update specialization: %w", err)
	}

	return result, nil
}

// Delete implements specialization.SpecializationRepository.
func (r *specializationRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM specializations WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return specialization.ErrSpecializationInUse
		}
		return fmt.Errorf("failed to delete specialization: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return specialization.ErrSpecializationNotFound
	}

	return nil
}
