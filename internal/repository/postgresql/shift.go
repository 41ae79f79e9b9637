package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const shiftColumns = `id, name, start_time, end_time, grace_minutes, effective_start_time, created_at, updated_at`

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.StartTime,
		&s.EndTime,
		&s.GraceMinutes,
		&s.EffectiveStartTime,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

// Create implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return shift.Shift{}, err
	}

	query := `
		INSERT INTO shifts (id, name, start_time, end_time, grace_minutes, effective_start_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + shiftColumns

	created, err := scanShift(q.QueryRow(ctx, query,
		id,
		s.Name,
		s.StartTime.String(),
		s.EndTime.String(),
		s.GraceMinutes,
		s.EffectiveStartTime.String(),
	))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return shift.Shift{}, shift.ErrShiftNameExists
		}
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return created, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanShift(q.QueryRow(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return found, nil
}

// List implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) List(ctx context.Context) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+shiftColumns+` FROM shifts ORDER BY start_time ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}

	return shifts, rows.Err()
}

// Update implements shift.ShiftRepository. The effective start time is written as derived by the caller.
func (r *shiftRepositoryImpl) Update(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET name = $1, start_time = $2, end_time = $3, grace_minutes = $4,
			effective_start_time = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING ` + shiftColumns

	updated, err := scanShift(q.QueryRow(ctx, query,
		s.Name,
		s.StartTime.String(),
		s.EndTime.String(),
		s.GraceMinutes,
		s.EffectiveStartTime.String(),
		s.ID,
	))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return shift.Shift{}, shift.ErrShiftNotFound
		case database.IsUniqueViolation(err):
			return shift.Shift{}, shift.ErrShiftNameExists
		}
		return shift.Shift{}, fmt.Errorf("failed to update shift: %w", err)
	}

	return updated, nil
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return shift.ErrShiftInUse
		}
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}
