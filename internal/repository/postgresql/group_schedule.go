package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/group"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const scheduleSelect = `
	SELECT gs.id, gs.group_id, gs.shift_id, gs.day_date, gs.created_at, s.name
	FROM group_schedules gs
	LEFT JOIN shifts s ON s.id = gs.shift_id
`

type scheduleRepositoryImpl struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) group.ScheduleRepository {
	return &scheduleRepositoryImpl{db: db}
}

func scanSchedule(row pgx.Row) (group.Schedule, error) {
	var s group.Schedule
	err := row.Scan(&s.ID, &s.GroupID, &s.ShiftID, &s.DayDate, &s.CreatedAt, &s.ShiftName)
	return s, err
}

// Upsert implements group.ScheduleRepository.
func (r *scheduleRepositoryImpl) Upsert(ctx context.Context, s group.Schedule) (group.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return group.Schedule{}, err
	}

	query := `
		INSERT INTO group_schedules (id, group_id, shift_id, day_date, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (group_id, day_date) DO UPDATE SET shift_id = EXCLUDED.shift_id
		RETURNING id
	`
	var savedID string
	if err := q.QueryRow(ctx, query, id, s.GroupID, s.ShiftID, s.DayDate).Scan(&savedID); err != nil {
		if database.IsForeignKeyViolation(err) {
			if database.ConstraintName(err) == "group_schedules_shift_id_fkey" {
				return group.Schedule{}, shift.ErrShiftNotFound
			}
			return group.Schedule{}, group.ErrGroupNotFound
		}
		return group.Schedule{}, fmt.Errorf("failed to save group schedule: %w", err)
	}

	saved, err := scanSchedule(q.QueryRow(ctx, scheduleSelect+` WHERE gs.id = $1`, savedID))
	if err != nil {
		return group.Schedule{}, fmt.Errorf("failed to reload group schedule: %w", err)
	}
	return saved, nil
}

// GetByGroupAndDate implements group.ScheduleRepository.
func (r *scheduleRepositoryImpl) GetByGroupAndDate(ctx context.Context, groupID string, day time.Time) (group.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanSchedule(q.QueryRow(ctx, scheduleSelect+` WHERE gs.group_id = $1 AND gs.day_date = $2`, groupID, day))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return group.Schedule{}, group.ErrScheduleNotFound
		}
		return group.Schedule{}, fmt.Errorf("failed to get group schedule: %w", err)
	}

	return found, nil
}

// ListByGroup implements group.ScheduleRepository.
func (r *scheduleRepositoryImpl) ListByGroup(ctx context.Context, groupID string, from, to time.Time) ([]group.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := scheduleSelect + `
		WHERE gs.group_id = $1 AND gs.day_date BETWEEN $2 AND $3
		ORDER BY gs.day_date ASC
	`
	rows, err := q.Query(ctx, query, groupID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list group schedules: %w", err)
	}
	defer rows.Close()

	var schedules []group.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group schedule: %w", err)
		}
		schedules = append(schedules, s)
	}

	return schedules, rows.Err()
}

// Delete implements group.ScheduleRepository.
func (r *scheduleRepositoryImpl) Delete(ctx context.Context, groupID, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM group_schedules WHERE id = $1 AND group_id = $2`, id, groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return group.ErrScheduleNotFound
	}

	return nil
}
