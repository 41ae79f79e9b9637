package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const sessionSelect = `
	SELECT a.id, a.trainee_id, a.shift_id, a.day_date, a.check_in_at, a.check_out_at,
		   a.scheduled_minutes, a.late_minutes, a.actual_minutes, a.lost_minutes, a.early_leave_minutes,
		   a.status, a.notes, a.created_at, a.updated_at,
		   t.full_name, t.civil_id, r.name, s.name
	FROM attendance_sessions a
	LEFT JOIN trainees t ON t.id = a.trainee_id
	LEFT JOIN ranks r ON r.id = t.rank_id
	LEFT JOIN shifts s ON s.id = a.shift_id
`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.SessionRepository {
	return &attendanceRepository{db: db}
}

func scanSession(row pgx.Row) (attendance.Session, error) {
	var s attendance.Session
	err := row.Scan(
		&s.ID, &s.TraineeID, &s.ShiftID, &s.DayDate, &s.CheckInAt, &s.CheckOutAt,
		&s.ScheduledMinutes, &s.LateMinutes, &s.ActualMinutes, &s.LostMinutes, &s.EarlyLeaveMinutes,
		&s.Status, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
		&s.TraineeName, &s.CivilID, &s.RankName, &s.ShiftName,
	)
	return s, err
}

// UpsertCheckIn implements attendance.SessionRepository.
// A repeated check-in for the same key replaces the check-in fields and clears any recorded check-out.
func (a *attendanceRepository) UpsertCheckIn(ctx context.Context, s attendance.Session) (attendance.Session, error) {
	q := GetQuerier(ctx, a.db)

	id, err := newID()
	if err != nil {
		return attendance.Session{}, err
	}

	query := `
		INSERT INTO attendance_sessions (
			id, trainee_id, shift_id, day_date, check_in_at,
			scheduled_minutes, late_minutes, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		ON CONFLICT (trainee_id, day_date, shift_id) DO UPDATE SET
			check_in_at = EXCLUDED.check_in_at,
			scheduled_minutes = EXCLUDED.scheduled_minutes,
			late_minutes = EXCLUDED.late_minutes,
			status = EXCLUDED.status,
			check_out_at = NULL,
			actual_minutes = NULL,
			lost_minutes = NULL,
			early_leave_minutes = NULL,
			updated_at = NOW()
		RETURNING id
	`

	var savedID string
	err = q.QueryRow(ctx, query,
		id, s.TraineeID, s.ShiftID, s.DayDate, s.CheckInAt,
		s.ScheduledMinutes, s.LateMinutes, s.Status,
	).Scan(&savedID)
	if err != nil {
		return attendance.Session{}, fmt.Errorf("failed to upsert check-in: %w", err)
	}

	return a.GetByID(ctx, savedID)
}

// GetByKey implements attendance.SessionRepository.
func (a *attendanceRepository) GetByKey(ctx context.Context, key attendance.SessionKey) (attendance.Session, error) {
	q := GetQuerier(ctx, a.db)

	query := sessionSelect + ` WHERE a.trainee_id = $1 AND a.day_date = $2 AND a.shift_id = $3`
	found, err := scanSession(q.QueryRow(ctx, query, key.TraineeID, key.DayDate, key.ShiftID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Session{}, attendance.ErrSessionNotFound
		}
		return attendance.Session{}, fmt.Errorf("failed to get session by key: %w", err)
	}

	return found, nil
}

// GetByID implements attendance.SessionRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Session, error) {
	q := GetQuerier(ctx, a.db)

	found, err := scanSession(q.QueryRow(ctx, sessionSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Session{}, attendance.ErrSessionNotFound
		}
		return attendance.Session{}, fmt.Errorf("failed to get session: %w", err)
	}

	return found, nil
}

// RecordCheckOut implements attendance.SessionRepository.
func (a *attendanceRepository) RecordCheckOut(ctx context.Context, s attendance.Session) (attendance.Session, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_sessions
		SET check_out_at = $1, actual_minutes = $2, lost_minutes = $3, early_leave_minutes = $4, updated_at = NOW()
		WHERE id = $5
	`
	tag, err := q.Exec(ctx, query, s.CheckOutAt, s.ActualMinutes, s.LostMinutes, s.EarlyLeaveMinutes, s.ID)
	if err != nil {
		return attendance.Session{}, fmt.Errorf("failed to record check-out: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.Session{}, attendance.ErrSessionNotFound
	}

	return a.GetByID(ctx, s.ID)
}

// UpdateStatus implements attendance.SessionRepository.
func (a *attendanceRepository) UpdateStatus(ctx context.Context, id string, status attendance.Status, notes *string) (attendance.Session, error) {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `
		UPDATE attendance_sessions
		SET status = $1, notes = COALESCE($2, notes), updated_at = NOW()
		WHERE id = $3
	`, status, notes, id)
	if err != nil {
		return attendance.Session{}, fmt.Errorf("failed to update session status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.Session{}, attendance.ErrSessionNotFound
	}

	return a.GetByID(ctx, id)
}

// List implements attendance.SessionRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.SessionFilter) ([]attendance.Session, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "1=1"
	args := []any{}
	argIdx := 1

	if filter.TraineeID != nil && *filter.TraineeID != "" {
		baseWhere += fmt.Sprintf(" AND a.trainee_id = $%d", argIdx)
		args = append(args, *filter.TraineeID)
		argIdx++
	}
	if filter.ShiftID != nil && *filter.ShiftID != "" {
		baseWhere += fmt.Sprintf(" AND a.shift_id = $%d", argIdx)
		args = append(args, *filter.ShiftID)
		argIdx++
	}
	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND a.day_date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.day_date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.day_date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM attendance_sessions a WHERE "+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	orderByField := "a.day_date"
	switch filter.SortBy {
	case "trainee_name":
		orderByField = "t.full_name"
	case "check_in_at":
		orderByField = "a.check_in_at"
	case "status":
		orderByField = "a.status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)

	selectQuery := fmt.Sprintf(`%s WHERE %s ORDER BY %s %s, a.id LIMIT $%d OFFSET $%d`,
		sessionSelect, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []attendance.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, total, rows.Err()
}

// BulkCreateAbsences implements attendance.SessionRepository.
func (a *attendanceRepository) BulkCreateAbsences(ctx context.Context, sessions []attendance.Session) (int64, error) {
	if len(sessions) == 0 {
		return 0, nil
	}
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_sessions (
			id, trainee_id, shift_id, day_date, scheduled_minutes, late_minutes,
			actual_minutes, lost_minutes, early_leave_minutes, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, 0, 0, $6, 0, $7, NOW(), NOW())
		ON CONFLICT (trainee_id, day_date, shift_id) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, s := range sessions {
		id, err := newID()
		if err != nil {
			return 0, err
		}
		batch.Queue(query, id, s.TraineeID, s.ShiftID, s.DayDate, s.ScheduledMinutes, s.ScheduledMinutes, attendance.StatusAbsent)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int64
	for range sessions {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("failed to insert absence: %w", err)
		}
		inserted += tag.RowsAffected()
	}

	return inserted, nil
}
