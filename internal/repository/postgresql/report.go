package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// DailyRows retrieves every session of the day with the trainee's identity and shift name.
func (r *reportRepositoryImpl) DailyRows(ctx context.Context, day time.Time) ([]report.DailyRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			a.id, t.id, t.full_name, t.civil_id, t.military_id,
			COALESCE(rk.name, ''), COALESCE(sp.name, ''), COALESCE(s.name, ''),
			a.check_in_at, a.check_out_at,
			a.scheduled_minutes, a.late_minutes, a.actual_minutes, a.lost_minutes, a.early_leave_minutes,
			a.status, a.notes
		FROM attendance_sessions a
		JOIN trainees t ON t.id = a.trainee_id
		LEFT JOIN ranks rk ON rk.id = t.rank_id
		LEFT JOIN specializations sp ON sp.id = t.specialization_id
		LEFT JOIN shifts s ON s.id = a.shift_id
		WHERE a.day_date = $1
		ORDER BY s.start_time ASC, t.full_name ASC
	`

	rows, err := q.Query(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily report: %w", err)
	}
	defer rows.Close()

	var result []report.DailyRow
	for rows.Next() {
		var row report.DailyRow
		err := rows.Scan(
			&row.SessionID, &row.TraineeID, &row.TraineeName, &row.CivilID, &row.MilitaryID,
			&row.RankName, &row.SpecializationName, &row.ShiftName,
			&row.CheckInAt, &row.CheckOutAt,
			&row.ScheduledMinutes, &row.LateMinutes, &row.ActualMinutes, &row.LostMinutes, &row.EarlyLeaveMinutes,
			&row.Status, &row.Notes,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily report row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// TraineeTotals aggregates sessions per trainee over [from, to].
func (r *reportRepositoryImpl) TraineeTotals(ctx context.Context, from, to time.Time) ([]report.TraineeTotals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			t.id, t.full_name, t.civil_id, COALESCE(rk.name, ''),
			COUNT(a.id),
			COUNT(CASE WHEN a.status = 'present' THEN 1 END),
			COUNT(CASE WHEN a.status = 'late' THEN 1 END),
			COUNT(CASE WHEN a.status = 'absent' THEN 1 END),
			COUNT(CASE WHEN a.status = 'escaped' THEN 1 END),
			COALESCE(SUM(a.late_minutes), 0),
			COALESCE(SUM(a.lost_minutes), 0),
			COALESCE(SUM(a.early_leave_minutes), 0)
		FROM trainees t
		LEFT JOIN ranks rk ON rk.id = t.rank_id
		LEFT JOIN attendance_sessions a ON a.trainee_id = t.id
			AND a.day_date >= $1 AND a.day_date <= $2
		GROUP BY t.id, t.full_name, t.civil_id, rk.name
		HAVING COUNT(a.id) > 0
		ORDER BY t.full_name ASC
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query period report: %w", err)
	}
	defer rows.Close()

	var result []report.TraineeTotals
	for rows.Next() {
		var row report.TraineeTotals
		err := rows.Scan(
			&row.TraineeID, &row.TraineeName, &row.CivilID, &row.RankName,
			&row.Sessions, &row.PresentDays, &row.LateDays, &row.AbsentDays, &row.EscapedDays,
			&row.LateMinutes, &row.LostMinutes, &row.EarlyLeaveMinutes,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan period report row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}
