package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/trainee"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const traineeSelect = `
	SELECT t.id, t.civil_id, t.military_id, t.full_name, t.rank_id, t.specialization_id,
		   t.shift_id, t.group_id, t.barcode_value, t.status, t.created_at, t.updated_at,
		   r.name, sp.name, sh.name, g.name
	FROM trainees t
	LEFT JOIN ranks r ON r.id = t.rank_id
	LEFT JOIN specializations sp ON sp.id = t.specialization_id
	LEFT JOIN shifts sh ON sh.id = t.shift_id
	LEFT JOIN groups g ON g.id = t.group_id
`

type traineeRepositoryImpl struct {
	db *database.DB
}

func NewTraineeRepository(db *database.DB) trainee.TraineeRepository {
	return &traineeRepositoryImpl{db: db}
}

func scanTrainee(row pgx.Row) (trainee.Trainee, error) {
	var t trainee.Trainee
	err := row.Scan(
		&t.ID, &t.CivilID, &t.MilitaryID, &t.FullName, &t.RankID, &t.SpecializationID,
		&t.ShiftID, &t.GroupID, &t.BarcodeValue, &t.Status, &t.CreatedAt, &t.UpdatedAt,
		&t.RankName, &t.SpecializationName, &t.ShiftName, &t.GroupName,
	)
	return t, err
}

// traineeWriteError maps constraint violations on the trainees table to domain errors.
func traineeWriteError(err error) error {
	if database.IsUniqueViolation(err) {
		switch database.ConstraintName(err) {
		case "uq_trainees_civil_id":
			return trainee.ErrCivilIDExists
		case "uq_trainees_military_id":
			return trainee.ErrMilitaryIDExists
		case "uq_trainees_barcode_value":
			return trainee.ErrBarcodeExists
		}
	}
	if database.IsForeignKeyViolation(err) {
		switch database.ConstraintName(err) {
		case "trainees_rank_id_fkey":
			return trainee.ErrInvalidRank
		case "trainees_specialization_id_fkey":
			return trainee.ErrInvalidSpecialization
		case "trainees_shift_id_fkey":
			return trainee.ErrInvalidShift
		case "trainees_group_id_fkey":
			return trainee.ErrInvalidGroup
		}
	}
	return err
}

// Create implements trainee.TraineeRepository.
func (r *traineeRepositoryImpl) Create(ctx context.Context, t trainee.Trainee) (trainee.Trainee, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return trainee.Trainee{}, err
	}

	query := `
		INSERT INTO trainees (
			id, civil_id, military_id, full_name, rank_id, specialization_id,
			shift_id, group_id, barcode_value, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err = q.Exec(ctx, query,
		id, t.CivilID, t.MilitaryID, t.FullName, t.RankID, t.SpecializationID,
		t.ShiftID, t.GroupID, t.BarcodeValue, t.Status,
	)
	if err != nil {
		if mapped := traineeWriteError(err); mapped != err {
			return trainee.Trainee{}, mapped
		}
		return trainee.Trainee{}, fmt.Errorf("failed to create trainee: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements trainee.TraineeRepository.
func (r *traineeRepositoryImpl) GetByID(ctx context.Context, id string) (trainee.Trainee, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanTrainee(q.QueryRow(ctx, traineeSelect+` WHERE t.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return trainee.Trainee{}, trainee.ErrTraineeNotFound
		}
		return trainee.Trainee{}, fmt.Errorf("failed to get trainee: %w", err)
	}

	return found, nil
}

// GetByCode implements trainee.TraineeRepository.
func (r *traineeRepositoryImpl) GetByCode(ctx context.Context, code string) (trainee.Trainee, error) {
	q := GetQuerier(ctx, r.db)

	query := traineeSelect + `
		WHERE t.barcode_value = $1 OR t.military_id = $1 OR t.civil_id = $1
		ORDER BY CASE
			WHEN t.barcode_value = $1 THEN 0
			WHEN t.military_id = $1 THEN 1
			ELSE 2
		END
		LIMIT 1
	`

	found, err := scanTrainee(q.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return trainee.Trainee{}, trainee.ErrTraineeNotFound
		}
		return trainee.Trainee{}, fmt.Errorf("failed to get trainee by code: %w", err)
	}

	return found, nil
}

// List implements trainee.TraineeRepository.
func (r *traineeRepositoryImpl) List(ctx context.Context, filter trainee.TraineeFilter) ([]trainee.Trainee, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []any{}
	argIdx := 1

	if filter.Search != nil && *filter.Search != "" {
		baseWhere += fmt.Sprintf(" AND (t.full_name ILIKE $%d OR t.civil_id ILIKE $%d OR t.military_id ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.ShiftID != nil && *filter.ShiftID != "" {
		baseWhere += fmt.Sprintf(" AND t.shift_id = $%d", argIdx)
		args = append(args, *filter.ShiftID)
		argIdx++
	}
	if filter.GroupID != nil && *filter.GroupID != "" {
		baseWhere += fmt.Sprintf(" AND t.group_id = $%d", argIdx)
		args = append(args, *filter.GroupID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND t.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM trainees t WHERE "+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count trainees: %w", err)
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

	query := fmt.Sprintf("%s WHERE %s ORDER BY t.full_name ASC LIMIT $%d OFFSET $%d", traineeSelect, baseWhere, argIdx, argIdx+1)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query trainees: %w", err)
	}
	defer rows.Close()

	var trainees []trainee.Trainee
	for rows.Next() {
		t, err := scanTrainee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan trainee: %w", err)
		}
		trainees = append(trainees, t)
	}

	return trainees, total, rows.Err()
}

// ListActive implements trainee.TraineeRepository.
func (r *traineeRepositoryImpl) ListActive(ctx context.Context) ([]trainee.Trainee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, traineeSelect+` WHERE t.status = $1 ORDER BY t.full_name ASC`, trainee.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active trainees: %w", err)
	}
	defer rows.Close()

	var trainees []trainee.Trainee
	for rows.Next() {
		t, err := scanTrainee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trainee: %w", err)
		}
		trainees = append(trainees, t)
	}

	return trainees, rows.Err()
}

// Update implements trainee.TraineeRepository.
func (r *traineeRepositoryImpl) Update(ctx context.Context, t trainee.Trainee) (trainee.Trainee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE trainees
		SET civil_id = $1, military_id = $2, full_name = $3, rank_id = $4, specialization_id = $5,
			shift_id = $6, group_id = $7, barcode_value = $8, status = $9, updated_at = NOW()
		WHERE id = $10
	`
	tag, err := q.Exec(ctx, query,
		t.CivilID, t.MilitaryID, t.FullName, t.RankID, t.SpecializationID,
		t.ShiftID, t.GroupID, t.BarcodeValue, t.Status, t.ID,
	)
	if err != nil {
		if mapped := traineeWriteError(err); mapped != err {
			return trainee.Trainee{}, mapped
		}
		return trainee.Trainee{}, fmt.Errorf("failed to update trainee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return trainee.Trainee{}, trainee.ErrTraineeNotFound
	}

	return r.GetByID(ctx, t.ID)
}

// Delete implements trainee.TraineeRepository.
func (r *traineeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM trainees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete trainee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return trainee.ErrTraineeNotFound
	}

	return nil
}
