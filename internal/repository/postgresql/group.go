package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/group"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const groupSelect = `
	SELECT g.id, g.name, g.description, g.created_at, g.updated_at,
		   (SELECT COUNT(*) FROM trainees t WHERE t.group_id = g.id)
	FROM groups g
`

type groupRepositoryImpl struct {
	db *database.DB
}

func NewGroupRepository(db *database.DB) group.GroupRepository {
	return &groupRepositoryImpl{db: db}
}

func scanGroup(row pgx.Row) (group.Group, error) {
	var g group.Group
	err := row.Scan(&g.ID, &g.Name, &g.Description, &g.CreatedAt, &g.UpdatedAt, &g.TraineeCount)
	return g, err
}

// Create implements group.GroupRepository.
func (r *groupRepositoryImpl) Create(ctx context.Context, g group.Group) (group.Group, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return group.Group{}, err
	}

	query := `
		INSERT INTO groups (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, name, description, created_at, updated_at, 0
	`
	created, err := scanGroup(q.QueryRow(ctx, query, id, g.Name, g.Description))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return group.Group{}, group.ErrGroupNameExists
		}
		return group.Group{}, fmt.Errorf("failed to create group: %w", err)
	}

	return created, nil
}

// GetByID implements group.GroupRepository.
func (r *groupRepositoryImpl) GetByID(ctx context.Context, id string) (group.Group, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanGroup(q.QueryRow(ctx, groupSelect+` WHERE g.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return group.Group{}, group.ErrGroupNotFound
		}
		return group.Group{}, fmt.Errorf("failed to get group: %w", err)
	}

	return found, nil
}

// List implements group.GroupRepository.
func (r *groupRepositoryImpl) List(ctx context.Context) ([]group.Group, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, groupSelect+` ORDER BY g.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []group.Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}

	return groups, rows.Err()
}

// Update implements group.GroupRepository.
func (r *groupRepositoryImpl) Update(ctx context.Context, g group.Group) (group.Group, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE groups SET name = $1, description = $2, updated_at = NOW() WHERE id = $3`, g.Name, g.Description, g.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return group.Group{}, group.ErrGroupNameExists
		}
		return group.Group{}, fmt.Errorf("failed to update group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return group.Group{}, group.ErrGroupNotFound
	}

	return r.GetByID(ctx, g.ID)
}

// Delete implements group.GroupRepository. Members keep their own shift; schedules are removed with the group.
func (r *groupRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return group.ErrGroupNotFound
	}

	return nil
}
