package repository

import (
	"context"
	"fmt"

	"squad-be/internal/domain"
	"squad-be/pkg/database"

	"github.com/jackc/pgx/v5"
)

type PostgresGroupRepository struct {
	db *database.PostgresDB
}

func NewGroupRepository(db *database.PostgresDB) *PostgresGroupRepository {
	return &PostgresGroupRepository{db: db}
}

// GetGroup gets a group by ID without its members
func (r *PostgresGroupRepository) GetGroup(ctx context.Context, groupID string) (*domain.Group, error) {
	var group domain.Group
	query := `
		SELECT id, name, status, created_at, updated_at
		FROM groups
		WHERE id = $1
	`

	err := r.db.Pool.QueryRow(ctx, query, groupID).Scan(
		&group.ID,
		&group.Name,
		&group.Status,
		&group.CreatedAt,
		&group.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return &group, nil
}

// ListMembers gets all membership records for a group, dropped members included.
// Filtering dropped members is the caller's concern; warm-up math needs to see
// them to exclude them explicitly.
func (r *PostgresGroupRepository) ListMembers(ctx context.Context, groupID string) ([]domain.Member, error) {
	query := `
		SELECT id, group_id, user_id, display_name, status, prompt_response, readiness_confirmed_at
		FROM group_members
		WHERE group_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		err := rows.Scan(
			&m.ID,
			&m.GroupID,
			&m.UserID,
			&m.DisplayName,
			&m.Status,
			&m.PromptResponse,
			&m.ReadinessConfirmedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	return members, rows.Err()
}

// GetMemberByUserID gets the membership record linking a user to a group
func (r *PostgresGroupRepository) GetMemberByUserID(ctx context.Context, groupID, userID string) (*domain.Member, error) {
	var m domain.Member
	query := `
		SELECT id, group_id, user_id, display_name, status, prompt_response, readiness_confirmed_at
		FROM group_members
		WHERE group_id = $1 AND user_id = $2
	`

	err := r.db.Pool.QueryRow(ctx, query, groupID, userID).Scan(
		&m.ID,
		&m.GroupID,
		&m.UserID,
		&m.DisplayName,
		&m.Status,
		&m.PromptResponse,
		&m.ReadinessConfirmedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return &m, nil
}

// CompareAndSetStatus moves a group to target only if its stored status still
// equals expected. The conditional WHERE closes the race between two callers
// who both validated a transition from the same stale status; the loser
// matches zero rows and gets false back.
func (r *PostgresGroupRepository) CompareAndSetStatus(ctx context.Context, groupID string, expected, target domain.GroupStatus) (bool, error) {
	query := `
		UPDATE groups
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	tag, err := r.db.Pool.Exec(ctx, query, groupID, expected, target)
	if err != nil {
		return false, fmt.Errorf("failed to update group status: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
