package repository

import (
	"context"
	"fmt"
	"time"

	"squad-be/internal/domain"
	"squad-be/pkg/database"

	"github.com/jackc/pgx/v5"
)

type PostgresReadyCheckRepository struct {
	db *database.PostgresDB
}

func NewReadyCheckRepository(db *database.PostgresDB) *PostgresReadyCheckRepository {
	return &PostgresReadyCheckRepository{db: db}
}

// InsertCheck creates a new ready check and fills in the generated ID and
// creation time
func (r *PostgresReadyCheckRepository) InsertCheck(ctx context.Context, check *domain.ReadyCheck) error {
	query := `
		INSERT INTO ready_checks (group_id, title, triggered_by, context_id, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		check.GroupID,
		check.Title,
		check.TriggeredBy,
		check.ContextID,
		check.ExpiresAt,
	).Scan(&check.ID, &check.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert ready check: %w", err)
	}

	return nil
}

// GetCheck gets a ready check by ID
func (r *PostgresReadyCheckRepository) GetCheck(ctx context.Context, checkID string) (*domain.ReadyCheck, error) {
	var check domain.ReadyCheck
	query := `
		SELECT id, group_id, title, triggered_by, context_id, created_at, expires_at
		FROM ready_checks
		WHERE id = $1
	`

	err := r.db.Pool.QueryRow(ctx, query, checkID).Scan(
		&check.ID,
		&check.GroupID,
		&check.Title,
		&check.TriggeredBy,
		&check.ContextID,
		&check.CreatedAt,
		&check.ExpiresAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ready check: %w", err)
	}

	return &check, nil
}

// ListChecks gets every ready check for a group, newest first
func (r *PostgresReadyCheckRepository) ListChecks(ctx context.Context, groupID string) ([]domain.ReadyCheck, error) {
	query := `
		SELECT id, group_id, title, triggered_by, context_id, created_at, expires_at
		FROM ready_checks
		WHERE group_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ready checks: %w", err)
	}
	defer rows.Close()

	var checks []domain.ReadyCheck
	for rows.Next() {
		var check domain.ReadyCheck
		err := rows.Scan(
			&check.ID,
			&check.GroupID,
			&check.Title,
			&check.TriggeredBy,
			&check.ContextID,
			&check.CreatedAt,
			&check.ExpiresAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ready check: %w", err)
		}
		checks = append(checks, check)
	}

	return checks, rows.Err()
}

// ListResponses gets the responses for a set of checks, joined with the
// responder's display name
func (r *PostgresReadyCheckRepository) ListResponses(ctx context.Context, checkIDs []string) ([]domain.ReadyCheckResponse, error) {
	if len(checkIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT rcr.ready_check_id, rcr.member_id, gm.display_name, rcr.response, rcr.responded_at
		FROM ready_check_responses rcr
		JOIN group_members gm ON gm.id = rcr.member_id
		WHERE rcr.ready_check_id = ANY($1)
		ORDER BY rcr.responded_at ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, checkIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	defer rows.Close()

	var responses []domain.ReadyCheckResponse
	for rows.Next() {
		var resp domain.ReadyCheckResponse
		err := rows.Scan(
			&resp.ReadyCheckID,
			&resp.MemberID,
			&resp.MemberName,
			&resp.Response,
			&resp.RespondedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		responses = append(responses, resp)
	}

	return responses, rows.Err()
}

// UpsertResponse inserts or replaces a member's response to a check. The
// primary key on (ready_check_id, member_id) serializes concurrent writes
// from the same member; last write wins and responded_at is refreshed.
func (r *PostgresReadyCheckRepository) UpsertResponse(ctx context.Context, checkID, memberID string, response domain.ResponseValue, respondedAt time.Time) error {
	query := `
		INSERT INTO ready_check_responses (ready_check_id, member_id, response, responded_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (ready_check_id, member_id)
		DO UPDATE SET response = EXCLUDED.response, responded_at = EXCLUDED.responded_at
	`

	if _, err := r.db.Pool.Exec(ctx, query, checkID, memberID, response, respondedAt); err != nil {
		return fmt.Errorf("failed to upsert response: %w", err)
	}

	return nil
}
