package repository

import (
	"context"
	"time"

	"squad-be/internal/domain"
)

// GroupRepository defines the interface for group and membership data operations
type GroupRepository interface {
	// GetGroup retrieves a group by ID, nil when not found
	GetGroup(ctx context.Context, groupID string) (*domain.Group, error)

	// ListMembers retrieves all membership records for a group
	ListMembers(ctx context.Context, groupID string) ([]domain.Member, error)

	// GetMemberByUserID retrieves the membership record linking a user to a group, nil when absent
	GetMemberByUserID(ctx context.Context, groupID, userID string) (*domain.Member, error)

	// CompareAndSetStatus conditionally moves a group from expected to target status.
	// Returns false when the row was not updated because the stored status no
	// longer matches expected.
	CompareAndSetStatus(ctx context.Context, groupID string, expected, target domain.GroupStatus) (bool, error)
}

// ReadyCheckRepository defines the interface for ready-check data operations
type ReadyCheckRepository interface {
	// InsertCheck persists a new ready check and fills in its ID and creation time
	InsertCheck(ctx context.Context, check *domain.ReadyCheck) error

	// GetCheck retrieves a ready check by ID, nil when not found
	GetCheck(ctx context.Context, checkID string) (*domain.ReadyCheck, error)

	// ListChecks retrieves every ready check belonging to a group
	ListChecks(ctx context.Context, groupID string) ([]domain.ReadyCheck, error)

	// ListResponses retrieves the responses for a set of checks
	ListResponses(ctx context.Context, checkIDs []string) ([]domain.ReadyCheckResponse, error)

	// UpsertResponse inserts or replaces a member's response. The storage layer
	// owns the (check, member) uniqueness; a replay refreshes responded_at.
	UpsertResponse(ctx context.Context, checkID, memberID string, response domain.ResponseValue, respondedAt time.Time) error
}
