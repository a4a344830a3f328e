package domain

import (
	"errors"
	"fmt"
	"time"
)

// GroupStatus represents a squad's position in its lifecycle
type GroupStatus string

const (
	StatusDraft          GroupStatus = "draft"
	StatusConfirmed      GroupStatus = "confirmed"
	StatusWarmingUp      GroupStatus = "warming_up"
	StatusReadyForReview GroupStatus = "ready_for_review"
	StatusApproved       GroupStatus = "approved"
	StatusActive         GroupStatus = "active"
	StatusCompleted      GroupStatus = "completed"
	StatusCancelled      GroupStatus = "cancelled"
	StatusArchived       GroupStatus = "archived"
)

// MemberStatus represents a member's standing within a squad
type MemberStatus string

const (
	MemberActive  MemberStatus = "active"
	MemberInvited MemberStatus = "invited"
	MemberDropped MemberStatus = "dropped"
)

// Group represents a squad and its lifecycle state
type Group struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Status    GroupStatus `json:"status"`
	Members   []Member    `json:"members,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Member represents a user's membership record in a squad
type Member struct {
	ID                   string       `json:"id"`
	GroupID              string       `json:"group_id"`
	UserID               string       `json:"user_id"`
	DisplayName          string       `json:"display_name"`
	Status               MemberStatus `json:"status"`
	PromptResponse       *string      `json:"prompt_response,omitempty"`
	ReadinessConfirmedAt *time.Time   `json:"readiness_confirmed_at,omitempty"`
}

// TransitionRequest represents a lifecycle transition submission
type TransitionRequest struct {
	TargetStatus GroupStatus `json:"target_status"`
}

// TransitionResponse represents the group after a successful transition
type TransitionResponse struct {
	Group   *Group `json:"group"`
	Message string `json:"message"`
}

// Sentinel errors shared between repositories and services
var (
	ErrGroupNotFound  = errors.New("group not found")
	ErrCheckNotFound  = errors.New("ready check not found")
	ErrNotGroupMember = errors.New("user is not an active member of this group")
	ErrStatusConflict = errors.New("group status changed concurrently")
	ErrDuplicateCheck = errors.New("an identical ready check was just created")
)

// InvalidTransitionError reports a transition not present in the lifecycle graph.
// Kept as a typed error so callers can distinguish it from a closed check or
// a concurrency conflict.
type InvalidTransitionError struct {
	From GroupStatus
	To   GroupStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transition from %q to %q is not allowed", e.From, e.To)
}
