package domain

// StatusGraph holds the lifecycle transition table for squads. The table is
// built once and never mutated; services share a single instance. The actual
// status write still happens behind a conditional update in the repository,
// so this check is advisory under concurrent writers.
type StatusGraph struct {
	transitions map[GroupStatus][]GroupStatus
}

// NewStatusGraph creates the lifecycle graph.
//
// cancelled and archived are terminal. ready_for_review may fall back to
// warming_up when review sends the squad another round of prompts.
func NewStatusGraph() *StatusGraph {
	return &StatusGraph{
		transitions: map[GroupStatus][]GroupStatus{
			StatusDraft:          {StatusConfirmed},
			StatusConfirmed:      {StatusWarmingUp, StatusCancelled},
			StatusWarmingUp:      {StatusReadyForReview, StatusCancelled},
			StatusReadyForReview: {StatusApproved, StatusWarmingUp, StatusCancelled},
			StatusApproved:       {StatusActive, StatusCancelled},
			StatusActive:         {StatusCompleted},
			StatusCompleted:      {StatusArchived},
			StatusCancelled:      {},
			StatusArchived:       {},
		},
	}
}

// IsValidTransition reports whether from may move to to. Unknown statuses
// yield false rather than an error; an unrecognized status should never
// reach this check.
func (g *StatusGraph) IsValidTransition(from, to GroupStatus) bool {
	for _, allowed := range g.transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AvailableTransitions returns the statuses reachable from the given status.
// Terminal and unknown statuses return an empty slice.
func (g *StatusGraph) AvailableTransitions(from GroupStatus) []GroupStatus {
	allowed := g.transitions[from]
	out := make([]GroupStatus, len(allowed))
	copy(out, allowed)
	return out
}

// IsTerminal reports whether the status has no outgoing transitions.
func (g *StatusGraph) IsTerminal(status GroupStatus) bool {
	allowed, known := g.transitions[status]
	return known && len(allowed) == 0
}

// InWarmUp reports whether the squad is in its warm-up phase, including the
// review hold before approval.
func (s GroupStatus) InWarmUp() bool {
	return s == StatusWarmingUp || s == StatusReadyForReview
}

// NeedsReview reports whether the squad is waiting on an organizer review.
func (s GroupStatus) NeedsReview() bool {
	return s == StatusReadyForReview
}

// InstructionsVisible reports whether quest instructions are shown to members.
func (s GroupStatus) InstructionsVisible() bool {
	return s == StatusApproved || s == StatusActive || s == StatusCompleted
}

// DisplayName returns the member-facing label for a status.
func (s GroupStatus) DisplayName() string {
	switch s {
	case StatusDraft:
		return "Draft"
	case StatusConfirmed:
		return "Confirmed"
	case StatusWarmingUp:
		return "Warming Up"
	case StatusReadyForReview:
		return "Ready for Review"
	case StatusApproved:
		return "Approved"
	case StatusActive:
		return "Active"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	case StatusArchived:
		return "Archived"
	default:
		return string(s)
	}
}
