package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailableTransitions(t *testing.T) {
	graph := NewStatusGraph()

	tests := []struct {
		name string
		from GroupStatus
		want []GroupStatus
	}{
		{
			name: "draft can only be confirmed",
			from: StatusDraft,
			want: []GroupStatus{StatusConfirmed},
		},
		{
			name: "confirmed moves to warm-up or cancels",
			from: StatusConfirmed,
			want: []GroupStatus{StatusWarmingUp, StatusCancelled},
		},
		{
			name: "warming up moves to review or cancels",
			from: StatusWarmingUp,
			want: []GroupStatus{StatusReadyForReview, StatusCancelled},
		},
		{
			name: "review approves, falls back, or cancels",
			from: StatusReadyForReview,
			want: []GroupStatus{StatusApproved, StatusWarmingUp, StatusCancelled},
		},
		{
			name: "approved activates or cancels",
			from: StatusApproved,
			want: []GroupStatus{StatusActive, StatusCancelled},
		},
		{
			name: "active only completes",
			from: StatusActive,
			want: []GroupStatus{StatusCompleted},
		},
		{
			name: "completed only archives",
			from: StatusCompleted,
			want: []GroupStatus{StatusArchived},
		},
		{
			name: "cancelled is terminal",
			from: StatusCancelled,
			want: []GroupStatus{},
		},
		{
			name: "archived is terminal",
			from: StatusArchived,
			want: []GroupStatus{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, graph.AvailableTransitions(tt.from))
		})
	}
}

func TestAvailableTransitionsUnknownStatus(t *testing.T) {
	graph := NewStatusGraph()
	assert.Empty(t, graph.AvailableTransitions(GroupStatus("limbo")))
	assert.False(t, graph.IsTerminal(GroupStatus("limbo")))
}

func TestIsValidTransition(t *testing.T) {
	graph := NewStatusGraph()
	all := []GroupStatus{
		StatusDraft, StatusConfirmed, StatusWarmingUp, StatusReadyForReview,
		StatusApproved, StatusActive, StatusCompleted, StatusCancelled, StatusArchived,
	}

	// Everything not in the table is invalid: self-loops, reverse edges,
	// skips like draft -> active.
	for _, from := range all {
		allowed := map[GroupStatus]bool{}
		for _, to := range graph.AvailableTransitions(from) {
			allowed[to] = true
		}
		for _, to := range all {
			got := graph.IsValidTransition(from, to)
			if allowed[to] {
				assert.True(t, got, "expected %s -> %s to be valid", from, to)
			} else {
				assert.False(t, got, "expected %s -> %s to be invalid", from, to)
			}
		}
	}

	// Spot checks pinned from the table
	assert.True(t, graph.IsValidTransition(StatusReadyForReview, StatusWarmingUp))
	assert.False(t, graph.IsValidTransition(StatusDraft, StatusActive))
	assert.False(t, graph.IsValidTransition(StatusActive, StatusApproved))
	assert.False(t, graph.IsValidTransition(StatusActive, StatusActive))
	assert.False(t, graph.IsValidTransition(GroupStatus("limbo"), StatusDraft))
}

func TestIsTerminal(t *testing.T) {
	graph := NewStatusGraph()
	assert.True(t, graph.IsTerminal(StatusCancelled))
	assert.True(t, graph.IsTerminal(StatusArchived))
	assert.False(t, graph.IsTerminal(StatusDraft))
	assert.False(t, graph.IsTerminal(StatusActive))
}

func TestStatusPredicates(t *testing.T) {
	tests := []struct {
		status              GroupStatus
		inWarmUp            bool
		needsReview         bool
		instructionsVisible bool
	}{
		{StatusDraft, false, false, false},
		{StatusConfirmed, false, false, false},
		{StatusWarmingUp, true, false, false},
		{StatusReadyForReview, true, true, false},
		{StatusApproved, false, false, true},
		{StatusActive, false, false, true},
		{StatusCompleted, false, false, true},
		{StatusCancelled, false, false, false},
		{StatusArchived, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.inWarmUp, tt.status.InWarmUp())
			assert.Equal(t, tt.needsReview, tt.status.NeedsReview())
			assert.Equal(t, tt.instructionsVisible, tt.status.InstructionsVisible())
		})
	}
}

func TestStatusDisplayName(t *testing.T) {
	assert.Equal(t, "Warming Up", StatusWarmingUp.DisplayName())
	assert.Equal(t, "Ready for Review", StatusReadyForReview.DisplayName())
	assert.Equal(t, "limbo", GroupStatus("limbo").DisplayName())
}
