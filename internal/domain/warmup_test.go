package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func memberWith(status MemberStatus, prompt string, confirmed bool) Member {
	m := Member{Status: status}
	if prompt != "" {
		m.PromptResponse = &prompt
	}
	if confirmed {
		now := time.Now()
		m.ReadinessConfirmedAt = &now
	}
	return m
}

func TestCalculateWarmUpProgress(t *testing.T) {
	tests := []struct {
		name        string
		members     []Member
		minReadyPct int
		want        WarmUpProgress
	}{
		{
			name:        "empty squad is zero percent and not complete",
			members:     []Member{},
			minReadyPct: 0,
			want:        WarmUpProgress{TotalMembers: 0, ReadyMembers: 0, Percentage: 0, IsComplete: false},
		},
		{
			name: "all members ready",
			members: []Member{
				memberWith(MemberActive, "excited to start", true),
				memberWith(MemberActive, "can't wait", true),
			},
			minReadyPct: 0,
			want:        WarmUpProgress{TotalMembers: 2, ReadyMembers: 2, Percentage: 100, IsComplete: true},
		},
		{
			name: "prompt without confirmation does not count",
			members: []Member{
				memberWith(MemberActive, "excited", false),
				memberWith(MemberActive, "ready", true),
			},
			minReadyPct: 0,
			want:        WarmUpProgress{TotalMembers: 2, ReadyMembers: 1, Percentage: 50, IsComplete: false},
		},
		{
			name: "confirmation without prompt does not count",
			members: []Member{
				memberWith(MemberActive, "", true),
			},
			minReadyPct: 0,
			want:        WarmUpProgress{TotalMembers: 1, ReadyMembers: 0, Percentage: 0, IsComplete: false},
		},
		{
			name: "dropped member excluded even when fully ready",
			members: []Member{
				memberWith(MemberDropped, "was ready", true),
				memberWith(MemberActive, "still here", true),
			},
			minReadyPct: 0,
			want:        WarmUpProgress{TotalMembers: 1, ReadyMembers: 1, Percentage: 100, IsComplete: true},
		},
		{
			name: "percentage rounds to nearest integer",
			members: []Member{
				memberWith(MemberActive, "a", true),
				memberWith(MemberActive, "b", true),
				memberWith(MemberActive, "", false),
			},
			minReadyPct: 0,
			want:        WarmUpProgress{TotalMembers: 3, ReadyMembers: 2, Percentage: 67, IsComplete: false},
		},
		{
			name: "caller supplied threshold",
			members: []Member{
				memberWith(MemberActive, "a", true),
				memberWith(MemberActive, "b", true),
				memberWith(MemberActive, "", false),
				memberWith(MemberActive, "", false),
			},
			minReadyPct: 50,
			want:        WarmUpProgress{TotalMembers: 4, ReadyMembers: 2, Percentage: 50, IsComplete: true},
		},
		{
			name: "only dropped members behaves like empty squad",
			members: []Member{
				memberWith(MemberDropped, "a", true),
				memberWith(MemberDropped, "b", true),
			},
			minReadyPct: 0,
			want:        WarmUpProgress{TotalMembers: 0, ReadyMembers: 0, Percentage: 0, IsComplete: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateWarmUpProgress(tt.members, tt.minReadyPct))
		})
	}
}

func TestCalculateWarmUpProgressInvitedMembersCount(t *testing.T) {
	// Invited members are not dropped, so they stay in the denominator.
	got := CalculateWarmUpProgress([]Member{
		memberWith(MemberActive, "a", true),
		memberWith(MemberInvited, "", false),
	}, 0)
	assert.Equal(t, WarmUpProgress{TotalMembers: 2, ReadyMembers: 1, Percentage: 50, IsComplete: false}, got)
}
