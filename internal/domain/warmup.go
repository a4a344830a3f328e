package domain

import "math"

// DefaultMinReadyPercent is the warm-up completion threshold used when the
// caller does not supply one: every active member must be ready.
const DefaultMinReadyPercent = 100

// WarmUpProgress summarizes how ready a squad is to leave warm-up, derived
// from each member's prompt completion. This signal is independent of
// ready-check voting, which gates quest-scoped transitions later on.
type WarmUpProgress struct {
	TotalMembers int  `json:"total_members"`
	ReadyMembers int  `json:"ready_members"`
	Percentage   int  `json:"percentage"`
	IsComplete   bool `json:"is_complete"`
}

// CalculateWarmUpProgress computes warm-up progress from a member snapshot.
// Dropped members are excluded entirely, whatever their other fields say.
// A member counts as ready once they have both a non-empty prompt response
// and a readiness confirmation timestamp. minReadyPct <= 0 falls back to
// DefaultMinReadyPercent.
func CalculateWarmUpProgress(members []Member, minReadyPct int) WarmUpProgress {
	if minReadyPct <= 0 {
		minReadyPct = DefaultMinReadyPercent
	}

	var total, ready int
	for _, m := range members {
		if m.Status == MemberDropped {
			continue
		}
		total++
		if m.PromptResponse != nil && *m.PromptResponse != "" && m.ReadinessConfirmedAt != nil {
			ready++
		}
	}

	// An empty squad is 0% ready, not a division error.
	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(ready) / float64(total) * 100))
	}

	return WarmUpProgress{
		TotalMembers: total,
		ReadyMembers: ready,
		Percentage:   percentage,
		IsComplete:   percentage >= minReadyPct,
	}
}
