package domain

import "time"

// ResponseValue is a member's answer to a ready check
type ResponseValue string

const (
	ResponseGo    ResponseValue = "go"
	ResponseMaybe ResponseValue = "maybe"
	ResponseNo    ResponseValue = "no"
)

// Valid reports whether v is one of the three accepted answers.
func (v ResponseValue) Valid() bool {
	return v == ResponseGo || v == ResponseMaybe || v == ResponseNo
}

// DefaultCheckExpiryMinutes is used when a create request omits the expiry.
const DefaultCheckExpiryMinutes = 60

// ReadyCheck is a time-boxed poll asking squad members whether they are
// prepared to proceed. Identity, title and expiry are immutable once
// created; only responses accumulate. There is no stored open/closed flag:
// whether a check is active is computed from expires_at at read time, so
// two callers reading at different instants can legitimately disagree.
type ReadyCheck struct {
	ID          string     `json:"id"`
	GroupID     string     `json:"group_id"`
	Title       string     `json:"title"`
	TriggeredBy string     `json:"triggered_by"`
	ContextID   *string    `json:"context_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   time.Time  `json:"expires_at"`
}

// IsActiveAt reports whether the check is still open at the given instant.
// The comparator is strict: a check whose expiry equals now is expired.
func (c *ReadyCheck) IsActiveAt(now time.Time) bool {
	return c.ExpiresAt.After(now)
}

// ReadyCheckResponse is one member's current answer to one check. The
// (check, member) pair is the identity; a re-submission replaces the row
// and refreshes RespondedAt.
type ReadyCheckResponse struct {
	ReadyCheckID string        `json:"ready_check_id"`
	MemberID     string        `json:"member_id"`
	MemberName   string        `json:"member_name,omitempty"`
	Response     ResponseValue `json:"response"`
	RespondedAt  time.Time     `json:"responded_at"`
}

// ResponseTally is the group-level view of a check's responses. It carries
// counts only; whether the squad "is go" is the caller's policy (unanimous,
// majority, or display-only), not encoded here.
type ResponseTally struct {
	Go       int `json:"go"`
	Maybe    int `json:"maybe"`
	No       int `json:"no"`
	Awaiting int `json:"awaiting"`
}

// TallyResponses reduces a response set to counts. totalExpected is the
// number of members whose answer the caller is waiting on; Awaiting never
// goes negative even if late responders outnumber current members.
func TallyResponses(responses []ReadyCheckResponse, totalExpected int) ResponseTally {
	tally := ResponseTally{}
	for _, r := range responses {
		switch r.Response {
		case ResponseGo:
			tally.Go++
		case ResponseMaybe:
			tally.Maybe++
		case ResponseNo:
			tally.No++
		}
	}
	tally.Awaiting = totalExpected - len(responses)
	if tally.Awaiting < 0 {
		tally.Awaiting = 0
	}
	return tally
}

// ResponseOf returns the member's current response, or false if they have
// not answered.
func ResponseOf(responses []ReadyCheckResponse, memberID string) (ResponseValue, bool) {
	for _, r := range responses {
		if r.MemberID == memberID {
			return r.Response, true
		}
	}
	return "", false
}

// CreateReadyCheckRequest represents a ready-check creation submission.
// ExpiresInMinutes is a pointer so an explicit zero (a check that is born
// expired) is distinguishable from an omitted field.
type CreateReadyCheckRequest struct {
	Title            string  `json:"title"`
	ExpiresInMinutes *int    `json:"expires_in_minutes,omitempty"`
	ContextID        *string `json:"context_id,omitempty"`
}

// RespondRequest represents a member's answer submission
type RespondRequest struct {
	Response ResponseValue `json:"response"`
}

// ReadyCheckWithResponses pairs a check with its responses and tally
type ReadyCheckWithResponses struct {
	ReadyCheck
	Responses []ReadyCheckResponse `json:"responses"`
	Tally     ResponseTally        `json:"tally"`
}

// ReadyCheckBoard is the read-time partition of a group's checks
type ReadyCheckBoard struct {
	Active  []ReadyCheckWithResponses `json:"active"`
	Expired []ReadyCheckWithResponses `json:"expired"`
}
