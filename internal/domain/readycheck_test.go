package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReadyCheckIsActiveAt(t *testing.T) {
	now := time.Date(2025, 6, 14, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		active    bool
	}{
		{"expires in the future", now.Add(time.Hour), true},
		{"expired in the past", now.Add(-time.Minute), false},
		// The comparator is strict: equality means expired.
		{"expires exactly now", now, false},
		{"one nanosecond left", now.Add(time.Nanosecond), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := &ReadyCheck{ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.active, check.IsActiveAt(now))
		})
	}
}

func TestResponseValueValid(t *testing.T) {
	assert.True(t, ResponseGo.Valid())
	assert.True(t, ResponseMaybe.Valid())
	assert.True(t, ResponseNo.Valid())
	assert.False(t, ResponseValue("").Valid())
	assert.False(t, ResponseValue("yes").Valid())
}

func TestTallyResponses(t *testing.T) {
	tests := []struct {
		name          string
		responses     []ReadyCheckResponse
		totalExpected int
		want          ResponseTally
	}{
		{
			name:          "no responses",
			responses:     nil,
			totalExpected: 4,
			want:          ResponseTally{Go: 0, Maybe: 0, No: 0, Awaiting: 4},
		},
		{
			name: "one of each with one awaiting",
			responses: []ReadyCheckResponse{
				{MemberID: "m1", Response: ResponseGo},
				{MemberID: "m2", Response: ResponseMaybe},
				{MemberID: "m3", Response: ResponseNo},
			},
			totalExpected: 4,
			want:          ResponseTally{Go: 1, Maybe: 1, No: 1, Awaiting: 1},
		},
		{
			name: "everyone answered go",
			responses: []ReadyCheckResponse{
				{MemberID: "m1", Response: ResponseGo},
				{MemberID: "m2", Response: ResponseGo},
			},
			totalExpected: 2,
			want:          ResponseTally{Go: 2, Maybe: 0, No: 0, Awaiting: 0},
		},
		{
			name: "late responders from dropped members never push awaiting negative",
			responses: []ReadyCheckResponse{
				{MemberID: "m1", Response: ResponseGo},
				{MemberID: "m2", Response: ResponseGo},
				{MemberID: "m3", Response: ResponseNo},
			},
			totalExpected: 2,
			want:          ResponseTally{Go: 2, Maybe: 0, No: 1, Awaiting: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TallyResponses(tt.responses, tt.totalExpected))
		})
	}
}

func TestResponseOf(t *testing.T) {
	responses := []ReadyCheckResponse{
		{MemberID: "m1", Response: ResponseGo},
		{MemberID: "m2", Response: ResponseMaybe},
	}

	value, ok := ResponseOf(responses, "m2")
	assert.True(t, ok)
	assert.Equal(t, ResponseMaybe, value)

	_, ok = ResponseOf(responses, "m3")
	assert.False(t, ok)
}
