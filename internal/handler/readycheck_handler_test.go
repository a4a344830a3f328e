package handler

import (
	"strings"
	"testing"

	"squad-be/internal/domain"
)

func TestValidateCreateCheckRequest(t *testing.T) {
	minutes := func(v int) *int { return &v }

	tests := []struct {
		name    string
		req     *domain.CreateReadyCheckRequest
		wantErr bool
	}{
		{
			name: "valid request",
			req: &domain.CreateReadyCheckRequest{
				Title: "Everyone set for Saturday?",
			},
			wantErr: false,
		},
		{
			name: "valid request with explicit expiry",
			req: &domain.CreateReadyCheckRequest{
				Title:            "Quick pulse",
				ExpiresInMinutes: minutes(15),
			},
			wantErr: false,
		},
		{
			name: "zero expiry is allowed",
			req: &domain.CreateReadyCheckRequest{
				Title:            "Retro poll",
				ExpiresInMinutes: minutes(0),
			},
			wantErr: false,
		},
		{
			name: "empty title",
			req: &domain.CreateReadyCheckRequest{
				Title: "",
			},
			wantErr: true,
		},
		{
			name: "whitespace-only title",
			req: &domain.CreateReadyCheckRequest{
				Title: "   ",
			},
			wantErr: true,
		},
		{
			name: "title too long",
			req: &domain.CreateReadyCheckRequest{
				Title: strings.Repeat("a", maxCheckTitleLength+1),
			},
			wantErr: true,
		},
		{
			name: "title exactly at limit",
			req: &domain.CreateReadyCheckRequest{
				Title: strings.Repeat("a", maxCheckTitleLength),
			},
			wantErr: false,
		},
		{
			name: "negative expiry",
			req: &domain.CreateReadyCheckRequest{
				Title:            "Tonight?",
				ExpiresInMinutes: minutes(-5),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCreateCheckRequest(tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateCreateCheckRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCreateCheckRequest_TrimsTitle(t *testing.T) {
	req := &domain.CreateReadyCheckRequest{Title: "  Kickoff at 6?  "}

	if err := validateCreateCheckRequest(req); err != nil {
		t.Fatalf("validateCreateCheckRequest() unexpected error: %v", err)
	}
	if req.Title != "Kickoff at 6?" {
		t.Errorf("title not trimmed, got %q", req.Title)
	}
}
