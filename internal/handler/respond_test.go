package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"squad-be/internal/domain"
	apperrors "squad-be/pkg/errors"
	"squad-be/pkg/logger"
)

func TestRespondDomainError_StatusMapping(t *testing.T) {
	log, err := logger.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   apperrors.ErrorType
	}{
		{
			name:       "invalid transition",
			err:        &domain.InvalidTransitionError{From: domain.StatusDraft, To: domain.StatusActive},
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   apperrors.ErrorTypeInvalidTransition,
		},
		{
			name:       "group not found",
			err:        domain.ErrGroupNotFound,
			wantStatus: http.StatusNotFound,
			wantType:   apperrors.ErrorTypeNotFound,
		},
		{
			name:       "check not found",
			err:        domain.ErrCheckNotFound,
			wantStatus: http.StatusNotFound,
			wantType:   apperrors.ErrorTypeNotFound,
		},
		{
			name:       "not a member",
			err:        domain.ErrNotGroupMember,
			wantStatus: http.StatusForbidden,
			wantType:   apperrors.ErrorTypeAuthorization,
		},
		{
			name:       "status conflict",
			err:        domain.ErrStatusConflict,
			wantStatus: http.StatusConflict,
			wantType:   apperrors.ErrorTypeConflict,
		},
		{
			name:       "duplicate check",
			err:        domain.ErrDuplicateCheck,
			wantStatus: http.StatusConflict,
			wantType:   apperrors.ErrorTypeConflict,
		},
		{
			name:       "wrapped sentinel",
			err:        errors.Join(errors.New("loading failed"), domain.ErrGroupNotFound),
			wantStatus: http.StatusNotFound,
			wantType:   apperrors.ErrorTypeNotFound,
		},
		{
			name:       "unknown error",
			err:        errors.New("pool exhausted"),
			wantStatus: http.StatusInternalServerError,
			wantType:   apperrors.ErrorTypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			respondDomainError(w, r, log, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var response apperrors.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if response.Error.Type != tt.wantType {
				t.Errorf("error type = %s, want %s", response.Error.Type, tt.wantType)
			}
		})
	}
}

func TestRespondDomainError_TransitionDetails(t *testing.T) {
	log, err := logger.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)

	respondDomainError(w, r, log, &domain.InvalidTransitionError{
		From: domain.StatusActive,
		To:   domain.StatusApproved,
	})

	var response apperrors.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Error.Details["from"] != "active" || response.Error.Details["to"] != "approved" {
		t.Errorf("details = %v, want from=active to=approved", response.Error.Details)
	}
}
