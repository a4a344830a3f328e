package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"squad-be/internal/domain"
	"squad-be/internal/middleware"
	apperrors "squad-be/pkg/errors"
	"squad-be/pkg/logger"
)

// respondJSON writes data as a JSON response with the given status
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondAppError writes a structured error response
func respondAppError(w http.ResponseWriter, r *http.Request, appErr *apperrors.AppError) {
	response := &apperrors.ErrorResponse{}
	response.Error.Type = appErr.Type
	response.Error.Message = appErr.Message
	response.Error.Details = appErr.Details
	response.Error.Timestamp = time.Now().UTC().Format(time.RFC3339)

	if requestID, ok := r.Context().Value(middleware.RequestIDContextKey).(string); ok {
		response.Error.RequestID = requestID
	}

	respondJSON(w, appErr.StatusCode, response)
}

// respondDomainError maps service-layer errors to HTTP error responses.
// Invalid transitions carry the rejected pair in details so clients can
// render "not allowed from this state" without re-fetching the group.
func respondDomainError(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	var invalidErr *domain.InvalidTransitionError
	switch {
	case errors.As(err, &invalidErr):
		respondAppError(w, r, apperrors.NewInvalidTransitionError(invalidErr.Error(), map[string]interface{}{
			"from": string(invalidErr.From),
			"to":   string(invalidErr.To),
		}))
	case errors.Is(err, domain.ErrGroupNotFound):
		respondAppError(w, r, apperrors.NewNotFoundError("Group not found"))
	case errors.Is(err, domain.ErrCheckNotFound):
		respondAppError(w, r, apperrors.NewNotFoundError("Ready check not found"))
	case errors.Is(err, domain.ErrNotGroupMember):
		respondAppError(w, r, apperrors.NewAuthorizationError("You are not an active member of this group"))
	case errors.Is(err, domain.ErrStatusConflict):
		respondAppError(w, r, apperrors.NewConflictError("Group status changed concurrently, re-read and retry"))
	case errors.Is(err, domain.ErrDuplicateCheck):
		respondAppError(w, r, apperrors.NewConflictError("An identical ready check was just created"))
	default:
		log.WithError(err).Error("Unhandled service error")
		respondAppError(w, r, apperrors.NewInternalError("Internal server error", err))
	}
}

// userID extracts the authenticated user's ID from the request context
func userID(r *http.Request) string {
	if user, ok := r.Context().Value(middleware.UserContextKey).(*domain.UserProfile); ok && user != nil {
		return user.Sub
	}
	return ""
}
