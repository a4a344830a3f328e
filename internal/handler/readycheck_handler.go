package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"squad-be/internal/domain"
	"squad-be/internal/service"
	apperrors "squad-be/pkg/errors"
	"squad-be/pkg/logger"

	"github.com/go-chi/chi/v5"
)

const maxCheckTitleLength = 200

// ReadyCheckHandler serves the ready-check endpoints
type ReadyCheckHandler struct {
	checkService *service.ReadyCheckService
	logger       *logger.Logger
}

func NewReadyCheckHandler(checkService *service.ReadyCheckService, logger *logger.Logger) *ReadyCheckHandler {
	return &ReadyCheckHandler{
		checkService: checkService,
		logger:       logger,
	}
}

// ListChecks handles GET /api/groups/{groupId}/ready-checks
func (h *ReadyCheckHandler) ListChecks(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")
	if groupID == "" {
		respondAppError(w, r, apperrors.NewValidationError("Group ID is required", nil))
		return
	}

	board, err := h.checkService.GetChecks(r.Context(), groupID)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, board)
}

// CreateCheck handles POST /api/groups/{groupId}/ready-checks
func (h *ReadyCheckHandler) CreateCheck(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")
	if groupID == "" {
		respondAppError(w, r, apperrors.NewValidationError("Group ID is required", nil))
		return
	}

	uid := userID(r)
	if uid == "" {
		respondAppError(w, r, apperrors.NewAuthenticationError("Authentication required"))
		return
	}

	var req domain.CreateReadyCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondAppError(w, r, apperrors.NewValidationError("Invalid request body", nil))
		return
	}
	if err := validateCreateCheckRequest(&req); err != nil {
		respondAppError(w, r, err)
		return
	}

	check, err := h.checkService.CreateReadyCheck(r.Context(), groupID, uid, &req)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, check)
}

// Respond handles POST /api/ready-checks/{checkId}/respond
func (h *ReadyCheckHandler) Respond(w http.ResponseWriter, r *http.Request) {
	checkID := chi.URLParam(r, "checkId")
	if checkID == "" {
		respondAppError(w, r, apperrors.NewValidationError("Check ID is required", nil))
		return
	}

	uid := userID(r)
	if uid == "" {
		respondAppError(w, r, apperrors.NewAuthenticationError("Authentication required"))
		return
	}

	var req domain.RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondAppError(w, r, apperrors.NewValidationError("Invalid request body", nil))
		return
	}
	if !req.Response.Valid() {
		respondAppError(w, r, apperrors.NewValidationError("response must be one of: go, maybe, no", map[string]interface{}{
			"response": string(req.Response),
		}))
		return
	}

	if err := h.checkService.Respond(r.Context(), checkID, uid, req.Response); err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"check_id": checkID,
		"response": req.Response,
	})
}

func validateCreateCheckRequest(req *domain.CreateReadyCheckRequest) *apperrors.AppError {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return apperrors.NewValidationError("title is required", nil)
	}
	if len(req.Title) > maxCheckTitleLength {
		return apperrors.NewValidationError("title is too long", map[string]interface{}{
			"max_length": maxCheckTitleLength,
		})
	}
	if req.ExpiresInMinutes != nil && *req.ExpiresInMinutes < 0 {
		return apperrors.NewValidationError("expires_in_minutes must not be negative", nil)
	}
	return nil
}
