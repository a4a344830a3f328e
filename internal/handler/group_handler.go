package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"squad-be/internal/domain"
	"squad-be/internal/service"
	apperrors "squad-be/pkg/errors"
	"squad-be/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// GroupHandler serves the squad lifecycle endpoints
type GroupHandler struct {
	groupService *service.GroupService
	logger       *logger.Logger
}

func NewGroupHandler(groupService *service.GroupService, logger *logger.Logger) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
		logger:       logger,
	}
}

// GetGroup handles GET /api/groups/{groupId}
func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")
	if groupID == "" {
		respondAppError(w, r, apperrors.NewValidationError("Group ID is required", nil))
		return
	}

	group, err := h.groupService.GetGroup(r.Context(), groupID)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, group)
}

// GetTransitions handles GET /api/groups/{groupId}/transitions
func (h *GroupHandler) GetTransitions(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")
	if groupID == "" {
		respondAppError(w, r, apperrors.NewValidationError("Group ID is required", nil))
		return
	}

	transitions, err := h.groupService.GetAvailableTransitions(r.Context(), groupID)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"group_id":              groupID,
		"available_transitions": transitions,
	})
}

// Transition handles POST /api/groups/{groupId}/transition
func (h *GroupHandler) Transition(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")
	if groupID == "" {
		respondAppError(w, r, apperrors.NewValidationError("Group ID is required", nil))
		return
	}

	var req domain.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondAppError(w, r, apperrors.NewValidationError("Invalid request body", nil))
		return
	}
	if req.TargetStatus == "" {
		respondAppError(w, r, apperrors.NewValidationError("target_status is required", nil))
		return
	}

	group, err := h.groupService.AttemptTransition(r.Context(), groupID, req.TargetStatus)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, &domain.TransitionResponse{
		Group:   group,
		Message: fmt.Sprintf("Group is now %s", group.Status.DisplayName()),
	})
}

// GetWarmUpProgress handles GET /api/groups/{groupId}/warmup
func (h *GroupHandler) GetWarmUpProgress(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")
	if groupID == "" {
		respondAppError(w, r, apperrors.NewValidationError("Group ID is required", nil))
		return
	}

	// Optional threshold override, mostly for preview UIs
	minReadyPct := 0
	if raw := r.URL.Query().Get("min_ready_pct"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 || parsed > 100 {
			respondAppError(w, r, apperrors.NewValidationError("min_ready_pct must be an integer between 0 and 100", nil))
			return
		}
		minReadyPct = parsed
	}

	progress, err := h.groupService.GetWarmUpProgress(r.Context(), groupID, minReadyPct)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, progress)
}
