package handler

import (
	"context"
	"net/http"
	"time"

	"squad-be/internal/container"
	"squad-be/pkg/database"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	container *container.Container
	db        *database.PostgresDB
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(container *container.Container, db *database.PostgresDB) *HealthHandler {
	return &HealthHandler{
		container: container,
		db:        db,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Service   string            `json:"service"`
	Checks    map[string]string `json:"checks"`
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   "squad-be",
		Checks:    map[string]string{},
	}

	if h.db != nil {
		if err := h.db.Health(ctx); err != nil {
			logger.WithError(err).Error("Database health check failed")
			response.Status = "degraded"
			response.Checks["database"] = "unhealthy"
			status = http.StatusServiceUnavailable
		} else {
			response.Checks["database"] = "healthy"
		}
	}

	if h.container.HasRedis() {
		if err := h.container.GetRedisClient().Health(ctx); err != nil {
			logger.WithError(err).Warn("Redis health check failed")
			// Cache loss degrades performance, not availability
			response.Checks["redis"] = "unhealthy"
		} else {
			response.Checks["redis"] = "healthy"
		}
	}

	respondJSON(w, status, response)
}
