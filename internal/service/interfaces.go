package service

import (
	"context"

	"squad-be/internal/domain"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	// ValidateToken validates a bearer token and returns the user profile
	ValidateToken(ctx context.Context, token string) (*domain.UserProfile, error)
}

// Services aggregates all service interfaces
type Services struct {
	Auth AuthService
}
