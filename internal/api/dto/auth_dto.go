package dto

import (
	"time"

	"github.com/Moussassoss/citizens-complaints/internal/domain"
)

// LoginRequest payload for staff login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
	Admin     domain.AdminPublic `json:"admin"`
}
