package accounts

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. The salt and hash never leave the server.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Salt         string    `json:"-"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateAccountRequest is the payload for account creation
type CreateAccountRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the payload for credential verification
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdatePasswordRequest is the payload for a password change
type UpdatePasswordRequest struct {
	Username    string `json:"username" binding:"required"`
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// LoginResponse carries the session token issued on successful login
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}
