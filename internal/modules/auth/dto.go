package auth

import (
	"time"

	"eventbooking/internal/pkg/jwt"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required"`
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,trimmed_len"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Role     string `json:"role" binding:"required,oneof=admin user"`
	Password string `json:"password" binding:"required,min=8,max=72,has_upper"`
}

type UpdateUserRequest struct {
	Name  string `json:"name" binding:"required,trimmed_len"`
	Email string `json:"email" binding:"required,email,max=255"`
	Role  string `json:"role" binding:"omitempty,oneof=admin user"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8,max=72,has_upper"`
}

// Session is a freshly issued session token with its claims.
type Session struct {
	Token  string
	Claims *jwt.Claims
}

// SessionUser is what current-user returns: the identity in the verified token.
type SessionUser struct {
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

func ToSessionUser(c *jwt.Claims) SessionUser {
	out := SessionUser{
		UserID: c.UserID,
		Name:   c.Name,
		Email:  c.Email,
		Role:   c.Role,
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out
}
