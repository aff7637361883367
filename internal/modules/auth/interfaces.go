package auth

import (
	"context"
	"time"

	"eventbooking/internal/domain"
	"eventbooking/internal/pkg/jwt"
)

// UserRepository is the slice of user storage the auth service needs.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
}

type TokenService interface {
	GenerateToken(id jwt.Identity) (string, *jwt.Claims, error)
	ValidateToken(token string) (*jwt.Claims, error)
	GenerateResetToken(email string) (string, error)
	ValidateResetToken(token string) (*jwt.Claims, error)
}

// SessionStore remembers revoked token ids, both sessions and spent reset tokens.
type SessionStore interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// ResetNotifier delivers password reset tokens to their owner.
type ResetNotifier interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}
