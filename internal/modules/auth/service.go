package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eventbooking/internal/domain"
	"eventbooking/internal/pkg/jwt"
	"eventbooking/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	users      UserRepository
	tokens     TokenService
	sessions   SessionStore
	notifier   ResetNotifier
	bcryptCost int
	// dummyHash is compared against when the email is unknown so login
	// timing does not reveal which emails are registered.
	dummyHash []byte
}

func NewService(users UserRepository, tokens TokenService, sessions SessionStore, notifier ResetNotifier, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("dummy-password"), bcryptCost)
	return &Service{
		users:      users,
		tokens:     tokens,
		sessions:   sessions,
		notifier:   notifier,
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
	}
}

// Login checks the credentials and issues a session token. Unknown email and
// wrong password fail with the same error.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, *Session, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	sess, err := s.issueSession(user)
	if err != nil {
		return nil, nil, err
	}
	return user, sess, nil
}

// CurrentUser verifies a session token and returns its claims. Missing,
// malformed, expired and revoked tokens all wrap ErrUnauthorized, as do
// tokens whose user has since been deleted.
func (s *Service) CurrentUser(ctx context.Context, token string) (*jwt.Claims, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	revoked, err := s.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: check revocation: %w", ErrUnauthorized, err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, ErrSessionRevoked)
	}

	if _, err := s.users.GetByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrUnauthorized, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%w: load user: %w", ErrUnauthorized, err)
	}
	return claims, nil
}

// Logout revokes the token until it would have expired anyway. Tokens that
// no longer verify need no revocation.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil
	}
	return s.revoke(ctx, claims)
}

func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		Role:         domain.UserRole(req.Role),
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// UpdateUser changes name, email and role. Users may edit themselves; only
// admins edit others or change roles. A self-update returns a new session
// carrying the updated claims and revokes the caller's old token.
func (s *Service) UpdateUser(ctx context.Context, caller *jwt.Claims, id int64, req UpdateUserRequest) (*domain.User, *Session, error) {
	isAdmin := caller.Role == string(domain.RoleAdmin)
	if caller.UserID != id && !isAdmin {
		return nil, nil, ErrForbidden
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("load user: %w", err)
	}

	if req.Role != "" && req.Role != string(user.Role) {
		if !isAdmin {
			return nil, nil, ErrForbidden
		}
		user.Role = domain.UserRole(req.Role)
	}

	if !strings.EqualFold(strings.TrimSpace(req.Email), user.Email) {
		exists, err := s.users.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return nil, nil, fmt.Errorf("check email: %w", err)
		}
		if exists {
			return nil, nil, ErrEmailAlreadyExists
		}
	}
	user.Name = strings.TrimSpace(req.Name)
	user.Email = req.Email

	if err := s.users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyExists):
			return nil, nil, ErrEmailAlreadyExists
		case errors.Is(err, repository.ErrNotFound):
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("update user: %w", err)
	}

	if caller.UserID != id {
		return user, nil, nil
	}

	sess, err := s.issueSession(user)
	if err != nil {
		return nil, nil, err
	}
	if err := s.revoke(ctx, caller); err != nil {
		return nil, nil, err
	}
	return user, sess, nil
}

// DeleteUser removes a user; their bookings and favorites stay with a null owner.
func (s *Service) DeleteUser(ctx context.Context, caller *jwt.Claims, id int64) error {
	if caller.UserID != id && caller.Role != string(domain.RoleAdmin) {
		return ErrForbidden
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}

	if caller.UserID == id {
		return s.revoke(ctx, caller)
	}
	return nil
}

// ForgotPassword sends a reset token when the email is registered and
// silently succeeds otherwise.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("load user: %w", err)
	}

	token, err := s.tokens.GenerateResetToken(user.Email)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	return s.notifier.SendPasswordReset(ctx, user.Email, token)
}

// ResetPassword sets a new password. A reset token is spent on first use.
func (s *Service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	claims, err := s.tokens.ValidateResetToken(req.Token)
	if err != nil {
		return ErrInvalidResetToken
	}

	used, err := s.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		return fmt.Errorf("check reset token: %w", err)
	}
	if used {
		return ErrInvalidResetToken
	}

	user, err := s.users.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("load user: %w", err)
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return s.revoke(ctx, claims)
}

func (s *Service) issueSession(user *domain.User) (*Session, error) {
	token, claims, err := s.tokens.GenerateToken(jwt.Identity{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &Session{Token: token, Claims: claims}, nil
}

func (s *Service) revoke(ctx context.Context, claims *jwt.Claims) error {
	if claims.ExpiresAt == nil {
		return nil
	}
	if err := s.sessions.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *Service) hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}
