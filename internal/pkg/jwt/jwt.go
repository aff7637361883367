package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	PurposeSession       = "session"
	PurposePasswordReset = "password_reset"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

type Service struct {
	secret   []byte
	issuer   string
	ttl      time.Duration
	resetTTL time.Duration
}

// Claims carried by session and reset tokens. Reset tokens only fill Email.
type Claims struct {
	UserID  int64  `json:"user_id,omitempty"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email"`
	Role    string `json:"role,omitempty"`
	Purpose string `json:"purpose"`
	jwtlib.RegisteredClaims
}

// Identity is the subject a session token is issued for.
type Identity struct {
	UserID int64
	Name   string
	Email  string
	Role   string
}

func New(secret, issuer string, ttl, resetTTL time.Duration) *Service {
	return &Service{
		secret:   []byte(secret),
		issuer:   issuer,
		ttl:      ttl,
		resetTTL: resetTTL,
	}
}

func (s *Service) TTL() time.Duration {
	return s.ttl
}

// GenerateToken signs a session token. The returned claims carry the jti and
// expiry so callers can align cookies and revocation with them.
func (s *Service) GenerateToken(id Identity) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		UserID:  id.UserID,
		Name:    id.Name,
		Email:   id.Email,
		Role:    id.Role,
		Purpose: PurposeSession,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}

	signed, err := s.sign(claims)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

func (s *Service) GenerateResetToken(email string) (string, error) {
	now := time.Now()
	return s.sign(&Claims{
		Email:   email,
		Purpose: PurposePasswordReset,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.resetTTL)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	})
}

// ValidateToken verifies a session token.
func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	claims, err := s.parse(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != PurposeSession || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateResetToken verifies a password reset token. The claims carry the
// email it was issued for and the jti used to spend it once.
func (s *Service) ValidateResetToken(tokenStr string) (*Claims, error) {
	claims, err := s.parse(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != PurposePasswordReset || claims.Email == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *Service) sign(claims *Claims) (string, error) {
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) parse(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrInvalidToken
	}

	keyFunc := func(t *jwtlib.Token) (any, error) {
		return s.secret, nil
	}
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, keyFunc,
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithIssuer(s.issuer),
	)
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
