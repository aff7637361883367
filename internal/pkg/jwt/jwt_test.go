package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(ttl time.Duration) *Service {
	return New("test-secret", "eventbooking", ttl, 15*time.Minute)
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newService(time.Hour)

	token, issued, err := svc.GenerateToken(Identity{UserID: 7, Name: "Ann", Email: "a@x.com", Role: "user"})
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), issued.ExpiresAt.Time, 2*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "Ann", claims.Name)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, issued.ID, claims.ID)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newService(-time.Minute)

	token, _, err := svc.GenerateToken(Identity{UserID: 1, Role: "user"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, _, err := newService(time.Hour).GenerateToken(Identity{UserID: 1, Role: "user"})
	require.NoError(t, err)

	other := New("another-secret", "eventbooking", time.Hour, time.Minute)
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Malformed(t *testing.T) {
	svc := newService(time.Hour)
	for _, tok := range []string{"", "abc", "a.b.c"} {
		_, err := svc.ValidateToken(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, tok)
	}
}

func TestValidateToken_RejectsNoneAlgorithm(t *testing.T) {
	svc := newService(time.Hour)
	claims := &Claims{
		UserID:  1,
		Role:    "admin",
		Purpose: PurposeSession,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    "eventbooking",
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, claims).SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResetToken_RoundTrip(t *testing.T) {
	svc := newService(time.Hour)

	token, err := svc.GenerateResetToken("a@x.com")
	require.NoError(t, err)

	claims, err := svc.ValidateResetToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
	require.NotNil(t, claims.ExpiresAt)
}

func TestTokenPurposesDoNotMix(t *testing.T) {
	svc := newService(time.Hour)

	reset, err := svc.GenerateResetToken("a@x.com")
	require.NoError(t, err)
	_, err = svc.ValidateToken(reset)
	assert.ErrorIs(t, err, ErrInvalidToken)

	session, _, err := svc.GenerateToken(Identity{UserID: 1, Email: "a@x.com", Role: "user"})
	require.NoError(t, err)
	_, err = svc.ValidateResetToken(session)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
