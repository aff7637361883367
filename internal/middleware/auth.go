package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"eventbooking/internal/pkg/jwt"
	"eventbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

// SessionVerifier turns a raw session token into verified claims.
type SessionVerifier interface {
	CurrentUser(ctx context.Context, token string) (*jwt.Claims, error)
}

// SessionAuth requires a valid session token, taken from the session cookie
// or an Authorization: Bearer header. Verified claims are stored on the
// request context for handlers and the role guard.
func SessionAuth(verifier SessionVerifier, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c, cookieName)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "No session token provided")
			return
		}

		claims, err := verifier.CurrentUser(c.Request.Context(), token)
		if err != nil {
			msg := "Invalid session token"
			if errors.Is(err, jwt.ErrExpiredToken) {
				msg = "Session expired"
			}
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, msg)
			return
		}

		SetClaims(c, claims)
		c.Next()
	}
}

// TokenFromRequest prefers the cookie and falls back to a bearer header.
func TokenFromRequest(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func SetClaims(c *gin.Context, claims *jwt.Claims) {
	c.Set(claimsKey, claims)
	c.Set("user_id", claims.UserID)
	c.Set("role", claims.Role)
}

func ClaimsFrom(c *gin.Context) (*jwt.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok && claims != nil
}
