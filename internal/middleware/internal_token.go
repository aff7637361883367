package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"eventbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// InternalTokenAuth protects operational endpoints such as /metrics with a
// static bearer token and an optional client IP allowlist. An empty token
// leaves the endpoint open.
func InternalTokenAuth(token string, allowedIPs []string, log zerolog.Logger) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedIPs))
	for _, ip := range allowedIPs {
		allowed[strings.TrimSpace(ip)] = struct{}{}
	}

	return func(c *gin.Context) {
		if len(allowed) > 0 {
			if _, ok := allowed[c.ClientIP()]; !ok {
				logAuthFailure(log, c, http.StatusForbidden, "ip_not_allowed")
				response.Abort(c, http.StatusForbidden, response.CodeForbidden, "IP not allowed")
				return
			}
		}

		if token == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			logAuthFailure(log, c, http.StatusUnauthorized, "missing_auth")
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authorization header must be 'Bearer <token>'")
			return
		}

		if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(parts[1])), []byte(token)) != 1 {
			logAuthFailure(log, c, http.StatusForbidden, "invalid_token")
			response.Abort(c, http.StatusForbidden, response.CodeForbidden, "Invalid internal token")
			return
		}

		c.Next()
	}
}

func logAuthFailure(log zerolog.Logger, c *gin.Context, status int, reason string) {
	log.Warn().
		Str("request_id", c.GetString("request_id")).
		Str("path", c.Request.URL.Path).
		Int("status", status).
		Str("reason", reason).
		Msg("internal endpoint auth failed")
}
