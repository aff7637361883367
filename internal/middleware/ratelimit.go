package middleware

import (
	"net/http"

	"eventbooking/internal/pkg/response"
	"eventbooking/internal/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RateLimit throttles by client IP and route. A limiter backend failure lets
// the request through and is logged.
func RateLimit(limiter ratelimit.Limiter, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.FullPath() + ":" + c.ClientIP()
		ok, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable")
			c.Next()
			return
		}
		if !ok {
			response.Abort(c, http.StatusTooManyRequests, response.CodeRateLimited, "Too many requests, try again later")
			return
		}
		c.Next()
	}
}
