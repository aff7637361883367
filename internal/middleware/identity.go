package middleware

import (
	"net/http"
	"strconv"

	"eventbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// SubjectUserID resolves whose data a request acts on. The verified caller
// is the default. A client supplied id (userId query or a body field) is
// accepted only when it names the caller, or when the caller is an admin.
// On failure the response has already been written.
func SubjectUserID(c *gin.Context, requested string) (int64, bool) {
	claims, ok := ClaimsFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication required")
		return 0, false
	}
	if requested == "" {
		return claims.UserID, true
	}

	id, err := strconv.ParseInt(requested, 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "userId must be a positive integer")
		return 0, false
	}
	if id != claims.UserID && claims.Role != "admin" {
		response.Error(c, http.StatusForbidden, response.CodeForbidden, "You may only access your own data")
		return 0, false
	}
	return id, true
}
