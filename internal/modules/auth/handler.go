package auth

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"eventbooking/internal/middleware"
	"eventbooking/internal/pkg/response"
	"eventbooking/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

// CookieConfig describes the session cookie. Its lifetime is always taken
// from the token it carries.
type CookieConfig struct {
	Name     string
	Path     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

func ParseSameSite(v string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "none":
		return http.SameSiteNoneMode
	case "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteLaxMode
	}
}

// Handler manages all HTTP interactions for users and sessions
type Handler struct {
	service *Service
	cookie  CookieConfig
}

func NewHandler(service *Service, cookie CookieConfig) *Handler {
	return &Handler{service: service, cookie: cookie}
}

// RegisterRoutes mounts /users. auth guards session-only routes, limit
// throttles the credential endpoints.
func (h *Handler) RegisterRoutes(r gin.IRouter, auth, limit gin.HandlerFunc) {
	users := r.Group("/users")
	{
		users.POST("/login", limit, h.Login)
		users.POST("/logout", h.Logout)
		users.POST("/forgot-password", limit, h.ForgotPassword)
		users.POST("/reset-password", limit, h.ResetPassword)

		users.GET("/current-user", auth, h.CurrentUser)
		users.PUT("/update/:id", auth, h.UpdateUser)
		users.DELETE("/delete/:id", auth, h.DeleteUser)

		users.POST("/create", auth, middleware.AdminOnly(), h.CreateUser)
		users.GET("/", auth, middleware.AdminOnly(), h.ListUsers)
	}
}

// Login authenticates by email and password and sets the session cookie.
// @Summary		Log in
// @Tags		Users
// @Param		request	body	LoginRequest	true	"Credentials"
// @Success		200	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{} "Validation error"
// @Failure		401	{object}	map[string]interface{} "Email or password is incorrect"
// @Failure		429	{object}	map[string]interface{} "Too many attempts"
// @Router		/users/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !validator.BindJSON(c, &req) {
		return
	}

	user, sess, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.setSessionCookie(c, sess)
	response.Success(c, http.StatusOK, gin.H{
		"message":    "Logged in",
		"user":       user,
		"expires_at": sess.Claims.ExpiresAt.Time,
	})
}

// Logout clears the cookie and revokes the token if one was sent.
// @Summary		Log out
// @Tags		Users
// @Success		200	{object}	map[string]interface{}
// @Router		/users/logout [POST]
func (h *Handler) Logout(c *gin.Context) {
	token := middleware.TokenFromRequest(c, h.cookie.Name)
	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		response.Internal(c, err, "Failed to log out")
		return
	}

	h.clearSessionCookie(c)
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// CurrentUser returns the identity carried by the verified session token.
// @Summary		Current user
// @Tags		Users
// @Success		200	{object}	SessionUser
// @Failure		401	{object}	map[string]interface{} "Missing, invalid or expired session"
// @Router		/users/current-user [GET]
func (h *Handler) CurrentUser(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication required")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": ToSessionUser(claims)})
}

// CreateUser is admin only.
// @Summary		Create user
// @Tags		Users
// @Param		request	body	CreateUserRequest	true	"New user"
// @Success		201	{object}	map[string]interface{}
// @Failure		403	{object}	map[string]interface{} "Admin role required"
// @Failure		409	{object}	map[string]interface{} "Email already registered"
// @Router		/users/create [POST]
func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !validator.BindJSON(c, &req) {
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": user})
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		response.Internal(c, err, "Failed to load users")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// UpdateUser
// @Summary		Update user
// @Tags		Users
// @Param		id		path	int					true	"User ID"
// @Param		request	body	UpdateUserRequest	true	"Fields"
// @Success		200	{object}	map[string]interface{}
// @Failure		403	{object}	map[string]interface{} "Not your account"
// @Failure		404	{object}	map[string]interface{} "User not found"
// @Router		/users/update/{id} [PUT]
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if !validator.BindJSON(c, &req) {
		return
	}
	claims, _ := middleware.ClaimsFrom(c)

	user, sess, err := h.service.UpdateUser(c.Request.Context(), claims, id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if sess != nil {
		h.setSessionCookie(c, sess)
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	claims, _ := middleware.ClaimsFrom(c)

	if err := h.service.DeleteUser(c.Request.Context(), claims, id); err != nil {
		h.writeError(c, err)
		return
	}

	if claims.UserID == id {
		h.clearSessionCookie(c)
	}
	response.Success(c, http.StatusOK, gin.H{"message": "User deleted"})
}

// ForgotPassword answers the same way whether or not the email is registered.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if !validator.BindJSON(c, &req) {
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		response.Internal(c, err, "Failed to start password reset")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message": "If the email is registered, reset instructions have been sent",
	})
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if !validator.BindJSON(c, &req) {
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Password updated"})
}

func (h *Handler) setSessionCookie(c *gin.Context, sess *Session) {
	expires := sess.Claims.ExpiresAt.Time
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    sess.Token,
		Path:     h.cookie.Path,
		Domain:   h.cookie.Domain,
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Round(time.Second).Seconds()),
		Secure:   h.cookie.Secure,
		HttpOnly: true,
		SameSite: h.cookie.SameSite,
	})
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     h.cookie.Path,
		Domain:   h.cookie.Domain,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   h.cookie.Secure,
		HttpOnly: true,
		SameSite: h.cookie.SameSite,
	})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, response.CodeInvalidCredentials, "Email or password is incorrect")
	case errors.Is(err, ErrInvalidResetToken):
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Reset token is invalid or expired")
	case errors.Is(err, ErrUnauthorized):
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication required")
	case errors.Is(err, ErrEmailAlreadyExists):
		response.Error(c, http.StatusConflict, response.CodeEmailExists, "This email is already registered")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, response.CodeForbidden, "You may only change your own account")
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "User not found")
	default:
		response.Internal(c, err, "Request failed")
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid user id")
		return 0, false
	}
	return id, true
}
