package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"filmdesk/internal/responses"
	"filmdesk/internal/services"
	"filmdesk/internal/session"
)

type AuthHandler struct {
	authService *services.AuthService
	sessions    *session.Manager
	logger      *zap.Logger
}

func NewAuthHandler(authService *services.AuthService, sessions *session.Manager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, logger: logger}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Please provide your email and password correctly")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		fail(c, err, "Could not register user")
		return
	}

	message := "Your account has been created! You are now able to log in"
	if !user.Confirmed {
		message = "A confirmation email has been sent to your address"
	}
	responses.Success(c, http.StatusCreated, user, message)
}

// Confirm handles GET /api/v1/auth/confirm/:token
func (h *AuthHandler) Confirm(c *gin.Context) {
	user, err := h.authService.Confirm(c.Request.Context(), c.Param("token"))
	if err != nil {
		fail(c, err, "Could not confirm account")
		return
	}
	responses.Success(c, http.StatusOK, user, "Your account has been confirmed")
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid Format")
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		fail(c, err, "Failed to login")
		return
	}

	if err := h.sessions.Login(c.Writer, c.Request, user.ID); err != nil {
		fail(c, err, "Failed to start session")
		return
	}

	responses.Success(c, http.StatusOK, user, "User Login Successfully!")
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Writer, c.Request); err != nil {
		h.logger.Warn("Failed to revoke session", zap.Error(err))
	}
	responses.Success(c, http.StatusOK, nil, "Logged out successfully")
}
