package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"filmdesk/internal/responses"
	"filmdesk/internal/services"
	"filmdesk/internal/session"
	"filmdesk/internal/utils"
)

const oauthStateCookie = "oauth_state"

type GoogleAuthHandler struct {
	googleAuthService *services.GoogleAuthService
	googleOauthConfig *oauth2.Config
	sessions          *session.Manager
	secureCookies     bool
}

func NewGoogleAuthHandler(googleAuthService *services.GoogleAuthService, oauthConfig *oauth2.Config, sessions *session.Manager, secureCookies bool) *GoogleAuthHandler {
	return &GoogleAuthHandler{
		googleAuthService: googleAuthService,
		googleOauthConfig: oauthConfig,
		sessions:          sessions,
		secureCookies:     secureCookies,
	}
}

// Login handles GET /api/v1/auth/google/login
func (h *GoogleAuthHandler) Login(c *gin.Context) {
	oauthState, err := utils.GenerateStateOauthCookie()
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to generate state")
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, oauthState, 600, "/", "", h.secureCookies, true)

	c.Redirect(http.StatusTemporaryRedirect, h.googleOauthConfig.AuthCodeURL(oauthState))
}

// Callback handles GET /api/v1/auth/google/callback
func (h *GoogleAuthHandler) Callback(c *gin.Context) {
	queryState := c.Query("state")
	if queryState == "" {
		responses.Fail(c, http.StatusBadRequest, nil, "Missing state parameter")
		return
	}

	cookieState, err := c.Cookie(oauthStateCookie)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Missing state cookie")
		return
	}
	if queryState != cookieState {
		responses.Fail(c, http.StatusForbidden, nil, "State mismatch - possible CSRF attack")
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.secureCookies, true)

	code := c.Query("code")
	if code == "" {
		responses.Fail(c, http.StatusBadRequest, nil, "Missing code")
		return
	}

	token, err := h.googleOauthConfig.Exchange(c.Request.Context(), code)
	if err != nil {
		responses.Fail(c, http.StatusBadGateway, err, "Token exchange failed")
		return
	}

	user, err := h.googleAuthService.Callback(c.Request.Context(), token)
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
