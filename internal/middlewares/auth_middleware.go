package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"filmdesk/internal/responses"
	"filmdesk/internal/session"
)

const (
	UserIDKey    = "userId"
	SessionIDKey = "sessionId"
)

// Authenticate resolves the session cookie into the caller's user id and
// stores it on the context under UserIDKey.
func Authenticate(sessions *session.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := sessions.Identify(c.Request)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) && !errors.Is(err, session.ErrRevoked) {
				logger.Debug("Rejected session", zap.Error(err))
			}
			responses.Fail(c, http.StatusUnauthorized, nil, "Please log in to access this page")
			c.Abort()
			return
		}

		c.Set(UserIDKey, identity.UserID)
		c.Set(SessionIDKey, identity.SessionID)
		c.Next()
	}
}

// CurrentUser returns the id stored by Authenticate.
func CurrentUser(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}
