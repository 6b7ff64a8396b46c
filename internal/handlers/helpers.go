package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"filmdesk/internal/apperrors"
	"filmdesk/internal/middlewares"
	"filmdesk/internal/responses"
)

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the error envelope for err. Server-side failures are attached
// to the context so the request logger reports them.
func fail(c *gin.Context, err error, message string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	responses.FailWithDetail(c, status, err, message, apperrors.DetailOf(err))
}

// currentUser reads the caller set by the auth middleware and answers 401
// when it is missing.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middlewares.CurrentUser(c)
	if !ok {
		responses.Fail(c, http.StatusUnauthorized, nil, "Unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses a UUID path parameter. A malformed id cannot name an
// existing row, so it answers 404.
func pathID(c *gin.Context, name, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		responses.Fail(c, http.StatusNotFound, nil, what+" not found")
		return uuid.Nil, false
	}
	return id, true
}

// scope resolves the caller and one path id, the prologue of every
// resource handler.
func scope(c *gin.Context, param, what string) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := currentUser(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	id, ok := pathID(c, param, what)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}
