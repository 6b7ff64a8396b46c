package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidInput      = errors.New("invalid input")
	ErrConflict          = errors.New("conflict")
	ErrNotConfigured     = errors.New("not configured")
	ErrUpstreamBlocked   = errors.New("upstream blocked")
	ErrUpstreamMalformed = errors.New("upstream malformed")
)

// Error carries a kind sentinel, a client-facing message and optional detail
// fields that are rendered next to the message in the response envelope.
type Error struct {
	Kind    error
	Message string
	Detail  map[string]any
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

// Is reports whether target is the kind of this error, so callers can use
// errors.Is(err, apperrors.ErrNotFound) on wrapped values.
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithDetail returns a copy of e carrying an extra detail field.
func (e *Error) WithDetail(key string, value any) *Error {
	detail := make(map[string]any, len(e.Detail)+1)
	for k, v := range e.Detail {
		detail[k] = v
	}
	detail[key] = value
	return &Error{Kind: e.Kind, Message: e.Message, Detail: detail}
}

func NotFound(message string) *Error     { return New(ErrNotFound, message) }
func Forbidden(message string) *Error    { return New(ErrForbidden, message) }
func InvalidInput(message string) *Error { return New(ErrInvalidInput, message) }
func Conflict(message string) *Error     { return New(ErrConflict, message) }
func NotConfigured(message string) *Error {
	return New(ErrNotConfigured, message)
}

// DetailOf returns the detail map of the first *Error in err's chain.
func DetailOf(err error) map[string]any {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Detail
	}
	return nil
}

// MessageOf returns the client-facing message of the first *Error in err's
// chain, falling back to err.Error().
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Error()
	}
	return err.Error()
}
