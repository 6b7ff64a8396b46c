// Package session keeps the logged-in user in a signed cookie. A session id
// stored alongside the user id lets logout revoke the cookie server-side when
// a revocation store is configured.
package session

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"filmdesk/internal/utils"
)

// CookieName is the name of the session cookie.
const CookieName = "filmdesk-session"

// DefaultMaxAge is how long a login lasts.
const DefaultMaxAge = 7 * 24 * time.Hour

const (
	keyUserID    = "user_id"
	keySessionID = "session_id"
	keyIssuedAt  = "issued_at"
)

var (
	ErrNoSession = errors.New("no active session")
	ErrRevoked   = errors.New("session has been revoked")
)

// Revoker is a server-side blacklist of session ids.
type Revoker interface {
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
}

// Identity is the authenticated caller.
type Identity struct {
	UserID    uuid.UUID
	SessionID string
}

type Manager struct {
	store   *sessions.CookieStore
	revoker Revoker
	maxAge  time.Duration
}

// NewManager derives the cookie signing key from secret. revoker may be nil.
func NewManager(secret string, secure bool, revoker Revoker) *Manager {
	key := sha256.Sum256([]byte(secret))

	store := sessions.NewCookieStore(key[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(DefaultMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{store: store, revoker: revoker, maxAge: DefaultMaxAge}
}

// Login starts a new session for userID.
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, userID uuid.UUID) error {
	sess, err := m.store.New(r, CookieName)
	if err != nil && sess == nil {
		return fmt.Errorf("create session: %w", err)
	}

	sessionID, err := utils.RandomToken(16)
	if err != nil {
		return fmt.Errorf("generate session id: %w", err)
	}

	sess.Values[keyUserID] = userID.String()
	sess.Values[keySessionID] = sessionID
	sess.Values[keyIssuedAt] = time.Now().Unix()
	return sess.Save(r, w)
}

// Identify resolves the request's session. It returns ErrNoSession for a
// missing, tampered or expired cookie and ErrRevoked after logout.
func (m *Manager) Identify(r *http.Request) (*Identity, error) {
	sess, err := m.store.Get(r, CookieName)
	if err != nil || sess.IsNew {
		return nil, ErrNoSession
	}

	rawUserID, _ := sess.Values[keyUserID].(string)
	sessionID, _ := sess.Values[keySessionID].(string)
	userID, err := uuid.Parse(rawUserID)
	if err != nil || sessionID == "" {
		return nil, ErrNoSession
	}

	if m.revoker != nil {
		revoked, err := m.revoker.IsRevoked(r.Context(), sessionID)
		if err != nil {
			return nil, fmt.Errorf("check session revocation: %w", err)
		}
		if revoked {
			return nil, ErrRevoked
		}
	}

	return &Identity{UserID: userID, SessionID: sessionID}, nil
}

// Logout expires the cookie and revokes the session id for the rest of its
// lifetime.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, CookieName)

	if m.revoker != nil && !sess.IsNew {
		if sessionID, _ := sess.Values[keySessionID].(string); sessionID != "" {
			if err := m.revoker.Revoke(r.Context(), sessionID, m.remaining(sess)); err != nil {
				return fmt.Errorf("revoke session: %w", err)
			}
		}
	}

	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

func (m *Manager) remaining(sess *sessions.Session) time.Duration {
	issuedAt, ok := sess.Values[keyIssuedAt].(int64)
	if !ok {
		return m.maxAge
	}
	return time.Until(time.Unix(issuedAt, 0).Add(m.maxAge))
}
