package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRevoker struct {
	revoked map[string]time.Duration
}

func (m *memoryRevoker) IsRevoked(_ context.Context, id string) (bool, error) {
	_, ok := m.revoked[id]
	return ok, nil
}

func (m *memoryRevoker) Revoke(_ context.Context, id string, ttl time.Duration) error {
	m.revoked[id] = ttl
	return nil
}

func login(t *testing.T, m *Manager, userID uuid.UUID) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, m.Login(rec, httptest.NewRequest(http.MethodPost, "/login", nil), userID))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	return cookies[0]
}

func requestWith(cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

func TestLoginThenIdentify(t *testing.T) {
	m := NewManager("secret", false, nil)
	userID := uuid.New()

	cookie := login(t, m, userID)

	identity, err := m.Identify(requestWith(cookie))
	require.NoError(t, err)
	assert.Equal(t, userID, identity.UserID)
	assert.NotEmpty(t, identity.SessionID)
}

func TestIdentifyWithoutCookie(t *testing.T) {
	m := NewManager("secret", false, nil)

	_, err := m.Identify(requestWith(nil))
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestIdentifyRejectsForeignKey(t *testing.T) {
	cookie := login(t, NewManager("secret", false, nil), uuid.New())

	_, err := NewManager("other-secret", false, nil).Identify(requestWith(cookie))
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLogoutRevokesSession(t *testing.T) {
	revoker := &memoryRevoker{revoked: map[string]time.Duration{}}
	m := NewManager("secret", false, revoker)
	cookie := login(t, m, uuid.New())

	identity, err := m.Identify(requestWith(cookie))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, m.Logout(rec, requestWith(cookie)))

	expired := rec.Result().Cookies()
	require.Len(t, expired, 1)
	assert.True(t, expired[0].MaxAge < 0)

	ttl, ok := revoker.revoked[identity.SessionID]
	require.True(t, ok)
	assert.InDelta(t, DefaultMaxAge.Seconds(), ttl.Seconds(), 5)

	// A copy of the old cookie no longer authenticates.
	_, err = m.Identify(requestWith(cookie))
	assert.ErrorIs(t, err, ErrRevoked)
}

func TestLogoutWithoutSession(t *testing.T) {
	m := NewManager("secret", false, &memoryRevoker{revoked: map[string]time.Duration{}})

	rec := httptest.NewRecorder()
	assert.NoError(t, m.Logout(rec, requestWith(nil)))
}
