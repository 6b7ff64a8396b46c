package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"filmdesk/internal/apperrors"
	"filmdesk/internal/services"
	"filmdesk/internal/testutil"
)

type capturedMail struct {
	to, subject, body string
}

type recordingMailer struct {
	sent []capturedMail
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.sent = append(m.sent, capturedMail{to: to, subject: subject, body: body})
	return nil
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	store := testutil.NewMemoryStore()
	svc := services.NewAuthService(store.Users(), nil, services.AuthConfig{}, zap.NewNop())
	ctx := context.Background()

	user, err := svc.Register(ctx, services.RegisterRequest{Email: " Director@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "director@example.com", user.Email)
	assert.True(t, user.Confirmed)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.Register(ctx, services.RegisterRequest{Email: "director@example.com", Password: "another"})
	assert.True(t, errors.Is(err, apperrors.ErrConflict))

	_, err = svc.Login(ctx, services.LoginRequest{Email: "director@example.com", Password: "wrong-password"})
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))

	_, err = svc.Login(ctx, services.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))

	loggedIn, err := svc.Login(ctx, services.LoginRequest{Email: "DIRECTOR@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	require.NotNil(t, loggedIn.LastLoginAt)
}

func TestAuthService_EmailConfirmation(t *testing.T) {
	store := testutil.NewMemoryStore()
	mailer := &recordingMailer{}
	svc := services.NewAuthService(store.Users(), mailer, services.AuthConfig{
		RequireConfirmation: true,
		ConfirmationSecret:  []byte("confirm-secret"),
		PublicBaseURL:       "https://films.example.com/",
	}, zap.NewNop())
	ctx := context.Background()

	user, err := svc.Register(ctx, services.RegisterRequest{Email: "writer@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.False(t, user.Confirmed)

	_, err = svc.Login(ctx, services.LoginRequest{Email: "writer@example.com", Password: "secret1"})
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "writer@example.com", mailer.sent[0].to)
	const prefix = "https://films.example.com/api/v1/auth/confirm/"
	start := strings.Index(mailer.sent[0].body, prefix)
	require.GreaterOrEqual(t, start, 0)
	token := strings.Fields(mailer.sent[0].body[start+len(prefix):])[0]

	_, err = svc.Confirm(ctx, "not-a-token")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	confirmed, err := svc.Confirm(ctx, token)
	require.NoError(t, err)
	assert.True(t, confirmed.Confirmed)

	_, err = svc.Login(ctx, services.LoginRequest{Email: "writer@example.com", Password: "secret1"})
	require.NoError(t, err)
}

func TestUserService_Me(t *testing.T) {
	store := testutil.NewMemoryStore()
	auth := services.NewAuthService(store.Users(), nil, services.AuthConfig{}, zap.NewNop())
	user, err := auth.Register(context.Background(), services.RegisterRequest{Email: "me@example.com", Password: "secret1"})
	require.NoError(t, err)

	me, err := services.NewUserService(store.Users()).Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", me.Email)
	assert.Empty(t, me.PasswordHash)
}
