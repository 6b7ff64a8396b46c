package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmationTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	userID := uuid.New()

	token, err := GenerateConfirmationToken(userID, "a@example.com", secret, time.Hour)
	require.NoError(t, err)

	claims, err := VerifyConfirmationToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", claims.Email)

	got, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestConfirmationTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateConfirmationToken(uuid.New(), "a@example.com", []byte("one"), time.Hour)
	require.NoError(t, err)

	_, err = VerifyConfirmationToken(token, []byte("two"))
	assert.Error(t, err)
}

func TestConfirmationTokenRejectsExpired(t *testing.T) {
	token, err := GenerateConfirmationToken(uuid.New(), "a@example.com", []byte("k"), -time.Minute)
	require.NoError(t, err)

	_, err = VerifyConfirmationToken(token, []byte("k"))
	assert.Error(t, err)
}
