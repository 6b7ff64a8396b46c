package utils

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	encoded, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "argon2id$v=19$"))

	assert.NoError(t, VerifyPassword(encoded, "s3cret-pass"))
	assert.ErrorIs(t, VerifyPassword(encoded, "wrong"), ErrInvalidPassword)
}

func TestHashPasswordUsesFreshSalt(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	for _, encoded := range []string{
		"",
		"bcrypt$whatever",
		"argon2id$v=19$garbage$c2FsdA$aGFzaA",
		"argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA",
	} {
		err := VerifyPassword(encoded, "pw")
		assert.True(t, errors.Is(err, ErrInvalidHash), "hash %q", encoded)
	}
}
