package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// RandomToken returns n random bytes, URL-safe base64 encoded.
func RandomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func GenerateStateOauthCookie() (string, error) {
	return RandomToken(16)
}
