package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"filmdesk/internal/apperrors"
	"filmdesk/internal/models"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type GoogleAuthService struct {
	users       UserStore
	userInfoURL string
	httpClient  *http.Client
}

func NewGoogleAuthService(users UserStore) *GoogleAuthService {
	return &GoogleAuthService{
		users:       users,
		userInfoURL: googleUserInfoURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

type googleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

// Callback resolves the Google account behind token to a local user,
// creating one on first sign-in.
func (s *GoogleAuthService) Callback(ctx context.Context, token *oauth2.Token) (*models.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create userinfo request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token.AccessToken))

	response, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed with status %d", response.StatusCode)
	}

	var gu googleUser
	if err := json.Unmarshal(body, &gu); err != nil {
		return nil, fmt.Errorf("failed to parse user info: %w", err)
	}
	if !gu.VerifiedEmail || gu.Email == "" {
		return nil, apperrors.Forbidden("Email is not verified by Google")
	}

	user := &models.User{Email: gu.Email}
	user.Prepare()

	existing, err := s.users.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing == nil {
		user.Confirmed = true
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		existing = user
	} else if !existing.Confirmed {
		if err := s.users.MarkConfirmed(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("failed to confirm user: %w", err)
		}
		existing.Confirmed = true
	}

	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, existing.ID, now); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	existing.LastLoginAt = &now
	existing.PasswordHash = ""
	return existing, nil
}
