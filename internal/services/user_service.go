package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"filmdesk/internal/apperrors"
	"filmdesk/internal/models"
)

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// Me returns the caller's account.
func (s *UserService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("User not found")
	}
	user.PasswordHash = ""
	return user, nil
}
