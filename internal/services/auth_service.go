package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"filmdesk/internal/apperrors"
	"filmdesk/internal/mail"
	"filmdesk/internal/models"
	"filmdesk/internal/utils"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthConfig controls the optional email confirmation step.
type AuthConfig struct {
	RequireConfirmation bool
	ConfirmationSecret  []byte
	PublicBaseURL       string
}

type AuthService struct {
	users  UserStore
	mailer mail.Sender
	cfg    AuthConfig
	logger *zap.Logger
}

// NewAuthService builds the service. mailer may be nil when confirmation is
// disabled.
func NewAuthService(users UserStore, mailer mail.Sender, cfg AuthConfig, logger *zap.Logger) *AuthService {
	if mailer == nil {
		cfg.RequireConfirmation = false
	}
	return &AuthService{users: users, mailer: mailer, cfg: cfg, logger: logger.Named("auth")}
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	user := &models.User{Email: req.Email}
	user.Prepare()

	existing, err := s.users.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("That email is already registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash
	user.Confirmed = !s.cfg.RequireConfirmation

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.cfg.RequireConfirmation {
		if err := s.sendConfirmation(ctx, user); err != nil {
			s.logger.Error("Failed to send confirmation email", zap.String("user_id", user.ID.String()), zap.Error(err))
		}
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *AuthService) sendConfirmation(ctx context.Context, user *models.User) error {
	token, err := utils.GenerateConfirmationToken(user.ID, user.Email, s.cfg.ConfirmationSecret, utils.ConfirmationTokenDuration)
	if err != nil {
		return err
	}
	link := strings.TrimSuffix(s.cfg.PublicBaseURL, "/") + "/api/v1/auth/confirm/" + token
	body := "Welcome to filmdesk!\n\nPlease confirm your email address by opening the link below:\n\n" + link +
		"\n\nThe link expires in 24 hours."
	return s.mailer.Send(ctx, user.Email, "Please confirm your email", body)
}

// Confirm marks the account named by a confirmation token as confirmed.
func (s *AuthService) Confirm(ctx context.Context, token string) (*models.User, error) {
	claims, err := utils.VerifyConfirmationToken(token, s.cfg.ConfirmationSecret)
	if err != nil {
		return nil, apperrors.InvalidInput("The confirmation link is invalid or has expired")
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, apperrors.InvalidInput("The confirmation link is invalid or has expired")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil || user.Email != claims.Email {
		return nil, apperrors.NotFound("User not found")
	}

	if !user.Confirmed {
		if err := s.users.MarkConfirmed(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("failed to confirm user: %w", err)
		}
		user.Confirmed = true
	}
	user.PasswordHash = ""
	return user, nil
}

// Login checks credentials. The caller establishes the session.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*models.User, error) {
	probe := models.User{Email: req.Email}
	probe.Prepare()

	user, err := s.users.FindByEmail(ctx, probe.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	invalid := apperrors.New(apperrors.ErrUnauthorized, "Login unsuccessful. Please check email and password")
	if user == nil || user.PasswordHash == "" {
		return nil, invalid
	}
	if err := utils.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, utils.ErrInvalidPassword) {
			return nil, invalid
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if s.cfg.RequireConfirmation && !user.Confirmed {
		return nil, apperrors.Forbidden("Please confirm your email address before logging in")
	}

	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	user.LastLoginAt = &now
	user.PasswordHash = ""
	return user, nil
}
