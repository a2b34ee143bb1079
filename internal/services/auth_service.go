package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/SAP-F-2025/collaboration-service/internal/auth"
	"github.com/SAP-F-2025/collaboration-service/internal/models"
	"github.com/SAP-F-2025/collaboration-service/internal/repositories"
	"github.com/SAP-F-2025/collaboration-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	tokens    *auth.TokenManager
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(repo repositories.Repository, tokens *auth.TokenManager, logger *slog.Logger, validator *validator.Validator) AuthService {
	return &authService{
		repo:      repo,
		tokens:    tokens,
		logger:    logger,
		validator: validator,
	}
}

// Register creates an account with the workspace's default role and issues
// its first identity token.
func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*TokenResponse, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	taken, err := s.repo.User().ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	workspace := models.Workspace(req.Workspace)
	user := &models.User{
		ID:           uuid.New().String(),
		FullName:     req.FullName,
		Email:        email,
		Role:         models.DefaultRole(workspace),
		Workspace:    workspace,
		PasswordHash: string(hash),
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered",
		"user_id", user.ID,
		"workspace", string(user.Workspace),
		"role", string(user.Role))

	return s.issue(user)
}

// Login verifies credentials and issues a fresh identity token.
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.repo.User().GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return s.issue(user)
}

func (s *authService) issue(user *models.User) (*TokenResponse, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &TokenResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(auth.TokenValidity),
		User:      user,
	}, nil
}
