package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/scholars/internal/app/models"
	"github.com/yigit/scholars/internal/app/models/dto"
	"github.com/yigit/scholars/internal/pkg/apperrors"
	"github.com/yigit/scholars/internal/pkg/auth"
	"github.com/yigit/scholars/internal/pkg/validation"
)

// AuthService handles authentication operations
type AuthService struct {
	users      UserStore
	tokens     TokenStore
	jwtService *auth.JWTService
	hashCost   int
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, tokens TokenStore, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		jwtService: jwtService,
		hashCost:   auth.BcryptCost,
		logger:     logger,
	}
}

// Register creates an account and signs it in
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if errs := validation.ValidatePassword(req.Password); !errs.Empty() {
		return nil, apperrors.NewValidationError(errs)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPasswordWithCost(req.Password, s.hashCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     email,
		Password:  hash,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		IsActive:  true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Msg("User registered")
	return s.issueTokens(ctx, user)
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to record last login")
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken exchanges a live refresh token for a new token pair. The old refresh token is
// revoked in the same transaction that stores the new one.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	userID, err := s.tokens.GetUserIDByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	pair, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Rotate(ctx, refreshToken, pair.RefreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return newAuthResponse(user, pair), nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	pair, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.CreateToken(ctx, pair.RefreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return newAuthResponse(user, pair), nil
}

func newAuthResponse(user *models.User, pair *auth.TokenPair) *dto.AuthResponse {
	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken:           pair.AccessToken,
			TokenType:             "Bearer",
			ExpiresIn:             int64(pair.ExpiresIn),
			RefreshToken:          pair.RefreshToken,
			RefreshTokenExpiresIn: int64(pair.RefreshExpiresIn),
		},
		User: dto.NewUserResponse(user),
	}
}
