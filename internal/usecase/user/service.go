package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"device-tracker/internal/config"
	domainUser "device-tracker/internal/domain/user"
	"device-tracker/internal/logger"
	appErrors "device-tracker/pkg/errors"
	"device-tracker/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service is the identity service: accounts, sessions and token validation.
type Service struct {
	userRepo         domainUser.Repository
	refreshTokenRepo domainUser.RefreshTokenRepository
	config           *config.JWTConfig
}

func NewService(
	userRepo domainUser.Repository,
	refreshTokenRepo domainUser.RefreshTokenRepository,
	cfg *config.JWTConfig,
) *Service {
	return &Service{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		config:           cfg,
	}
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	req.Email = utils.SanitizeEmail(req.Email)
	req.DisplayName = utils.SanitizeString(req.DisplayName)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeWeakPass, err.Error(), appErrors.ErrWeakPassword)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domainUser.User{
		Email:          req.Email,
		DisplayName:    req.DisplayName,
		PasswordHashed: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainUser.ErrUserAlreadyExists) {
			logger.Warn("Registration attempt with existing email",
				zap.String("email", req.Email),
				zap.String("event", "registration_failed_duplicate_email"),
			)
		}
		return nil, err
	}

	resp, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.Info("User registered successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("event", "user_registered"),
	)

	return resp, nil
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	req.Email = utils.SanitizeEmail(req.Email)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Warn("Login attempt with non-existent email",
				zap.String("email", req.Email),
				zap.String("event", "user_not_found"),
			)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		logger.Warn("Login attempt for inactive user",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "login_failed_inactive_user"),
		)
		return nil, domainUser.ErrUserInactive
	}

	if !utils.CheckPassword(user.PasswordHashed, req.Password) {
		logger.Warn("Login attempt with invalid password",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "login_failed_invalid_password"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	resp, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.Info("User logged in successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "login_success"),
	)

	return resp, nil
}

// Refresh rotates a refresh token: the presented one is revoked and a new pair is issued.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	dbToken, err := s.refreshTokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		logger.Warn("Token refresh attempt with unknown token",
			zap.String("event", "token_refresh_failed_token_not_found"),
		)
		return nil, appErrors.ErrInvalidToken
	}
	if !dbToken.IsActive() {
		logger.Warn("Token refresh attempt with inactive token",
			zap.String("user_id", dbToken.UserID.String()),
			zap.Bool("revoked", dbToken.Revoked),
			zap.String("event", "token_refresh_failed_inactive"),
		)
		return nil, appErrors.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, dbToken.UserID)
	if err != nil {
		return nil, appErrors.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, domainUser.ErrUserInactive
	}

	if err := s.refreshTokenRepo.Revoke(ctx, dbToken.ID); err != nil {
		// lost a race with another refresh of the same token
		return nil, appErrors.ErrInvalidToken
	}

	resp, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.Debug("Token refreshed successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("old_token_id", dbToken.ID.String()),
		zap.String("event", "token_refresh_success"),
	)

	return resp, nil
}

// Logout revokes refreshToken, or every session of the user when it is empty.
func (s *Service) Logout(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	if refreshToken == "" {
		if err := s.refreshTokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
			return fmt.Errorf("failed to revoke all tokens for user: %w", err)
		}
		logger.Info("All refresh tokens revoked for user",
			zap.String("user_id", userID.String()),
			zap.String("event", "all_tokens_revoked"),
		)
		return nil
	}

	dbToken, err := s.refreshTokenRepo.GetByToken(ctx, refreshToken)
	if err != nil || dbToken.UserID != userID {
		return appErrors.ErrInvalidToken
	}

	if err := s.refreshTokenRepo.Revoke(ctx, dbToken.ID); err != nil && !errors.Is(err, domainUser.ErrTokenRevoked) {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	logger.Info("Refresh token revoked successfully",
		zap.String("user_id", userID.String()),
		zap.String("token_id", dbToken.ID.String()),
		zap.String("event", "token_revoked"),
	)

	return nil
}

// Authenticate validates an access token and returns its claims.
func (s *Service) Authenticate(token string) (*utils.Claims, error) {
	claims, err := utils.ValidateToken(token, s.config.Secret)
	if err != nil {
		return nil, appErrors.ErrInvalidToken
	}
	return claims, nil
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

func (s *Service) issue(ctx context.Context, user *domainUser.User) (*AuthResponse, error) {
	tokenPair, err := utils.GenerateTokenPair(
		user.ID,
		user.Email,
		s.config.Secret,
		s.config.ExpiryHours,
		s.config.RefreshExpiryHours,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	refreshToken := &domainUser.RefreshToken{
		UserID:    user.ID,
		Token:     tokenPair.RefreshToken,
		ExpiresAt: time.Now().Add(time.Duration(s.config.RefreshExpiryHours) * time.Hour),
	}
	if err := s.refreshTokenRepo.Create(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &AuthResponse{
		User:         ToUserResponse(user),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    tokenPair.ExpiresAt,
	}, nil
}
