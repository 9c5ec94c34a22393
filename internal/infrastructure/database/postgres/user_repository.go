package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"device-tracker/internal/domain/user"
	"device-tracker/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository implements user.Repository
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	u.ID = uuid.New()
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	u.IsActive = true

	dbModel := &models.UserModel{
		ID:             u.ID,
		Email:          u.Email,
		DisplayName:    u.DisplayName,
		PasswordHashed: u.PasswordHashed,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if isDuplicateKey(err) {
			return user.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	return r.first(ctx, "id = ?", userID)
}

func (r *UserRepository) first(ctx context.Context, where string, arg interface{}) (*user.User, error) {
	var dbModel models.UserModel
	err := r.db.DB.WithContext(ctx).Where(where, arg).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user.User{
		ID:             dbModel.ID,
		Email:          dbModel.Email,
		DisplayName:    dbModel.DisplayName,
		PasswordHashed: dbModel.PasswordHashed,
		IsActive:       dbModel.IsActive,
		CreatedAt:      dbModel.CreatedAt,
		UpdatedAt:      dbModel.UpdatedAt,
	}, nil
}

// RefreshTokenRepository implements user.RefreshTokenRepository
type RefreshTokenRepository struct {
	db *DB
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db *DB) user.RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token *user.RefreshToken) error {
	token.ID = uuid.New()
	token.CreatedAt = time.Now().UTC()
	token.Revoked = false

	dbModel := &models.RefreshTokenModel{
		ID:        token.ID,
		UserID:    token.UserID,
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
		CreatedAt: token.CreatedAt,
	}
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create refresh token: %w", err)
	}

	return nil
}

// GetByToken returns the token whatever its state; callers check IsActive.
func (r *RefreshTokenRepository) GetByToken(ctx context.Context, token string) (*user.RefreshToken, error) {
	var dbModel models.RefreshTokenModel
	err := r.db.DB.WithContext(ctx).Where("token = ?", token).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return &user.RefreshToken{
		ID:        dbModel.ID,
		UserID:    dbModel.UserID,
		Token:     dbModel.Token,
		ExpiresAt: dbModel.ExpiresAt,
		Revoked:   dbModel.Revoked,
		RevokedAt: dbModel.RevokedAt,
		CreatedAt: dbModel.CreatedAt,
	}, nil
}

func (r *RefreshTokenRepository) Revoke(ctx context.Context, tokenID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.RefreshTokenModel{}).
		Where("id = ? AND revoked = ?", tokenID, false).
		Updates(map[string]interface{}{
			"revoked":    true,
			"revoked_at": time.Now().UTC(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to revoke token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrTokenRevoked
	}

	return nil
}

func (r *RefreshTokenRepository) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	return r.db.DB.WithContext(ctx).
		Model(&models.RefreshTokenModel{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Updates(map[string]interface{}{
			"revoked":    true,
			"revoked_at": time.Now().UTC(),
		}).Error
}

func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context, olderThan time.Duration) error {
	cutoffTime := time.Now().UTC().Add(-olderThan)
	return r.db.DB.WithContext(ctx).
		Where("expires_at < ? OR (revoked = ? AND revoked_at < ?)", cutoffTime, true, cutoffTime).
		Delete(&models.RefreshTokenModel{}).Error
}
