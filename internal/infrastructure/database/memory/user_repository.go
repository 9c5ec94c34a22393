package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"device-tracker/internal/domain/user"

	"github.com/google/uuid"
)

type userRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]user.User
}

func NewUserRepository() user.Repository {
	return &userRepository{
		users: make(map[uuid.UUID]user.User),
	}
}

func (r *userRepository) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return user.ErrUserAlreadyExists
		}
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	u.IsActive = true
	r.users[u.ID] = *u
	return nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *userRepository) GetByID(_ context.Context, userID uuid.UUID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return &u, nil
}

type refreshTokenRepository struct {
	mu     sync.RWMutex
	tokens map[uuid.UUID]user.RefreshToken
}

func NewRefreshTokenRepository() user.RefreshTokenRepository {
	return &refreshTokenRepository{
		tokens: make(map[uuid.UUID]user.RefreshToken),
	}
}

func (r *refreshTokenRepository) Create(_ context.Context, token *user.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	token.ID = uuid.New()
	token.CreatedAt = time.Now().UTC()
	token.Revoked = false
	r.tokens[token.ID] = *token
	return nil
}

func (r *refreshTokenRepository) GetByToken(_ context.Context, token string) (*user.RefreshToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.tokens {
		if t.Token == token {
			t := t
			return &t, nil
		}
	}
	return nil, user.ErrTokenNotFound
}

func (r *refreshTokenRepository) Revoke(_ context.Context, tokenID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tokens[tokenID]
	if !ok || t.Revoked {
		return user.ErrTokenRevoked
	}
	now := time.Now().UTC()
	t.Revoked = true
	t.RevokedAt = &now
	r.tokens[tokenID] = t
	return nil
}

func (r *refreshTokenRepository) RevokeAllUserTokens(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	for id, t := range r.tokens {
		if t.UserID == userID && !t.Revoked {
			t.Revoked = true
			t.RevokedAt = &now
			r.tokens[id] = t
		}
	}
	return nil
}

func (r *refreshTokenRepository) DeleteExpired(_ context.Context, olderThan time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().UTC().Add(-olderThan)
	for id, t := range r.tokens {
		if t.ExpiresAt.Before(cutoff) || (t.Revoked && t.RevokedAt != nil && t.RevokedAt.Before(cutoff)) {
			delete(r.tokens, id)
		}
	}
	return nil
}
