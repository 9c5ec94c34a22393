package user

import (
	"context"
	"time"

	"device-tracker/internal/logger"

	"go.uber.org/zap"
)

// StartTokenCleanupJob prunes expired and revoked refresh tokens every
// interval until ctx is done. Tokens are kept for retention after they stop
// being usable.
func (s *Service) StartTokenCleanupJob(ctx context.Context, interval, retention time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Token cleanup job started",
		zap.Duration("interval", interval),
		zap.Duration("retention", retention),
	)

	s.cleanupExpiredTokens(ctx, retention)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Token cleanup job stopped")
			return
		case <-ticker.C:
			s.cleanupExpiredTokens(ctx, retention)
		}
	}
}

func (s *Service) cleanupExpiredTokens(ctx context.Context, olderThan time.Duration) {
	if err := s.refreshTokenRepo.DeleteExpired(ctx, olderThan); err != nil {
		logger.Error("Failed to delete expired tokens", zap.Error(err))
		return
	}

	logger.Debug("Expired tokens cleaned up successfully",
		zap.Duration("older_than", olderThan),
	)
}
