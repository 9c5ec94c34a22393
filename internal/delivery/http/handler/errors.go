package handler

import (
	"errors"
	"net/http"

	domainDevice "device-tracker/internal/domain/device"
	domainLocation "device-tracker/internal/domain/location"
	domainUser "device-tracker/internal/domain/user"
	"device-tracker/internal/ingestion"
	"device-tracker/internal/logger"
	"device-tracker/internal/middleware"
	devuc "device-tracker/internal/usecase/device"
	appErrors "device-tracker/pkg/errors"
	"device-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var (
		partial *devuc.PartialCascadeFailure
		invalid *ingestion.ValidationError
		appErr  *appErrors.AppError
	)

	switch {
	case errors.Is(err, domainUser.ErrUserAlreadyExists):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, appErrors.ErrInvalidCredentials),
		errors.Is(err, appErrors.ErrInvalidToken),
		errors.Is(err, appErrors.ErrUnauthorized),
		errors.Is(err, ingestion.ErrUnknownAccessCode):
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domainUser.ErrUserInactive):
		utils.ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, domainUser.ErrUserNotFound),
		errors.Is(err, domainDevice.ErrDeviceNotFound),
		errors.Is(err, domainLocation.ErrLocationNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.As(err, &invalid):
		utils.ErrorResponse(c, http.StatusBadRequest, invalid.Message)
	case errors.Is(err, ingestion.ErrQueueFull), errors.Is(err, ingestion.ErrProcessorStopped):
		utils.ErrorResponse(c, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &partial):
		logger.Error("Cascade delete left records behind",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("device_id", partial.DeviceID),
			zap.Int("attempted", partial.Attempted),
			zap.Int("failed", partial.Failed),
			zap.Error(partial.Err),
		)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Error deleting device")
	case errors.As(err, &appErr) && (appErr.Code == appErrors.CodeValidation || appErr.Code == appErrors.CodeWeakPass):
		utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
	default:
		logger.Error("Internal server error",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}

// currentUser reads the id set by AuthMiddleware.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("userID")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Invalid user identifier")
		return uuid.Nil, false
	}
	return id, true
}
