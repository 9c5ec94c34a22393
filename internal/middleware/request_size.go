package middleware

import (
	"errors"
	"net/http"

	"device-tracker/internal/logger"
	"device-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	DefaultMaxRequestSize = 1 << 20
	// DefaultMaxReportSize fits one location report with room to spare.
	DefaultMaxReportSize = 4 << 10
)

// RequestSizeLimitMiddleware rejects bodies that declare more than maxSize
// bytes and caps the reader for the rest. Groups may install a smaller limit
// on top of the global one; the smallest wins.
func RequestSizeLimitMiddleware(maxSize int64) gin.HandlerFunc {
	if maxSize <= 0 {
		maxSize = DefaultMaxRequestSize
	}

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			logger.WithRequestID(GetRequestID(c)).Warn("Request body too large",
				zap.String("path", c.FullPath()),
				zap.Int64("content_length", c.Request.ContentLength),
				zap.Int64("limit", maxSize),
			)
			utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "Request body too large")
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}

// IsBodyTooLarge reports whether err came from reading past the size limit.
func IsBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
