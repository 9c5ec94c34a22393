package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health runs every named check and answers 503 when any of them fails.
func Health(checks map[string]func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		failed := gin.H{}
		for name, check := range checks {
			if err := check(); err != nil {
				failed[name] = err.Error()
			}
		}
		if len(failed) > 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"checks": failed,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	}
}
