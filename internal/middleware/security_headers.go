package middleware

import "github.com/gin-gonic/gin"

func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		headers := c.Writer.Header()

		headers.Set("X-Content-Type-Options", "nosniff")
		headers.Set("X-Frame-Options", "DENY")
		headers.Set("Referrer-Policy", "no-referrer")
		// the dashboard talks back over a websocket on the same host
		headers.Set("Content-Security-Policy", "default-src 'self'; connect-src 'self' ws: wss:")

		c.Next()
	}
}
