package middleware

import (
	"net/http"
	"strings"

	"device-tracker/internal/domain/device"
	"device-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
)

const AccessCodeHeader = "X-Access-Code"

// AccessCodeMiddleware requires a well-formed device access code header and
// stores it upper-cased under "accessCode". Whether the code exists is
// decided by the handler.
func AccessCodeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		code := strings.ToUpper(strings.TrimSpace(c.GetHeader(AccessCodeHeader)))
		if code == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Access code required")
			c.Abort()
			return
		}

		if len(code) != device.AccessCodeLength || strings.Trim(code, device.AccessCodeAlphabet) != "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid access code")
			c.Abort()
			return
		}

		c.Set("accessCode", code)
		c.Next()
	}
}
