package handler

import (
	"context"

	"device-tracker/internal/dashboard"
	"device-tracker/internal/logger"
	"device-tracker/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// DashboardHandler upgrades browser connections and runs one dashboard
// session per connection until the connection or the server goes away.
type DashboardHandler struct {
	base     context.Context
	deps     dashboard.Deps
	opts     dashboard.Options
	upgrader *websocket.Upgrader
}

func NewDashboardHandler(base context.Context, deps dashboard.Deps, opts dashboard.Options, upgrader *websocket.Upgrader) *DashboardHandler {
	return &DashboardHandler{base: base, deps: deps, opts: opts, upgrader: upgrader}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard/ws", h.Connect)
}

// Connect takes the access token from the "token" query parameter, since
// browsers cannot set headers on websocket requests. An invalid token still
// gets a connection; the session answers it with a redirect.
func (h *DashboardHandler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = middleware.BearerToken(c)
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("Dashboard websocket upgrade failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
		return
	}

	session := dashboard.NewSession(h.deps, h.opts, dashboard.NewWebSocketTransport(conn), token)
	if err := session.Run(h.base); err != nil {
		logger.Debug("Dashboard session ended with error",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
	}
}
