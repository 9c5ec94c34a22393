package routes

import (
	"context"

	"device-tracker/internal/config"
	"device-tracker/internal/dashboard"
	"device-tracker/internal/delivery/http/handler"
	"device-tracker/internal/ingestion"
	"device-tracker/internal/logger"
	"device-tracker/internal/middleware"
	"device-tracker/internal/store"
	"device-tracker/internal/usecase/device"
	"device-tracker/internal/usecase/user"

	"github.com/gin-gonic/gin"
)

// Services are the wired application services the router exposes.
type Services struct {
	Users     *user.Service
	Store     *store.Store
	Processor *ingestion.Processor
	// Health checks by name, reported by GET /health.
	Health map[string]func() error
}

// SetupRoutes builds the gin engine. Dashboard sessions end when ctx is done.
func SetupRoutes(ctx context.Context, cfg *config.Config, svc *Services) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Order: recovery, request ID, logging, security headers, CORS, request size limit, general rate limit
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(cfg.Server.MaxBodySize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", handler.Health(svc.Health))

	registry := device.NewRegistry(svc.Store)
	orchestrator := device.NewOrchestrator(svc.Store)

	userHandler := handler.NewUserHandler(svc.Users)
	deviceHandler := handler.NewDeviceHandler(registry, orchestrator)
	ingestHandler := handler.NewIngestHandler(svc.Processor)
	dashboardHandler := handler.NewDashboardHandler(ctx,
		dashboard.Deps{
			Auth:         svc.Users,
			Locations:    svc.Store,
			Registry:     registry,
			Orchestrator: orchestrator,
		},
		dashboard.Options{
			Zoom:      cfg.Dashboard.CenterZoom,
			AlertTTL:  cfg.Dashboard.AlertTTL,
			LoginPath: cfg.Dashboard.LoginPath,
		},
		dashboard.NewUpgrader(cfg.CORS.AllowedOrigins),
	)

	v1 := router.Group("/api/v1")
	{
		userHandler.RegisterRoutes(v1)
		dashboardHandler.RegisterRoutes(v1)

		devices := v1.Group("")
		devices.Use(middleware.RequestSizeLimitMiddleware(ingestBodyLimit(cfg)))
		devices.Use(middleware.AccessCodeMiddleware())
		devices.Use(middleware.RateLimitByKey(cfg.RateLimit.IngestRPS, cfg.RateLimit.IngestBurst, middleware.AccessCodeKey))
		{
			ingestHandler.RegisterDeviceRoutes(devices)
		}

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(svc.Users))
		{
			userHandler.RegisterProfileRoutes(protected)
			deviceHandler.RegisterRoutes(protected)
			ingestHandler.RegisterMetricsRoutes(protected)
		}
	}

	logger.Info("All routes initialized")
	return router
}

func ingestBodyLimit(cfg *config.Config) int64 {
	if cfg.Ingest.MaxBodySize > 0 {
		return cfg.Ingest.MaxBodySize
	}
	return middleware.DefaultMaxReportSize
}
