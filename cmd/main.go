package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"device-tracker/internal/config"
	"device-tracker/internal/domain/device"
	"device-tracker/internal/domain/location"
	"device-tracker/internal/domain/user"
	"device-tracker/internal/feed"
	"device-tracker/internal/infrastructure/database/memory"
	"device-tracker/internal/infrastructure/database/postgres"
	"device-tracker/internal/ingestion"
	"device-tracker/internal/logger"
	"device-tracker/internal/routes"
	"device-tracker/internal/store"
	userUsecase "device-tracker/internal/usecase/user"
	pkgmqtt "device-tracker/pkg/mqtt"

	"go.uber.org/zap"
)

const driverMemory = "memory"

type repositories struct {
	users     user.Repository
	tokens    user.RefreshTokenRepository
	devices   device.Repository
	codes     device.AccessCodeRepository
	locations location.Repository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("environment", env),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("feed_driver", cfg.Feed.Driver),
	)

	if cfg.JWT.Secret == "" {
		logger.Fatal("JWT secret is missing. Please set JWT_SECRET environment variable.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	health := map[string]func() error{}

	var (
		repos repositories
		db    *postgres.DB
	)
	if cfg.Database.Driver == driverMemory {
		repos = repositories{
			users:     memory.NewUserRepository(),
			tokens:    memory.NewRefreshTokenRepository(),
			devices:   memory.NewDeviceRepository(),
			codes:     memory.NewAccessCodeRepository(),
			locations: memory.NewLocationRepository(),
		}
	} else {
		if cfg.Database.Driver != postgres.DriverSQLite && (cfg.Database.Host == "" || cfg.Database.DBName == "") {
			logger.Fatal("Database configuration is missing. Please set DB_HOST and DB_NAME environment variables.")
		}

		db, err = postgres.NewDB(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Error("Failed to close database connection", zap.Error(err))
			}
		}()

		if err := db.Migrate(ctx); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
		health["database"] = db.Health

		repos = repositories{
			users:     postgres.NewUserRepository(db),
			tokens:    postgres.NewRefreshTokenRepository(db),
			devices:   postgres.NewDeviceRepository(db),
			codes:     postgres.NewAccessCodeRepository(db),
			locations: postgres.NewLocationRepository(db),
		}
	}

	broker, closeBroker := newBroker(ctx, cfg, db)
	defer closeBroker()

	recordStore := store.New(repos.devices, repos.codes, repos.locations, broker)
	userService := userUsecase.NewService(repos.users, repos.tokens, &cfg.JWT)

	go userService.StartTokenCleanupJob(ctx, time.Hour, 24*time.Hour)

	processor := ingestion.NewProcessor(recordStore, cfg.Ingest.Workers, cfg.Ingest.BufferSize)
	processor.Start()
	defer processor.Stop()

	if cfg.MQTT.Enabled {
		mqttClient, err := ingestion.NewMQTTIngestionClient(&ingestion.MQTTIngestionConfig{
			ClientConfig: &pkgmqtt.Config{
				Broker:               cfg.MQTT.Broker,
				ClientID:             cfg.MQTT.ClientID,
				Username:             cfg.MQTT.Username,
				Password:             cfg.MQTT.Password,
				CleanSession:         true,
				KeepAlive:            cfg.MQTT.KeepAlive,
				ConnectTimeout:       cfg.MQTT.ConnectTimeout,
				AutoReconnect:        true,
				MaxReconnectInterval: cfg.MQTT.MaxReconnectInterval,
			},
			LocationTopic: cfg.MQTT.LocationTopic,
			QoS:           cfg.MQTT.QoS,
		}, processor)
		if err != nil {
			logger.Fatal("Failed to configure MQTT ingestion", zap.Error(err))
		}
		if err := mqttClient.Start(); err != nil {
			logger.Fatal("Failed to start MQTT ingestion", zap.Error(err))
		}
		defer mqttClient.Stop()

		health["mqtt"] = func() error {
			if !mqttClient.Connected() {
				return errors.New("mqtt broker disconnected")
			}
			return nil
		}
	}

	router := routes.SetupRoutes(ctx, cfg, &routes.Services{
		Users:     userService,
		Store:     recordStore,
		Processor: processor,
		Health:    health,
	})

	host := cfg.Server.Host
	if host == "" {
		host = "0.0.0.0"
	}
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}
	addr := net.JoinHostPort(host, port)

	server := &http.Server{
		Addr:        addr,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// websocket sessions outlive any write timeout; they set their own deadlines
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("address", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown server", zap.Error(err))
	}

	logger.Info("Server exited properly")
}

// newBroker picks the change feed. The postgres feed needs a postgres database.
func newBroker(ctx context.Context, cfg *config.Config, db *postgres.DB) (feed.Broker, func()) {
	if cfg.Feed.Driver != "postgres" {
		b := feed.NewMemoryBroker(cfg.Feed.SubscriberBuf, feed.WithMaxPending(cfg.Feed.MaxPending))
		return b, b.Close
	}

	if db == nil || db.Driver != postgres.DriverPostgres {
		logger.Fatal("FEED_DRIVER=postgres requires DB_DRIVER=postgres")
	}
	b := feed.NewPostgresBroker(db.DB, cfg.Database.URL(), cfg.Feed.Channel, cfg.Feed.SubscriberBuf, feed.WithMaxPending(cfg.Feed.MaxPending))
	if err := b.Start(ctx); err != nil {
		logger.Fatal("Failed to start change feed listener", zap.Error(err))
	}
	return b, b.Close
}
