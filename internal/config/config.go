package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	MQTT      MQTTConfig
	Feed      FeedConfig
	Dashboard DashboardConfig
	Ingest    IngestConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	Environment string
	MaxBodySize int64
}

type DatabaseConfig struct {
	Driver   string // postgres | sqlite
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	Path     string // sqlite file, ":memory:" allowed
}

type JWTConfig struct {
	Secret             string
	ExpiryHours        int
	RefreshExpiryHours int
}

type RateLimitConfig struct {
	GeneralRPS   float64 // Requests per second for general endpoints
	GeneralBurst int     // Burst size for general endpoints
	IngestRPS    float64 // per access code
	IngestBurst  int
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type MQTTConfig struct {
	Enabled              bool
	Broker               string
	ClientID             string
	Username             string
	Password             string
	LocationTopic        string
	QoS                  byte
	KeepAlive            int
	ConnectTimeout       int
	MaxReconnectInterval time.Duration
}

// FeedConfig selects how change notifications travel between writers and live queries.
type FeedConfig struct {
	Driver        string // memory | postgres
	Channel       string
	SubscriberBuf int
	MaxPending    int
}

type DashboardConfig struct {
	CenterZoom int
	AlertTTL   time.Duration
	LoginPath  string
}

type IngestConfig struct {
	Workers     int
	BufferSize  int
	MaxBodySize int64
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(homeDir)
	}
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Printf("Warning: config file not found: %v. Falling back to environment variables only.", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:        viper.GetString("SERVER_PORT"),
			Host:        viper.GetString("SERVER_HOST"),
			MaxBodySize: viper.GetInt64("SERVER_MAX_BODY_BYTES"),
			Environment: viper.GetString("ENVIRONMENT"),
		},
		Database: DatabaseConfig{
			Driver:   viper.GetString("DB_DRIVER"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
			Path:     viper.GetString("DB_PATH"),
		},
		JWT: JWTConfig{
			Secret:             viper.GetString("JWT_SECRET"),
			ExpiryHours:        viper.GetInt("JWT_EXPIRY_HOURS"),
			RefreshExpiryHours: viper.GetInt("JWT_REFRESH_EXPIRY_HOURS"),
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:   viper.GetFloat64("RATE_LIMIT_GENERAL_RPS"),
			GeneralBurst: viper.GetInt("RATE_LIMIT_GENERAL_BURST"),
			IngestRPS:    viper.GetFloat64("RATE_LIMIT_INGEST_RPS"),
			IngestBurst:  viper.GetInt("RATE_LIMIT_INGEST_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods:   viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders:   viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
			ExposedHeaders:   viper.GetStringSlice("CORS_EXPOSED_HEADERS"),
			AllowCredentials: viper.GetBool("CORS_ALLOW_CREDENTIALS"),
			MaxAge:           viper.GetInt("CORS_MAX_AGE"),
		},
		MQTT: MQTTConfig{
			Enabled:              viper.GetBool("MQTT_ENABLED"),
			Broker:               viper.GetString("MQTT_BROKER"),
			ClientID:             viper.GetString("MQTT_CLIENT_ID"),
			Username:             viper.GetString("MQTT_USERNAME"),
			Password:             viper.GetString("MQTT_PASSWORD"),
			LocationTopic:        viper.GetString("MQTT_LOCATION_TOPIC"),
			QoS:                  byte(viper.GetUint("MQTT_QOS")),
			KeepAlive:            viper.GetInt("MQTT_KEEP_ALIVE"),
			ConnectTimeout:       viper.GetInt("MQTT_CONNECT_TIMEOUT"),
			MaxReconnectInterval: viper.GetDuration("MQTT_MAX_RECONNECT_INTERVAL"),
		},
		Feed: FeedConfig{
			Driver:        viper.GetString("FEED_DRIVER"),
			Channel:       viper.GetString("FEED_CHANNEL"),
			SubscriberBuf: viper.GetInt("FEED_SUBSCRIBER_BUFFER"),
			MaxPending:    viper.GetInt("FEED_MAX_PENDING"),
		},
		Dashboard: DashboardConfig{
			CenterZoom: viper.GetInt("DASHBOARD_CENTER_ZOOM"),
			AlertTTL:   viper.GetDuration("DASHBOARD_ALERT_TTL"),
			LoginPath:  viper.GetString("DASHBOARD_LOGIN_PATH"),
		},
		Ingest: IngestConfig{
			Workers:     viper.GetInt("INGEST_WORKERS"),
			BufferSize:  viper.GetInt("INGEST_BUFFER_SIZE"),
			MaxBodySize: viper.GetInt64("INGEST_MAX_BODY_BYTES"),
		},
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_PATH", "device-tracker.db")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 24*7)
	viper.SetDefault("RATE_LIMIT_GENERAL_RPS", 20)
	viper.SetDefault("RATE_LIMIT_GENERAL_BURST", 40)
	viper.SetDefault("RATE_LIMIT_INGEST_RPS", 5)
	viper.SetDefault("RATE_LIMIT_INGEST_BURST", 10)
	viper.SetDefault("CORS_ALLOWED_METHODS", []string{"GET", "POST", "DELETE", "OPTIONS"})
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Authorization", "X-Request-ID", "X-Access-Code"})
	viper.SetDefault("CORS_EXPOSED_HEADERS", []string{"X-Request-ID"})
	viper.SetDefault("CORS_MAX_AGE", 12*60*60)
	viper.SetDefault("MQTT_CLIENT_ID", "device-tracker")
	viper.SetDefault("MQTT_LOCATION_TOPIC", "devices/+/location")
	viper.SetDefault("MQTT_QOS", 1)
	viper.SetDefault("MQTT_KEEP_ALIVE", 30)
	viper.SetDefault("MQTT_CONNECT_TIMEOUT", 10)
	viper.SetDefault("MQTT_MAX_RECONNECT_INTERVAL", time.Minute)
	viper.SetDefault("FEED_DRIVER", "memory")
	viper.SetDefault("FEED_CHANNEL", "device_tracker_changes")
	viper.SetDefault("FEED_SUBSCRIBER_BUFFER", 256)
	viper.SetDefault("FEED_MAX_PENDING", 65536)
	viper.SetDefault("DASHBOARD_CENTER_ZOOM", 15)
	viper.SetDefault("DASHBOARD_ALERT_TTL", 5*time.Second)
	viper.SetDefault("DASHBOARD_LOGIN_PATH", "/login.html")
	viper.SetDefault("INGEST_WORKERS", 2)
	viper.SetDefault("INGEST_BUFFER_SIZE", 1024)
	viper.SetDefault("INGEST_MAX_BODY_BYTES", 4096)
	viper.SetDefault("SERVER_MAX_BODY_BYTES", 1<<20)
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// URL is the pgx connection string used by the change feed listener.
func (c *DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}
