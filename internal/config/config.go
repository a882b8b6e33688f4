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
	API       APIConfig
	Database  DatabaseConfig
	MQTT      MQTTConfig
	Tracking  TrackingConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	Environment string
}

// APIConfig locates the remote shipment API the dashboard consumes.
type APIConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

func (c *APIConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DatabaseConfig is for the local reference-data store (fleet vehicles, cargo
// types). The dashboard runs without it; those screens are then disabled.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func (c *DatabaseConfig) Enabled() bool {
	return c.Host != "" && c.DBName != ""
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// MQTTConfig is for the optional device-telemetry location feed.
type MQTTConfig struct {
	Broker        string
	ClientID      string
	Username      string
	Password      string
	LocationTopic string
	QoS           int
}

func (c *MQTTConfig) Enabled() bool {
	return c.Broker != ""
}

type TrackingConfig struct {
	PollIntervalSeconds int
}

func (c *TrackingConfig) PollInterval() time.Duration {
	if c.PollIntervalSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// AuthConfig guards mutating management endpoints. An empty secret disables
// the check.
type AuthConfig struct {
	Secret string
}

type RateLimitConfig struct {
	GeneralRPS   float64
	GeneralBurst int
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(homeDir)
	}
	viper.AutomaticEnv()

	viper.SetDefault("SHIPMENT_API_URL", "http://localhost:5000/api")
	viper.SetDefault("SHIPMENT_API_TIMEOUT_SECONDS", 15)
	viper.SetDefault("TRACKING_POLL_INTERVAL_SECONDS", 30)
	viper.SetDefault("MQTT_LOCATION_TOPIC", "shipments/+/location")
	viper.SetDefault("MQTT_CLIENT_ID", "cargo-tracker-dashboard")
	viper.SetDefault("RATE_LIMIT_GENERAL_RPS", 20.0)
	viper.SetDefault("RATE_LIMIT_GENERAL_BURST", 40)

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			if _, statErr := os.Stat(".env"); !os.IsNotExist(statErr) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
		log.Printf("Warning: config file not found: %v. Falling back to environment variables only.", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:        viper.GetString("SERVER_PORT"),
			Host:        viper.GetString("SERVER_HOST"),
			Environment: viper.GetString("ENVIRONMENT"),
		},
		API: APIConfig{
			BaseURL:        viper.GetString("SHIPMENT_API_URL"),
			TimeoutSeconds: viper.GetInt("SHIPMENT_API_TIMEOUT_SECONDS"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
		},
		MQTT: MQTTConfig{
			Broker:        viper.GetString("MQTT_BROKER"),
			ClientID:      viper.GetString("MQTT_CLIENT_ID"),
			Username:      viper.GetString("MQTT_USERNAME"),
			Password:      viper.GetString("MQTT_PASSWORD"),
			LocationTopic: viper.GetString("MQTT_LOCATION_TOPIC"),
			QoS:           viper.GetInt("MQTT_QOS"),
		},
		Tracking: TrackingConfig{
			PollIntervalSeconds: viper.GetInt("TRACKING_POLL_INTERVAL_SECONDS"),
		},
		Auth: AuthConfig{
			Secret: viper.GetString("DASHBOARD_AUTH_SECRET"),
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:   viper.GetFloat64("RATE_LIMIT_GENERAL_RPS"),
			GeneralBurst: viper.GetInt("RATE_LIMIT_GENERAL_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods:   viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders:   viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
			ExposedHeaders:   viper.GetStringSlice("CORS_EXPOSED_HEADERS"),
			AllowCredentials: viper.GetBool("CORS_ALLOW_CREDENTIALS"),
			MaxAge:           viper.GetInt("CORS_MAX_AGE"),
		},
	}

	return config, nil
}
