// Package config loads service settings from the environment and an optional
// config file through Viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full set of service settings.
type Config struct {
	AppPort  string
	Database DatabaseConfig
	Log      LogConfig
	RabbitMQ RabbitMQConfig
	Metrics  MetricsConfig
}

type DatabaseConfig struct {
	DSN         string
	AutoMigrate bool
}

type LogConfig struct {
	Level  string
	Format string
}

// RabbitMQConfig holds the broker settings. An empty URL disables events.
type RabbitMQConfig struct {
	URL   string
	Queue string
}

type MetricsConfig struct {
	Enabled bool
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DSN", "sqlite://products.db")
	v.SetDefault("DATABASE_AUTO_MIGRATE", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "product_events")
	v.SetDefault("METRICS_ENABLED", true)
}

// Load reads the optional config file, overlays environment variables and
// returns the validated result.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		AppPort: v.GetString("APP_PORT"),
		Database: DatabaseConfig{
			DSN:         v.GetString("DATABASE_DSN"),
			AutoMigrate: v.GetBool("DATABASE_AUTO_MIGRATE"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
		RabbitMQ: RabbitMQConfig{
			URL:   v.GetString("RABBITMQ_URL"),
			Queue: v.GetString("RABBITMQ_QUEUE"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail late at startup.
func (c *Config) Validate() error {
	if c.AppPort == "" {
		return fmt.Errorf("APP_PORT is required")
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("DATABASE_DSN is required")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown LOG_LEVEL %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unknown LOG_FORMAT %q", c.Log.Format)
	}
	if c.RabbitMQ.URL != "" && c.RabbitMQ.Queue == "" {
		return fmt.Errorf("RABBITMQ_QUEUE is required when RABBITMQ_URL is set")
	}
	return nil
}

// EventsEnabled reports whether product events should be published.
func (c *Config) EventsEnabled() bool {
	return c.RabbitMQ.URL != ""
}
