// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all server configuration
type Config struct {
	Host string `env:"EXPOTRACK_HOST" envDefault:""`
	Port int    `env:"EXPOTRACK_PORT" envDefault:"8080"`

	// StorageType selects the storage backend: memory, redis or file
	StorageType string `env:"EXPOTRACK_STORAGE" envDefault:"memory"`
	RedisURL    string `env:"EXPOTRACK_REDIS_URL" envDefault:"redis://localhost:6379"`
	DataDir     string `env:"EXPOTRACK_DATA_DIR" envDefault:"data"`

	// StationsFile optionally overrides the built-in station catalog
	StationsFile string `env:"EXPOTRACK_STATIONS_FILE"`

	// Resend email notifier; summaries are only logged when the key is unset
	ResendAPIKey string `env:"EXPOTRACK_RESEND_API_KEY"`
	EmailFrom    string `env:"EXPOTRACK_EMAIL_FROM" envDefault:"noreply@expotrack.io"`
	EmailName    string `env:"EXPOTRACK_EMAIL_FROM_NAME" envDefault:"ExpoTrack"`

	StoreTimeout  time.Duration `env:"EXPOTRACK_STORE_TIMEOUT" envDefault:"3s"`
	NotifyTimeout time.Duration `env:"EXPOTRACK_NOTIFY_TIMEOUT" envDefault:"5s"`
}

// Load parses configuration from environment variables
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
