package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Addr            string        `envconfig:"ADDR" default:":8080"`
	StaticDir       string        `envconfig:"STATIC_DIR" default:"./static"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	AllowedOrigin   string        `envconfig:"ALLOWED_ORIGIN" default:""`
	SendBufferSize  int           `envconfig:"SEND_BUFFER_SIZE" default:"256"`
	MaxMessageSize  int64         `envconfig:"MAX_MESSAGE_SIZE" default:"65536"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"10s"`
	PongTimeout     time.Duration `envconfig:"PONG_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
}

// Load reads the configuration from the environment, with an optional .env
// file for local development.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment: %w", err)
	}
	if cfg.PongTimeout <= cfg.WriteTimeout {
		return Config{}, fmt.Errorf("PONG_TIMEOUT (%s) must exceed WRITE_TIMEOUT (%s)", cfg.PongTimeout, cfg.WriteTimeout)
	}
	return cfg, nil
}

// PingPeriod derives the keepalive interval; it must fire before the pong
// deadline expires.
func (c Config) PingPeriod() time.Duration {
	return c.PongTimeout * 9 / 10
}
