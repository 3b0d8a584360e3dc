package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	API       APIConfig
	Log       LogConfig
	Forward   LogForwardConfig
	Form      FormConfig
	Server    ServerConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
}

type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL" envDefault:"http://localhost:8080/api" validate:"required,url"`
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"10s" validate:"gt=0"`
}

type LogConfig struct {
	Level          string `env:"LOG_LEVEL" envDefault:"warn" validate:"oneof=debug info warn error"`
	BufferCapacity int    `env:"LOG_BUFFER_CAPACITY" envDefault:"1000" validate:"min=1"`
}

func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

type LogForwardConfig struct {
	Enabled   bool          `env:"LOG_FORWARD_ENABLED" envDefault:"true"`
	QueueSize int           `env:"LOG_FORWARD_QUEUE_SIZE" envDefault:"256" validate:"min=1"`
	Workers   int           `env:"LOG_FORWARD_WORKERS" envDefault:"2" validate:"min=1,max=32"`
	Timeout   time.Duration `env:"LOG_FORWARD_TIMEOUT" envDefault:"2s" validate:"gt=0"`
}

type FormConfig struct {
	MaxEntries int `env:"FORM_MAX_ENTRIES" envDefault:"5" validate:"min=1,max=5"`
}

type ServerConfig struct {
	Host           string `env:"SERVER_HOST" envDefault:"localhost"`
	Port           int    `env:"SERVER_PORT" envDefault:"3000" validate:"min=1,max=65535"`
	MaxConnections int    `env:"SERVER_MAX_CONNECTIONS" envDefault:"256" validate:"min=0"`
	BodyLimit      string `env:"SERVER_BODY_LIMIT" envDefault:"64K" validate:"required"`
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type RateLimitConfig struct {
	Enabled       bool    `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RPS           float64 `env:"RATE_LIMIT_RPS" envDefault:"20" validate:"gt=0"`
	Burst         int     `env:"RATE_LIMIT_BURST" envDefault:"40" validate:"min=1"`
	ExpireMinutes int     `env:"RATE_LIMIT_EXPIRE_MINUTES" envDefault:"3" validate:"min=1"`
}

type CacheConfig struct {
	MaxSizePow2 int           `env:"CACHE_MAX_SIZE_POW2" envDefault:"20" validate:"min=0,max=40"`
	StatsTTL    time.Duration `env:"CACHE_STATS_TTL" envDefault:"5m" validate:"gt=0"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
