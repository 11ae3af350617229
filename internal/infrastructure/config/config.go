package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Upstream UpstreamConfig
	Redis    RedisConfig
	Audit    AuditConfig
}

type UpstreamConfig struct {
	BaseURL string        `env:"UPSTREAM_BASE_URL, default=https://jsonplaceholder.typicode.com"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT,  default=10s"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,     default=localhost:6379"`
	DB       int           `env:"REDIS_DB,       default=0"`
	CacheTTL time.Duration `env:"POST_CACHE_TTL, default=60s"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	return &cfg, nil
}
