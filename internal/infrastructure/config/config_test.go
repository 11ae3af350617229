package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("unexpected default port %q", cfg.Port)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("unexpected default token ttl %v", cfg.TokenTTL)
	}
	if cfg.Upstream.BaseURL == "" {
		t.Fatalf("expected a default upstream base url")
	}
	if cfg.Redis.CacheTTL != 60*time.Second {
		t.Fatalf("unexpected default cache ttl %v", cfg.Redis.CacheTTL)
	}
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when JWT_SECRET is unset")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("UPSTREAM_BASE_URL", "http://localhost:9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("unexpected token ttl %v", cfg.TokenTTL)
	}
	if cfg.Upstream.BaseURL != "http://localhost:9000" {
		t.Fatalf("unexpected upstream base url %q", cfg.Upstream.BaseURL)
	}
}
