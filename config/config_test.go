package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("want default addr :8080, got %q", cfg.HTTP.Addr)
	}
	if cfg.Cache.TTL != 30*time.Second {
		t.Fatalf("want default cache TTL 30s, got %v", cfg.Cache.TTL)
	}
	if cfg.Redis.Addr != "" {
		t.Fatalf("redis must be off by default, got %q", cfg.Redis.Addr)
	}
	if cfg.Postgres.MaxConns != 10 {
		t.Fatalf("want default max conns 10, got %d", cfg.Postgres.MaxConns)
	}
	if cfg.Tracing.Enabled {
		t.Fatal("tracing must be off by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ORDERS_HTTP_ADDR", ":9090")
	t.Setenv("ORDERS_CACHE_TTL", "90s")
	t.Setenv("ORDERS_REDIS_ADDR", "localhost:6379")
	t.Setenv("ORDERS_POSTGRES_MAX_CONNS", "25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("want :9090, got %q", cfg.HTTP.Addr)
	}
	if cfg.Cache.TTL != 90*time.Second {
		t.Fatalf("want 90s, got %v", cfg.Cache.TTL)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("want redis addr override, got %q", cfg.Redis.Addr)
	}
	if cfg.Postgres.MaxConns != 25 {
		t.Fatalf("want 25, got %d", cfg.Postgres.MaxConns)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("ORDERS_CACHE_TTL", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Fatal("want error for malformed duration")
	}
}
