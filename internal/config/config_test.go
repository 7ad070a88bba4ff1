package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoadFrom_Valid(t *testing.T) {
	p := writeConfig(t, `server:
  port: ":9000"
postgres:
  dsn: "postgres://x"
cache:
  redis_host: "localhost:6379"
  account_cache_enabled: true
  account_cache_ttl: 10m
rate_limiter:
  interval: 1h
  user_limit: 20
  enable_user_limiter: true
`)
	cfg := LoadFrom(p)
	if cfg.Postgres.DSN != "postgres://x" {
		t.Fatalf("unexpected postgres dsn: %q", cfg.Postgres.DSN)
	}
	if cfg.Server.Port != ":9000" {
		t.Fatalf("unexpected port: %q", cfg.Server.Port)
	}
	if cfg.RateLimiter.UserLimit != 20 {
		t.Fatalf("unexpected user_limit: %d", cfg.RateLimiter.UserLimit)
	}
	if cfg.RateLimiter.Interval.Std() != time.Hour {
		t.Fatalf("unexpected interval: %v", cfg.RateLimiter.Interval.Std())
	}
	if cfg.Cache.AccountCacheTTL.Std() != 10*time.Minute {
		t.Fatalf("unexpected cache ttl: %v", cfg.Cache.AccountCacheTTL.Std())
	}
}

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	if cfg.Server.Port != ":8080" {
		t.Fatalf("expected default port, got %q", cfg.Server.Port)
	}
	if cfg.Logger.Level != "info" {
		t.Fatalf("expected default level, got %q", cfg.Logger.Level)
	}
}

func TestLoadFrom_PanicsOnInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yml  string
	}{
		{name: "broken yaml", yml: "server: ["},
		{name: "empty port", yml: "server:\n  port: \"\"\n"},
		{name: "invalid rate interval", yml: "rate_limiter:\n  interval: 0s\n"},
		{name: "negative user limit", yml: "rate_limiter:\n  user_limit: -1\n"},
		{name: "cache enabled without redis", yml: "cache:\n  account_cache_enabled: true\n"},
		{name: "bad duration", yml: "rate_limiter:\n  interval: soon\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := writeConfig(t, tc.yml)
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic")
				}
			}()
			_ = LoadFrom(p)
		})
	}
}

func TestLoad_UsesConfigPathEnv(t *testing.T) {
	p := writeConfig(t, `postgres:
  dsn: "postgres://env"
`)
	t.Setenv("CONFIG_PATH", p)
	cfg := Load()
	if cfg.Postgres.DSN != "postgres://env" {
		t.Fatalf("expected CONFIG_PATH to be used")
	}
}
