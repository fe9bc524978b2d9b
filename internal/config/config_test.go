package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.ServerPort == "" {
		t.Fatalf("expected default server port")
	}
	if cfg.PostgresURL == "" {
		t.Fatalf("expected default postgres url")
	}
	if cfg.BackendURL != "http://localhost:5000" {
		t.Fatalf("unexpected backend url %q", cfg.BackendURL)
	}
	if cfg.BackendTimeout != 30*time.Second {
		t.Fatalf("unexpected backend timeout %v", cfg.BackendTimeout)
	}
	if !cfg.TerrainEnabled {
		t.Fatalf("expected terrain enabled by default")
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("unexpected session ttl %v", cfg.SessionTTL)
	}
	if !cfg.RedisEnabled || cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("expected redis enabled on localhost, got %v %q", cfg.RedisEnabled, cfg.RedisAddr)
	}
	if cfg.TerrainCacheDir != "" {
		t.Fatalf("expected default terrain cache dir, got %q", cfg.TerrainCacheDir)
	}
}

func TestLoadRedisDisabled(t *testing.T) {
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("REDIS_ADDR", "")

	cfg := Load()
	if cfg.RedisEnabled {
		t.Fatalf("expected redis disabled")
	}
	// An empty variable is treated as unset and keeps the default address.
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("unexpected redis addr %q", cfg.RedisAddr)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", ":9000")
	t.Setenv("POSTGRES_URL", "postgres://example")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("BACKEND_URL", "http://estimator:5000")
	t.Setenv("BACKEND_TIMEOUT", "5s")
	t.Setenv("TERRAIN_ENABLED", "false")
	t.Setenv("TERRAIN_CACHE_DIR", "/var/cache/srtm")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("SENTRY_DSN", "https://key@sentry.example/1")

	cfg := Load()
	if cfg.ServerPort != ":9000" {
		t.Fatalf("expected override port")
	}
	if cfg.PostgresURL != "postgres://example" {
		t.Fatalf("expected override postgres")
	}
	if cfg.RedisAddr != "redis:6379" {
		t.Fatalf("expected override redis")
	}
	if cfg.JWTSecret != "secret" {
		t.Fatalf("expected override secret")
	}
	if cfg.BackendURL != "http://estimator:5000" || cfg.BackendTimeout != 5*time.Second {
		t.Fatalf("expected override backend")
	}
	if cfg.TerrainEnabled || cfg.TerrainCacheDir != "/var/cache/srtm" {
		t.Fatalf("expected terrain disabled with custom cache dir")
	}
	if cfg.SessionTTL != time.Hour {
		t.Fatalf("expected override ttl")
	}
	if cfg.SentryDSN == "" {
		t.Fatalf("expected sentry dsn")
	}
}
