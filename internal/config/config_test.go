package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("PAGE_SIZE_DEFAULT", "")
	t.Setenv("DB_DRIVER", "")

	cfg := Load()

	if cfg.Auth.JWTSecret == "" {
		t.Error("expected fallback JWT secret")
	}
	if cfg.Auth.TokenTTL != 30*24*time.Hour {
		t.Errorf("TokenTTL = %v, want 720h", cfg.Auth.TokenTTL)
	}
	if cfg.Paging.DefaultSize != 5 || cfg.Paging.MaxSize != 15 {
		t.Errorf("Paging = %+v, want default 5 max 15", cfg.Paging)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("Driver = %q, want postgres", cfg.Database.Driver)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("PAGE_SIZE_MAX", "30")
	t.Setenv("AUTH_RATE_LIMIT", "0.5")
	t.Setenv("DB_DRIVER", "sqlite")

	cfg := Load()

	if cfg.Auth.JWTSecret != "s3cret" {
		t.Errorf("JWTSecret = %q", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.TokenTTL != 2*time.Hour {
		t.Errorf("TokenTTL = %v, want 2h", cfg.Auth.TokenTTL)
	}
	if cfg.Paging.MaxSize != 30 {
		t.Errorf("MaxSize = %d, want 30", cfg.Paging.MaxSize)
	}
	if cfg.AuthRateLimit != 0.5 {
		t.Errorf("AuthRateLimit = %v, want 0.5", cfg.AuthRateLimit)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Driver = %q, want sqlite", cfg.Database.Driver)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("PAGE_SIZE_DEFAULT", "many")
	t.Setenv("TOKEN_TTL", "forever")

	cfg := Load()

	if cfg.Paging.DefaultSize != 5 {
		t.Errorf("DefaultSize = %d, want 5", cfg.Paging.DefaultSize)
	}
	if cfg.Auth.TokenTTL != 30*24*time.Hour {
		t.Errorf("TokenTTL = %v, want 720h", cfg.Auth.TokenTTL)
	}
}
