package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SPLITKARO_JWT_SECRET", "a-test-secret-at-least-16-chars")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.HTTPPort != 8080 {
		t.Errorf("HTTPPort = %d, want 8080", cfg.HTTPPort)
	}
	if cfg.TokenTTL() != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want 24h", cfg.TokenTTL())
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SPLITKARO_JWT_SECRET", "a-test-secret-at-least-16-chars")
	t.Setenv("SPLITKARO_ENV", "production")
	t.Setenv("SPLITKARO_HTTP_PORT", "9000")
	t.Setenv("SPLITKARO_LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Env != "production" || cfg.HTTPPort != 9000 || cfg.LogLevel != "warn" {
		t.Errorf("environment overrides not applied: %+v", cfg)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	t.Run("missing jwt secret", func(t *testing.T) {
		t.Setenv("SPLITKARO_JWT_SECRET", "")

		if _, err := Load(); err == nil {
			t.Fatal("expected validation error for missing jwt secret")
		}
	})

	t.Run("short jwt secret", func(t *testing.T) {
		t.Setenv("SPLITKARO_JWT_SECRET", "too-short")

		if _, err := Load(); err == nil {
			t.Fatal("expected validation error for short jwt secret")
		}
	})

	t.Run("bad log level", func(t *testing.T) {
		t.Setenv("SPLITKARO_JWT_SECRET", "a-test-secret-at-least-16-chars")
		t.Setenv("SPLITKARO_LOG_LEVEL", "loud")

		_, err := Load()
		if err == nil {
			t.Fatal("expected validation error for bad log level")
		}
		if !strings.Contains(err.Error(), "validate config") {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
