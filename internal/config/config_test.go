package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("STORE_TIMEOUT", "")
	t.Setenv("SLOT_TTL", "")
	cfg := Load()
	if cfg.Port != "5055" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.StoreTimeout != 5*time.Second {
		t.Fatalf("expected default store timeout, got %s", cfg.StoreTimeout)
	}
	if cfg.CatalogTimeout != 15*time.Second {
		t.Fatalf("expected default catalog timeout, got %s", cfg.CatalogTimeout)
	}
	if cfg.SlotTTL != 24*time.Hour {
		t.Fatalf("expected default slot TTL, got %s", cfg.SlotTTL)
	}
	if cfg.RedisTLS {
		t.Fatalf("expected redis TLS disabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_URL", "postgres://user@host/clinic")
	t.Setenv("CATALOG_BASE_URL", "https://clinic.example.com/api")
	t.Setenv("STORE_TIMEOUT", "2s")
	t.Setenv("SLOT_TTL", "1h")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("LINK_BASE_URL", "https://clinic.example.com")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://user@host/clinic" {
		t.Fatalf("expected db override, got %s", cfg.DatabaseURL)
	}
	if cfg.CatalogBaseURL != "https://clinic.example.com/api" {
		t.Fatalf("expected catalog override, got %s", cfg.CatalogBaseURL)
	}
	if cfg.StoreTimeout != 2*time.Second {
		t.Fatalf("expected store timeout override, got %s", cfg.StoreTimeout)
	}
	if cfg.SlotTTL != time.Hour {
		t.Fatalf("expected slot TTL override, got %s", cfg.SlotTTL)
	}
	if !cfg.RedisTLS {
		t.Fatalf("expected redis TLS override")
	}
	if cfg.LinkBaseURL != "https://clinic.example.com" {
		t.Fatalf("expected link base override, got %s", cfg.LinkBaseURL)
	}
}

func TestBadDurationFallsBack(t *testing.T) {
	t.Setenv("STORE_TIMEOUT", "not-a-duration")
	cfg := Load()
	if cfg.StoreTimeout != 5*time.Second {
		t.Fatalf("expected fallback store timeout, got %s", cfg.StoreTimeout)
	}
}
