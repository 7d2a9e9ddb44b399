package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("POLL_INTERVAL_SECONDS", "")
	t.Setenv("CLIENT_ACTIVATION_THRESHOLD", "")

	cfg := Load()
	if cfg.Addr() != ":8080" {
		t.Fatalf("unexpected addr: %s", cfg.Addr())
	}
	if cfg.PollInterval != 5*time.Second {
		t.Fatalf("unexpected poll interval: %s", cfg.PollInterval)
	}
	if cfg.ClientActivationThreshold != 3 {
		t.Fatalf("unexpected threshold: %d", cfg.ClientActivationThreshold)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("POLL_INTERVAL_SECONDS", "0")
	t.Setenv("CLIENT_ACTIVATION_THRESHOLD", "not-a-number")
	t.Setenv("CORS_ORIGINS", " https://a.example, ,https://b.example")

	cfg := Load()
	if cfg.Addr() != ":9090" {
		t.Fatalf("unexpected addr: %s", cfg.Addr())
	}
	if cfg.PollInterval != 0 {
		t.Fatalf("zero seconds should disable polling, got %s", cfg.PollInterval)
	}
	if cfg.ClientActivationThreshold != 3 {
		t.Fatalf("invalid value should fall back, got %d", cfg.ClientActivationThreshold)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", cfg.CORSOrigins)
	}
}
