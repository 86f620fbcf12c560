package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_ENV", "test-does-not-exist")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with no config file should fall back to defaults: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.Mode != "release" {
		t.Errorf("expected default mode release, got %q", cfg.Mode)
	}
	if cfg.ReadLimit != 32768 {
		t.Errorf("expected default read limit 32768, got %d", cfg.ReadLimit)
	}
	if cfg.PingPeriod != 54*time.Second {
		t.Errorf("expected default ping period 54s, got %s", cfg.PingPeriod)
	}
	if cfg.SendBuffer != 32 {
		t.Errorf("expected default send buffer 32, got %d", cfg.SendBuffer)
	}
	if cfg.MetricsTick != 60*time.Second {
		t.Errorf("expected default metrics tick 60s, got %s", cfg.MetricsTick)
	}
}
