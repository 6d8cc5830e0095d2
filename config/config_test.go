package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8082" {
		t.Errorf("Expected default port 8082, got %q", cfg.Port)
	}
	if cfg.DatabasePath != "data/reports.db" {
		t.Errorf("Unexpected database path: %q", cfg.DatabasePath)
	}
	if cfg.ScrapeTimeout() != 15*time.Second {
		t.Errorf("Expected 15s scrape timeout, got %v", cfg.ScrapeTimeout())
	}
	if cfg.RateLimitRPS != 2 || cfg.RateLimitBurst != 5 {
		t.Errorf("Unexpected rate limit defaults: %f/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestEngineConfigOverrides(t *testing.T) {
	cfg := &Config{
		ProbeTimeoutMs: 1500,
		Reputation: ReputationConfig{
			DocPatterns: []string{"wiki."},
			TopTier:     []string{"internal.example"},
		},
	}

	engine := cfg.EngineConfig()
	if engine.ProbeTimeout != 1500*time.Millisecond {
		t.Errorf("Expected probe timeout override, got %v", engine.ProbeTimeout)
	}
	if len(engine.DocPatterns) != 1 || engine.DocPatterns[0] != "wiki." {
		t.Errorf("Expected doc pattern override, got %v", engine.DocPatterns)
	}
	if len(engine.TopTier) != 1 {
		t.Errorf("Expected top tier override, got %v", engine.TopTier)
	}
	// Untouched lists keep the engine defaults.
	if len(engine.SecondTier) == 0 {
		t.Error("Expected default second tier list to survive")
	}
	if len(engine.Weights) == 0 {
		t.Error("Expected the default weight table")
	}
}

func TestEngineConfigDefaults(t *testing.T) {
	engine := (&Config{}).EngineConfig()
	if engine.ProbeTimeout != 3*time.Second {
		t.Errorf("Expected default probe timeout, got %v", engine.ProbeTimeout)
	}
}
