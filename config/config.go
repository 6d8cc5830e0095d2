// Package config loads service configuration from an optional config.yaml
// and environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ai-ready/backend/analyzer"
)

// Config holds the service settings.
type Config struct {
	Port            string  `mapstructure:"port"`
	GinMode         string  `mapstructure:"gin_mode"`
	DataDir         string  `mapstructure:"data_dir"`
	DatabasePath    string  `mapstructure:"database_path"`
	ScrapeTimeoutMs int     `mapstructure:"scrape_timeout_ms"`
	ProbeTimeoutMs  int     `mapstructure:"probe_timeout_ms"`
	MaxBodyBytes    int64   `mapstructure:"max_body_bytes"`
	RateLimitRPS    float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst  int     `mapstructure:"rate_limit_burst"`

	// Reputation overrides the engine's built-in domain lists when set,
	// so the allowlist can change without a redeploy.
	Reputation ReputationConfig `mapstructure:"reputation"`
}

// ReputationConfig overrides the domain reputation lists.
type ReputationConfig struct {
	DocPatterns []string `mapstructure:"doc_patterns"`
	TopTier     []string `mapstructure:"top_tier"`
	SecondTier  []string `mapstructure:"second_tier"`
}

// Load reads config.yaml (if present) and AI_READY_* environment variables.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("port", "8082")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("data_dir", "data")
	v.SetDefault("database_path", "data/reports.db")
	v.SetDefault("scrape_timeout_ms", 15000)
	v.SetDefault("probe_timeout_ms", 3000)
	v.SetDefault("max_body_bytes", 6<<20)
	v.SetDefault("rate_limit_rps", 2)
	v.SetDefault("rate_limit_burst", 5)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("AI_READY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// EngineConfig builds the scoring engine configuration, applying any
// reputation-list overrides from the service config.
func (c *Config) EngineConfig() *analyzer.Config {
	engine := analyzer.DefaultConfig()

	if c.ProbeTimeoutMs > 0 {
		engine.ProbeTimeout = time.Duration(c.ProbeTimeoutMs) * time.Millisecond
	}
	if len(c.Reputation.DocPatterns) > 0 {
		engine.DocPatterns = c.Reputation.DocPatterns
	}
	if len(c.Reputation.TopTier) > 0 {
		engine.TopTier = c.Reputation.TopTier
	}
	if len(c.Reputation.SecondTier) > 0 {
		engine.SecondTier = c.Reputation.SecondTier
	}

	return engine
}

// ScrapeTimeout returns the page fetch timeout as a duration.
func (c *Config) ScrapeTimeout() time.Duration {
	return time.Duration(c.ScrapeTimeoutMs) * time.Millisecond
}
