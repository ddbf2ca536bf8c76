// Package config provides configuration loading for fscdex.
//
// Configuration is loaded from a YAML file and overridden by environment
// variables, with hardcoded defaults underneath.
package config

import (
	"fmt"

	"github.com/hanlabs/fscdex/internal/collab"
	"github.com/hanlabs/fscdex/internal/logging"
)

// Mode names accepted by pipeline.mode.
const (
	ModeRuleOnly     = "rule_only"
	ModeHybrid       = "hybrid"
	ModeFallbackOnly = "fallback_only"
)

// Config holds the complete fscdex configuration.
type Config struct {
	Pipeline PipelineConfig `koanf:"pipeline"`
	Gemini   collab.Config  `koanf:"gemini"`
	Logging  logging.Config `koanf:"logging"`
}

// PipelineConfig holds extraction-controller configuration.
type PipelineConfig struct {
	Mode       string `koanf:"mode"`
	MaxRetries int    `koanf:"max_retries"`
}

// applyDefaults fills in zero values after loading.
func applyDefaults(cfg *Config) {
	if cfg.Pipeline.Mode == "" {
		cfg.Pipeline.Mode = ModeHybrid
	}
	if cfg.Pipeline.MaxRetries == 0 {
		cfg.Pipeline.MaxRetries = 3
	}
	def := logging.NewDefaultConfig()
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = def.Format
	}
	if cfg.Logging.Fields == nil {
		cfg.Logging.Fields = def.Fields
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.Pipeline.Mode {
	case ModeRuleOnly, ModeHybrid, ModeFallbackOnly:
	default:
		return fmt.Errorf("invalid pipeline mode %q", c.Pipeline.Mode)
	}
	if c.Pipeline.MaxRetries < 0 {
		return fmt.Errorf("pipeline max_retries must be >= 0, got %d", c.Pipeline.MaxRetries)
	}
	// Rule-only extraction never calls the collaborator, so the key is
	// optional in that mode.
	if c.Pipeline.Mode != ModeRuleOnly && c.Gemini.APIKey == "" {
		return fmt.Errorf("gemini api_key required for %s mode", c.Pipeline.Mode)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}
