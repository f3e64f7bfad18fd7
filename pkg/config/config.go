// Package config holds application settings for the logsift CLI.
package config

import (
	"os"
	"strings"

	"github.com/go-errors/errors"
	"gopkg.in/yaml.v3"
)

// DefaultModel is the fallback LLM model when none is specified.
const DefaultModel = "perplexity/sonar"

// DefaultMaxLogBytes caps the size of an ingested log file at 10 MiB.
const DefaultMaxLogBytes = 10 * 1024 * 1024

// Analysis depths understood by the CLI. Each resolves to a record budget
// for the relevance-selected excerpt handed to the LLM.
const (
	DepthQuick    = "quick"
	DepthStandard = "standard"
	DepthDeep     = "deep"
)

// depthBudgets maps each depth preset to its record budget.
var depthBudgets = map[string]int{
	DepthQuick:    20,
	DepthStandard: 50,
	DepthDeep:     100,
}

// QuickActions are canned analysis prompts offered by the CLI.
var QuickActions = map[string]string{
	"find_errors":    "Find all errors and exceptions in the logs",
	"list_users":     "List all unique users found in the logs",
	"api_summary":    "Provide a summary of all API calls and their status",
	"error_patterns": "Identify common error patterns and their root causes",
}

// Config is the file-backed configuration, overlaid on defaults.
type Config struct {
	DBPath      string        `yaml:"db_path"`
	Model       string        `yaml:"model"`
	Depth       string        `yaml:"depth"`
	MaxLogBytes int64         `yaml:"max_log_bytes"`
	Logging     LoggingConfig `yaml:"logging"`
}

// LoggingConfig controls CLI diagnostic output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "console"
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DBPath:      "logsift.duckdb",
		Depth:       DepthStandard,
		MaxLogBytes: DefaultMaxLogBytes,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Errorf("parse config: %w", err)
	}
	if _, ok := depthBudgets[strings.ToLower(cfg.Depth)]; !ok {
		return nil, errors.Errorf("unknown analysis depth %q", cfg.Depth)
	}
	return cfg, nil
}

// MaxLogsForDepth resolves a depth preset to its record budget, falling
// back to the standard budget for unknown depths.
func MaxLogsForDepth(depth string) int {
	if budget, ok := depthBudgets[strings.ToLower(depth)]; ok {
		return budget
	}
	return depthBudgets[DepthStandard]
}

// ResolveModel returns the model to use, checking the explicit value
// first, then the MODEL_NAME environment variable, and finally the default.
func ResolveModel(model string) string {
	if model != "" {
		return model
	}
	if env := os.Getenv("MODEL_NAME"); env != "" {
		return env
	}
	return DefaultModel
}
