// Package config loads stagehand configuration from .stagehand/stagehand.yaml,
// falling back to defaults when the file is absent and letting a few
// environment variables override the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all stagehand configuration.
type Config struct {
	// Backend is the platform API (persistence + backend extraction).
	Backend BackendConfig `yaml:"backend"`

	// Extraction selects and tunes the extraction provider.
	Extraction ExtractionConfig `yaml:"extraction"`

	// Cache is the local event cache.
	Cache CacheConfig `yaml:"cache"`

	// Logging controls the categorized file logger.
	Logging LoggingConfig `yaml:"logging"`
}

// BackendConfig configures the persistence service client.
type BackendConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// ExtractionConfig configures the extraction provider.
type ExtractionConfig struct {
	// Provider is "backend" or "gemini". Empty picks backend when a base
	// URL is configured, gemini otherwise.
	Provider      string `yaml:"provider"`
	GeminiAPIKey  string `yaml:"gemini_api_key"`
	GeminiModel   string `yaml:"gemini_model"`
	HistoryWindow int    `yaml:"history_window"`
	Timeout       string `yaml:"timeout"`
}

// CacheConfig configures the local sqlite cache.
type CacheConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig mirrors logging.Options.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"`
	Categories map[string]bool `yaml:"categories"`
}

// DefaultConfig returns the defaults used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			Timeout: "30s",
		},
		Extraction: ExtractionConfig{
			GeminiModel:   "gemini-2.0-flash",
			HistoryWindow: 8,
			Timeout:       "60s",
		},
		Cache: CacheConfig{
			Path: filepath.Join(".stagehand", "events.db"),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Path returns the config file location under the workspace.
func Path(workspace string) string {
	return filepath.Join(workspace, ".stagehand", "stagehand.yaml")
}

// Load reads configuration from a YAML file, applying defaults and then
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("STAGEHAND_BACKEND_URL"); url != "" {
		c.Backend.BaseURL = url
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Extraction.GeminiAPIKey = key
	}
	if path := os.Getenv("STAGEHAND_CACHE"); path != "" {
		c.Cache.Path = path
	}
}

// ResolveProvider picks the extraction provider for this run.
func (c *Config) ResolveProvider() string {
	if c.Extraction.Provider != "" {
		return c.Extraction.Provider
	}
	if c.Backend.BaseURL != "" {
		return "backend"
	}
	return "gemini"
}

// BackendTimeout parses the backend timeout, defaulting to 30s.
func (c *Config) BackendTimeout() time.Duration {
	return parseDuration(c.Backend.Timeout, 30*time.Second)
}

// ExtractionTimeout parses the extraction timeout, defaulting to 60s.
func (c *Config) ExtractionTimeout() time.Duration {
	return parseDuration(c.Extraction.Timeout, 60*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

// Validate reports configuration states that cannot work at all.
func (c *Config) Validate() error {
	switch c.ResolveProvider() {
	case "backend":
		if c.Backend.BaseURL == "" {
			return fmt.Errorf("extraction provider is backend but backend.base_url is empty")
		}
	case "gemini":
		if c.Extraction.GeminiAPIKey == "" {
			return fmt.Errorf("extraction provider is gemini but no API key is configured (set GEMINI_API_KEY)")
		}
	default:
		return fmt.Errorf("unknown extraction provider %q", c.Extraction.Provider)
	}
	if c.Extraction.HistoryWindow <= 0 {
		return fmt.Errorf("extraction.history_window must be positive")
	}
	return nil
}
