// Package config provides configuration management for the publishing pipeline.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"blogpipe/internal/apperr"
	"blogpipe/internal/models"
)

// Environment variables read by Load.
const (
	EnvGhostURL         = "GHOST_URL"
	EnvGhostAdminAPIKey = "GHOST_ADMIN_API_KEY"
	EnvMaxRetries       = "MAX_RETRIES"
	EnvTimeoutSeconds   = "TIMEOUT_SECONDS"
	EnvLogLevel         = "LOG_LEVEL"
)

// Configuration validation errors.
var (
	ErrMissingGhostURL      = errors.New("ghost url is required (GHOST_URL)")
	ErrMissingAdminAPIKey   = errors.New("ghost admin api key is required (GHOST_ADMIN_API_KEY)")
	ErrInvalidGhostURL      = errors.New("ghost url must start with http:// or https://")
	ErrInvalidMaxRetries    = errors.New("max_retries must be non-negative")
	ErrInvalidTimeout       = errors.New("timeout_seconds must be at least 1")
	ErrInvalidLogLevel      = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrMissingLanguage      = errors.New("pipeline.source_lang and pipeline.target_lang are required")
	ErrInvalidPublishStatus = errors.New("publish.status must be 'draft' or 'published'")
)

// Config represents the complete pipeline configuration.
type Config struct {
	Ghost    GhostConfig    `yaml:"ghost"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Publish  PublishConfig  `yaml:"publish"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GhostConfig holds the CMS endpoint and credentials.
// The admin key is only ever read from the environment.
type GhostConfig struct {
	URL         string `yaml:"url"`
	AdminAPIKey string `yaml:"-"`
}

// PipelineConfig holds settings shared by the fetch and publish stages.
type PipelineConfig struct {
	SourceLang     string `yaml:"source_lang"`
	TargetLang     string `yaml:"target_lang"`
	UserAgent      string `yaml:"user_agent"`
	MaxRetries     int    `yaml:"max_retries"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	BufferSizeKb   int    `yaml:"buffer_size_kb"`
}

// PublishConfig holds defaults for created posts.
type PublishConfig struct {
	Status       string   `yaml:"status"`
	Tags         []string `yaml:"tags"`
	Featured     bool     `yaml:"featured"`
	StripTitle   bool     `yaml:"strip_title"`
	SanitizeHTML bool     `yaml:"sanitize_html"`
	Archive      bool     `yaml:"archive"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file or environment overrides exist.
func Default() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			SourceLang:     "en",
			TargetLang:     "ko",
			UserAgent:      "blogpipe/1.0 (+article translation pipeline)",
			MaxRetries:     3,
			TimeoutSeconds: 30,
			BufferSizeKb:   10 * 1024,
		},
		Publish: PublishConfig{
			Status:       string(models.StatusPublished),
			SanitizeHTML: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, a .env
// file in the working directory and finally the process environment.
// Variables already present in the environment are never overwritten by .env.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read config file: %w", apperr.ErrConfig, err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: failed to parse YAML: %w", apperr.ErrConfig, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: failed to read .env: %w", apperr.ErrConfig, err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrConfig, err)
	}

	return cfg, nil
}

// applyEnv overlays environment variables on top of file values.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvGhostURL); ok {
		c.Ghost.URL = v
	}

	if v, ok := lookup(EnvGhostAdminAPIKey); ok {
		c.Ghost.AdminAPIKey = v
	}

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}

	ints := []struct {
		name   string
		target *int
	}{
		{EnvMaxRetries, &c.Pipeline.MaxRetries},
		{EnvTimeoutSeconds, &c.Pipeline.TimeoutSeconds},
	}

	for _, iv := range ints {
		v, ok := lookup(iv.name)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}

		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer: %w", apperr.ErrConfig, iv.name, err)
		}

		*iv.target = n
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Ghost.URL == "" {
		return ErrMissingGhostURL
	}

	if !strings.HasPrefix(c.Ghost.URL, "http://") && !strings.HasPrefix(c.Ghost.URL, "https://") {
		return ErrInvalidGhostURL
	}

	if c.Ghost.AdminAPIKey == "" {
		return ErrMissingAdminAPIKey
	}

	if c.Pipeline.MaxRetries < 0 {
		return ErrInvalidMaxRetries
	}

	if c.Pipeline.TimeoutSeconds < 1 {
		return ErrInvalidTimeout
	}

	if c.Pipeline.SourceLang == "" || c.Pipeline.TargetLang == "" {
		return ErrMissingLanguage
	}

	if _, err := models.ParseStatus(c.Publish.Status); err != nil {
		return ErrInvalidPublishStatus
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return ErrInvalidLogLevel
	}

	return nil
}

// Timeout returns the HTTP timeout used for fetching and publishing.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Pipeline.TimeoutSeconds) * time.Second
}

// BaseURL returns the Ghost URL without a trailing slash.
func (c *Config) BaseURL() string {
	return strings.TrimRight(c.Ghost.URL, "/")
}

// String returns a string representation of the config with the key redacted.
func (c *Config) String() string {
	key := "<unset>"
	if c.Ghost.AdminAPIKey != "" {
		key = "<redacted>"
	}

	return fmt.Sprintf(
		"Config{GhostURL: %s, AdminKey: %s, Timeout: %ds, Langs: %s->%s}",
		c.Ghost.URL,
		key,
		c.Pipeline.TimeoutSeconds,
		c.Pipeline.SourceLang,
		c.Pipeline.TargetLang,
	)
}
