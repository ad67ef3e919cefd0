// Package config holds the server's runtime settings.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// Environment variables read by Load.
const (
	EnvLogLevel       = "FEATURE_MCP_LOG_LEVEL"
	EnvImageCacheSize = "FEATURE_MCP_IMAGE_CACHE_SIZE"
	EnvMaxFeatures    = "FEATURE_MCP_MAX_FEATURES"
)

// Config holds runtime configuration for the MCP server.
type Config struct {
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `json:"log_level"`

	// ImageCacheSize bounds both the decoded image cache and the
	// detection cache.
	ImageCacheSize int `json:"image_cache_size"`

	// MaxFeatures caps how many features a single response lists.
	MaxFeatures int `json:"max_features"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:       "info",
		ImageCacheSize: 16,
		MaxFeatures:    200,
	}
}

// Validate normalizes the log level and clamps sizes to safe ranges.
// An unknown log level is an error.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "":
		c.LogLevel = "info"
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.ImageCacheSize <= 0 {
		c.ImageCacheSize = 16
	}
	if c.MaxFeatures <= 0 {
		c.MaxFeatures = 200
	}
	return nil
}

// Load builds a Config from defaults overridden by the environment. When
// envFile is not empty it is read first with godotenv; variables already set
// in the process environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, errors.Wrapf(err, "reading %s", envFile)
		}
	}

	cfg := DefaultConfig()
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvImageCacheSize); ok {
		n, err := cast.ToIntE(strings.TrimSpace(v))
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %s", EnvImageCacheSize)
		}
		cfg.ImageCacheSize = n
	}
	if v, ok := os.LookupEnv(EnvMaxFeatures); ok {
		n, err := cast.ToIntE(strings.TrimSpace(v))
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %s", EnvMaxFeatures)
		}
		cfg.MaxFeatures = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
