// Package config provides configuration management for the effect engine.
// It handles environment variable loading, validation, and provides secure
// defaults for embedding the engine in a host game.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Config holds environment-derived tunables for the effect engine's
// ambient concerns. The fields are plain exported values with no
// locking; the mutex guards only the MaxContainerCount getter.
// pkg/broadcast does not read Config: the caller copies the values it
// needs into a broadcast.Config.
type Config struct {
	mu sync.RWMutex `json:"-"`

	// MaxAttributeCascadePasses bounds how many OnValueChanged cascade
	// recompute passes an attribute set tolerates before treating the
	// cascade as a contract error (spec.md §4.2, Open Question 3).
	MaxAttributeCascadePasses int `json:"max_attribute_cascade_passes"`

	// TagContainerSizeBits is numBitsForContainerSize from spec.md §4.1:
	// MaxContainerCount reports 2^bits-1. pkg/tags does not read it; its
	// wire encoder uses the fixed limit tags.MaxWireCount (63).
	TagContainerSizeBits int `json:"tag_container_size_bits"`

	// ContentDir is the directory pkg/content reads tag/effect YAML
	// catalogs from.
	ContentDir string `json:"content_dir"`

	// ContentLoadTimeout is loaded and validated here, but
	// pkg/content.Load takes no deadline and does not read it.
	ContentLoadTimeout time.Duration `json:"content_load_timeout"`

	// LogLevel controls logrus verbosity ("debug", "info", "warn", "error").
	LogLevel string `json:"log_level"`

	// MetricsEnabled toggles whether pkg/telemetry registers and exposes
	// Prometheus collectors.
	MetricsEnabled bool `json:"metrics_enabled"`

	// CueBroadcastBufferSize is the per-connection outbound channel depth
	// used by pkg/broadcast.
	CueBroadcastBufferSize int `json:"cue_broadcast_buffer_size"`

	// CueBroadcastRatePerSecond is the per-connection token-bucket refill
	// rate used by pkg/broadcast to shed load on slow observers.
	CueBroadcastRatePerSecond float64 `json:"cue_broadcast_rate_per_second"`
}

// Load creates a new Config instance by reading from environment variables
// and applying secure, conservative defaults. It validates all configuration
// values and returns an error if any are missing or invalid.
func Load() (*Config, error) {
	logrus.WithFields(logrus.Fields{
		"function": "Load",
		"package":  "config",
	}).Debug("entering Load")

	cfg := &Config{
		MaxAttributeCascadePasses: getEnvAsInt("EFFECTKIT_MAX_CASCADE_PASSES", 8),
		TagContainerSizeBits:      getEnvAsInt("EFFECTKIT_TAG_CONTAINER_SIZE_BITS", 6),
		ContentDir:                getEnvAsString("EFFECTKIT_CONTENT_DIR", "./content"),
		ContentLoadTimeout:        getEnvAsDuration("EFFECTKIT_CONTENT_LOAD_TIMEOUT", 5*time.Second),
		LogLevel:                  getEnvAsString("EFFECTKIT_LOG_LEVEL", "info"),
		MetricsEnabled:            getEnvAsBool("EFFECTKIT_METRICS_ENABLED", true),
		CueBroadcastBufferSize:    getEnvAsInt("EFFECTKIT_CUE_BROADCAST_BUFFER", 64),
		CueBroadcastRatePerSecond: getEnvAsFloat64("EFFECTKIT_CUE_BROADCAST_RATE", 50),
	}

	if err := cfg.validate(); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Load",
			"package":  "config",
			"error":    err,
		}).Error("configuration validation failed")
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function":    "Load",
		"package":     "config",
		"content_dir": cfg.ContentDir,
		"log_level":   cfg.LogLevel,
	}).Debug("exiting Load - configuration successfully loaded and validated")

	return cfg, nil
}

func (c *Config) validate() error {
	if err := c.validateAttributeSettings(); err != nil {
		return err
	}
	if err := c.validateTagSettings(); err != nil {
		return err
	}
	if err := c.validateContentSettings(); err != nil {
		return err
	}
	if err := c.validateLogLevel(); err != nil {
		return err
	}
	if err := c.validateBroadcastSettings(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAttributeSettings() error {
	if c.MaxAttributeCascadePasses < 1 {
		return fmt.Errorf("max attribute cascade passes must be at least 1, got %d", c.MaxAttributeCascadePasses)
	}
	return nil
}

func (c *Config) validateTagSettings() error {
	if c.TagContainerSizeBits < 1 || c.TagContainerSizeBits > 15 {
		return fmt.Errorf("tag container size bits must be between 1 and 15, got %d", c.TagContainerSizeBits)
	}
	return nil
}

func (c *Config) validateContentSettings() error {
	if c.ContentDir == "" {
		return fmt.Errorf("content dir must not be empty")
	}
	if c.ContentLoadTimeout < time.Millisecond {
		return fmt.Errorf("content load timeout must be at least 1ms, got %v", c.ContentLoadTimeout)
	}
	return nil
}

func (c *Config) validateLogLevel() error {
	valid := []string{"debug", "info", "warn", "error"}
	for _, level := range valid {
		if strings.EqualFold(c.LogLevel, level) {
			return nil
		}
	}
	return fmt.Errorf("log level must be one of %v, got %s", valid, c.LogLevel)
}

func (c *Config) validateBroadcastSettings() error {
	if c.CueBroadcastBufferSize < 1 {
		return fmt.Errorf("cue broadcast buffer size must be at least 1, got %d", c.CueBroadcastBufferSize)
	}
	if c.CueBroadcastRatePerSecond <= 0 {
		return fmt.Errorf("cue broadcast rate per second must be greater than 0, got %f", c.CueBroadcastRatePerSecond)
	}
	return nil
}

// MaxContainerCount returns the maximum number of tags a TagContainer may
// encode on the wire: 2^TagContainerSizeBits - 1.
func (c *Config) MaxContainerCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return (1 << uint(c.TagContainerSizeBits)) - 1
}

// Helper functions for environment variable parsing with type safety and
// defaults, in the style of the engine's host application config loaders.

func getEnvAsString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
