package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEffectkitEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"EFFECTKIT_MAX_CASCADE_PASSES",
		"EFFECTKIT_TAG_CONTAINER_SIZE_BITS",
		"EFFECTKIT_CONTENT_DIR",
		"EFFECTKIT_CONTENT_LOAD_TIMEOUT",
		"EFFECTKIT_LOG_LEVEL",
		"EFFECTKIT_METRICS_ENABLED",
		"EFFECTKIT_CUE_BROADCAST_BUFFER",
		"EFFECTKIT_CUE_BROADCAST_RATE",
	}
	for _, k := range keys {
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		envVars     map[string]string
		expectError bool
		validate    func(t *testing.T, config *Config)
	}{
		{
			name:        "default configuration",
			envVars:     map[string]string{},
			expectError: false,
			validate: func(t *testing.T, config *Config) {
				assert.Equal(t, 8, config.MaxAttributeCascadePasses)
				assert.Equal(t, 6, config.TagContainerSizeBits)
				assert.Equal(t, "./content", config.ContentDir)
				assert.Equal(t, 5*time.Second, config.ContentLoadTimeout)
				assert.Equal(t, "info", config.LogLevel)
				assert.True(t, config.MetricsEnabled)
				assert.Equal(t, 64, config.CueBroadcastBufferSize)
				assert.Equal(t, 63, config.MaxContainerCount())
			},
		},
		{
			name: "custom configuration from environment",
			envVars: map[string]string{
				"EFFECTKIT_MAX_CASCADE_PASSES":      "3",
				"EFFECTKIT_TAG_CONTAINER_SIZE_BITS": "4",
				"EFFECTKIT_CONTENT_DIR":             "/custom/content",
				"EFFECTKIT_CONTENT_LOAD_TIMEOUT":    "2s",
				"EFFECTKIT_LOG_LEVEL":               "debug",
				"EFFECTKIT_METRICS_ENABLED":         "false",
				"EFFECTKIT_CUE_BROADCAST_BUFFER":    "16",
				"EFFECTKIT_CUE_BROADCAST_RATE":      "10",
			},
			expectError: false,
			validate: func(t *testing.T, config *Config) {
				assert.Equal(t, 3, config.MaxAttributeCascadePasses)
				assert.Equal(t, 4, config.TagContainerSizeBits)
				assert.Equal(t, "/custom/content", config.ContentDir)
				assert.Equal(t, 2*time.Second, config.ContentLoadTimeout)
				assert.Equal(t, "debug", config.LogLevel)
				assert.False(t, config.MetricsEnabled)
				assert.Equal(t, 16, config.CueBroadcastBufferSize)
				assert.Equal(t, float64(10), config.CueBroadcastRatePerSecond)
				assert.Equal(t, 15, config.MaxContainerCount())
			},
		},
		{
			name: "invalid cascade passes",
			envVars: map[string]string{
				"EFFECTKIT_MAX_CASCADE_PASSES": "0",
			},
			expectError: true,
		},
		{
			name: "invalid tag container size bits",
			envVars: map[string]string{
				"EFFECTKIT_TAG_CONTAINER_SIZE_BITS": "20",
			},
			expectError: true,
		},
		{
			name: "invalid log level",
			envVars: map[string]string{
				"EFFECTKIT_LOG_LEVEL": "verbose",
			},
			expectError: true,
		},
		{
			name: "invalid broadcast rate",
			envVars: map[string]string{
				"EFFECTKIT_CUE_BROADCAST_RATE": "0",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEffectkitEnv(t)
			for k, v := range tt.envVars {
				require.NoError(t, os.Setenv(k, v))
			}
			defer clearEffectkitEnv(t)

			cfg, err := Load()

			if tt.expectError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestConfig_MaxContainerCount(t *testing.T) {
	cfg := &Config{TagContainerSizeBits: 1}
	assert.Equal(t, 1, cfg.MaxContainerCount())

	cfg.TagContainerSizeBits = 6
	assert.Equal(t, 63, cfg.MaxContainerCount())
}
