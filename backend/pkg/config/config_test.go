package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("TOOL_TIMEOUT", "")
	t.Setenv("WARM_TOOLS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 20*time.Second, cfg.ToolTimeout)
	assert.True(t, cfg.WarmTools)
	assert.Equal(t, "ffmpeg", cfg.FFmpegPath)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TOOL_TIMEOUT", "3s")
	t.Setenv("WARM_TOOLS", "false")
	t.Setenv("WARM_CONCURRENCY", "8")
	t.Setenv("AI_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.ToolTimeout)
	assert.False(t, cfg.WarmTools)
	assert.Equal(t, 8, cfg.WarmConcurrency)
	assert.True(t, cfg.AIEnabled())
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Port:              "8080",
		ToolTimeout:       time.Second,
		HTTPClientTimeout: time.Second,
		WarmConcurrency:   1,
		ExchangeRateURL:   "http://rates",
		MaxAudioBytes:     1,
	}
	assert.NoError(t, cfg.Validate())

	cfg.WarmConcurrency = 0
	assert.Error(t, cfg.Validate())

	cfg.WarmConcurrency = 1
	cfg.ToolTimeout = 0
	assert.Error(t, cfg.Validate())
}
