package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvInt(t *testing.T) {
	t.Setenv("SOME_INT", "42")

	v, err := getEnvInt("SOME_INT", 7)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = getEnvInt("SOME_UNSET_INT", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	t.Setenv("SOME_BAD_INT", "not-a-number")

	_, err = getEnvInt("SOME_BAD_INT", 7)
	assert.Error(t, err)
}

func TestGetUpstreamConfig(t *testing.T) {
	t.Setenv("TTS_API_KEY", "vendor-key")
	t.Setenv("TARGET_API_TIMEOUT", "5000")

	cfg, err := GetUpstreamConfig()
	require.NoError(t, err)

	assert.Equal(t, "vendor-key", cfg.APIKey)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 2, cfg.RetryCount)
	assert.Equal(t, "335", cfg.Hudunsoft.XProduct)
}

func TestGetUpstreamConfigRequiresAPIKey(t *testing.T) {
	t.Setenv("TTS_API_KEY", "")

	_, err := GetUpstreamConfig()
	assert.Error(t, err)
}
