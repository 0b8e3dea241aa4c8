package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.AppPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, SourceMock, cfg.MetadataSource)
	assert.Equal(t, "yt-dlp", cfg.YTDLPPath)
	assert.Equal(t, 30*time.Second, cfg.YTDLPTimeout)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 15*time.Minute, cfg.MetadataCacheTTL)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	assert.Empty(t, cfg.UserAgent)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("VIDGRAB_PORT", "9090")
	t.Setenv("VIDGRAB_LOG_LEVEL", " DEBUG ")
	t.Setenv("VIDGRAB_LOG_FORMAT", "text")
	t.Setenv("VIDGRAB_METADATA_SOURCE", "Page")
	t.Setenv("VIDGRAB_FETCH_TIMEOUT", "2s")
	t.Setenv("VIDGRAB_USER_AGENT", "bot/1.0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.AppPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, SourcePage, cfg.MetadataSource)
	assert.Equal(t, 2*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "bot/1.0", cfg.UserAgent)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"VIDGRAB_PORT":            "0",
		"VIDGRAB_LOG_LEVEL":       "verbose",
		"VIDGRAB_LOG_FORMAT":      "xml",
		"VIDGRAB_METADATA_SOURCE": "scraper",
		"VIDGRAB_MAX_BODY_BYTES":  "-1",
		"VIDGRAB_YTDLP_TIMEOUT":   "soon",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
