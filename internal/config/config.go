package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

// Metadata sources understood by the download endpoint.
const (
	SourceMock  = "mock"
	SourcePage  = "page"
	SourceYTDLP = "ytdlp"
)

// Config captures the runtime configuration for the vidgrab service.
type Config struct {
	AppPort          int           `env:"VIDGRAB_PORT" envDefault:"8080"`
	LogLevel         string        `env:"VIDGRAB_LOG_LEVEL" envDefault:"info"`
	LogFormat        string        `env:"VIDGRAB_LOG_FORMAT" envDefault:"json"`
	MetadataSource   string        `env:"VIDGRAB_METADATA_SOURCE" envDefault:"mock"`
	YTDLPPath        string        `env:"VIDGRAB_YTDLP_PATH" envDefault:"yt-dlp"`
	YTDLPTimeout     time.Duration `env:"VIDGRAB_YTDLP_TIMEOUT" envDefault:"30s"`
	FetchTimeout     time.Duration `env:"VIDGRAB_FETCH_TIMEOUT" envDefault:"10s"`
	UserAgent        string        `env:"VIDGRAB_USER_AGENT"`
	MetadataCacheTTL time.Duration `env:"VIDGRAB_METADATA_CACHE_TTL" envDefault:"15m"`
	MaxBodyBytes     int64         `env:"VIDGRAB_MAX_BODY_BYTES" envDefault:"1048576"`
}

// Load reads configuration from environment variables, applying defaults
// suitable for local development.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	cfg.MetadataSource = strings.ToLower(strings.TrimSpace(cfg.MetadataSource))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.AppPort <= 0 || c.AppPort > 65535 {
		return fmt.Errorf("invalid VIDGRAB_PORT %d", c.AppPort)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid VIDGRAB_LOG_LEVEL %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("invalid VIDGRAB_LOG_FORMAT %q", c.LogFormat)
	}
	switch c.MetadataSource {
	case SourceMock, SourcePage, SourceYTDLP:
	default:
		return fmt.Errorf("invalid VIDGRAB_METADATA_SOURCE %q", c.MetadataSource)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid VIDGRAB_MAX_BODY_BYTES %d", c.MaxBodyBytes)
	}
	return nil
}
