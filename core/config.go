package core

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultHelixBaseURL     = "https://api.twitch.tv/helix"
	DefaultKrakenBaseURL    = "https://api.twitch.tv/kraken"
	DefaultAuthBaseURL      = "https://id.twitch.tv/oauth2"
	DefaultRequestTimeout   = 30 * time.Second
	DefaultMaxResponseBytes = int64(10 << 20)
)

type Config struct {
	ServiceName      string        `koanf:"service_name" mapstructure:"service_name"`
	ClientID         string        `koanf:"client_id" mapstructure:"client_id"`
	ClientSecret     string        `koanf:"client_secret" mapstructure:"client_secret"`
	HelixBaseURL     string        `koanf:"helix_base_url" mapstructure:"helix_base_url"`
	KrakenBaseURL    string        `koanf:"kraken_base_url" mapstructure:"kraken_base_url"`
	AuthBaseURL      string        `koanf:"auth_base_url" mapstructure:"auth_base_url"`
	RequestTimeout   time.Duration `koanf:"request_timeout" mapstructure:"request_timeout"`
	DefaultTarget    string        `koanf:"default_target" mapstructure:"default_target"`
	MaxResponseBytes int64         `koanf:"max_response_bytes" mapstructure:"max_response_bytes"`
	HTTPCache        bool          `koanf:"http_cache" mapstructure:"http_cache"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName:      "twitch",
		HelixBaseURL:     DefaultHelixBaseURL,
		KrakenBaseURL:    DefaultKrakenBaseURL,
		AuthBaseURL:      DefaultAuthBaseURL,
		RequestTimeout:   DefaultRequestTimeout,
		MaxResponseBytes: DefaultMaxResponseBytes,
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	for key, raw := range map[string]string{
		"helix_base_url":  c.HelixBaseURL,
		"kraken_base_url": c.KrakenBaseURL,
		"auth_base_url":   c.AuthBaseURL,
	} {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		parsed, err := url.Parse(raw)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("core: %s must be an absolute url", key)
		}
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("core: request_timeout must be >= 0")
	}
	if c.MaxResponseBytes < 0 {
		return fmt.Errorf("core: max_response_bytes must be >= 0")
	}
	return nil
}
