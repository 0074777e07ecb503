// Package config loads application configuration from the environment.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Default endpoints for the Login with Amazon identity provider. They are
// configurable so tests can point the auth flow at a local server.
const (
	DefaultTokenURL    = "https://api.amazon.com/auth/o2/token"
	DefaultConsentBase = "https://sellercentral.amazon.com/apps/authorize/consent"
)

// Config holds all runtime configuration for the bridge.
type Config struct {
	// ClientID is the LWA client identifier used for token exchange.
	ClientID string `mapstructure:"amazon_client_id"`

	// ClientSecret is the LWA client secret used for token exchange.
	ClientSecret string `mapstructure:"amazon_client_secret"`

	// AppID is the Seller Central application id used in consent URLs.
	// Defaults to ClientID when unset.
	AppID string `mapstructure:"amazon_app_id"`

	// RedirectURI is the OAuth redirect URI registered with the application.
	RedirectURI string `mapstructure:"amazon_redirect_uri"`

	// TokenURL is the LWA token endpoint.
	TokenURL string `mapstructure:"amazon_token_url"`

	// ConsentBase is the Seller Central consent endpoint.
	ConsentBase string `mapstructure:"amazon_consent_url"`

	// RedisURL is the connection URL for the durable token store.
	// When empty, tokens are kept in process memory only.
	RedisURL string `mapstructure:"redis_url"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("amazon_token_url", DefaultTokenURL)
	v.SetDefault("amazon_consent_url", DefaultConsentBase)

	// AutomaticEnv alone does not surface env vars through Unmarshal, so
	// bind each key explicitly.
	for _, key := range []string{
		"amazon_client_id",
		"amazon_client_secret",
		"amazon_app_id",
		"amazon_redirect_uri",
		"amazon_token_url",
		"amazon_consent_url",
		"redis_url",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if cfg.AppID == "" {
		cfg.AppID = cfg.ClientID
	}

	return &cfg, nil
}

// HasCredentials reports whether the LWA client credentials are configured.
func (c *Config) HasCredentials() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}
