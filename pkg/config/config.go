// Package config loads runtime settings from the environment.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds every runtime setting the server reads.
type Config struct {
	Port          string `mapstructure:"PORT"`
	Debug         bool   `mapstructure:"DEBUG"`
	AllowedOrigin string `mapstructure:"ALLOWED_ORIGIN"`
	APIKeys       string `mapstructure:"API_KEYS"`
}

// Load reads configuration from environment variables, applying defaults
// for anything unset. godotenv is expected to have populated the process
// environment beforehand when a .env file is present.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("ALLOWED_ORIGIN", "")
	v.SetDefault("API_KEYS", "")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// APIKeyList splits the comma-separated API_KEYS value into trimmed keys.
// An empty setting yields no keys, which disables authentication.
func (c *Config) APIKeyList() []string {
	if c.APIKeys == "" {
		return nil
	}

	parts := strings.Split(c.APIKeys, ",")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		if key := strings.TrimSpace(p); key != "" {
			keys = append(keys, key)
		}
	}

	return keys
}
