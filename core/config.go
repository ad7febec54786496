package core

import (
	"fmt"
	"strings"
)

type Config struct {
	ClientID    string      `koanf:"client_id" mapstructure:"client_id"`
	ClientKey   string      `koanf:"client_key" mapstructure:"client_key"`
	Environment Environment `koanf:"environment" mapstructure:"environment"`
	ShortURLs   bool        `koanf:"short_urls" mapstructure:"short_urls"`
}

func DefaultConfig() Config {
	return Config{
		Environment: Production,
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ClientID) == "" {
		return fmt.Errorf("core: client_id is required")
	}
	if strings.TrimSpace(c.ClientKey) == "" {
		return fmt.Errorf("core: client_key is required")
	}
	if err := c.Environment.Validate(); err != nil {
		return err
	}
	return nil
}

// WebBaseURL picks the short or long web domain for the configured environment.
func (c Config) WebBaseURL() string {
	return c.Environment.WebBaseURL(c.ShortURLs)
}
