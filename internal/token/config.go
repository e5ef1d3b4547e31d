package token

import (
	"errors"
	"time"
)

// DefaultTTL is the lifetime of login tokens.
const DefaultTTL = 24 * time.Hour

// Config configures the token codec.
type Config struct {
	// Secret is the shared HMAC signing key. The same value must be used by
	// the process that signs and the process that verifies.
	Secret string `yaml:"secret" mapstructure:"secret"`

	// TTL is the token lifetime (default: 24h).
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ApplyDefaults fills in zero-value fields with defaults.
func (c *Config) ApplyDefaults() {
	if c.TTL == 0 {
		c.TTL = DefaultTTL
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.New("token: secret is required")
	}
	return nil
}
