package password

import "fmt"

// DefaultCost is the bcrypt work factor used when none is configured.
// Kept well above the 10-round floor required for brute-force resistance.
const DefaultCost = 12

// Config configures password hashing behavior.
type Config struct {
	// Cost is the bcrypt cost parameter (default: 12, range: 4-31).
	Cost int `yaml:"cost" mapstructure:"cost"`
}

// ApplyDefaults sets defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Cost == 0 {
		c.Cost = DefaultCost
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Cost < 4 || c.Cost > 31 {
		return fmt.Errorf("password: cost must be between 4 and 31 (got: %d)", c.Cost)
	}
	return nil
}

// NewHasher creates a Hasher from configuration.
func NewHasher(cfg Config) Hasher {
	cfg.ApplyDefaults()
	return NewBcryptHasher(WithCost(cfg.Cost))
}
