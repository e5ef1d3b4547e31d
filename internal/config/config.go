// Package config loads and validates application configuration from YAML
// files and environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/skillsenselab/rolegate/internal/logger"
	"github.com/skillsenselab/rolegate/internal/observability"
	"github.com/skillsenselab/rolegate/internal/password"
	"github.com/skillsenselab/rolegate/internal/server"
	"github.com/skillsenselab/rolegate/internal/token"
)

// fallbackTokenSecret signs tokens when JWT_SECRET is not set. It exists so a
// bare `go run` works out of the box; production deployments must override it.
// This is the only place the fallback is declared.
const fallbackTokenSecret = "mysecrettokenkey"

// Database selects and configures the user store backend.
type Database struct {
	// Driver is "sqlite" or "memory".
	Driver string `yaml:"driver" mapstructure:"driver"`
	// DSN is the sqlite data source name (file path or ":memory:").
	DSN string `yaml:"dsn" mapstructure:"dsn"`
}

// ApplyDefaults fills in zero-value fields.
func (d *Database) ApplyDefaults() {
	if d.Driver == "" {
		d.Driver = "sqlite"
	}
	if d.Driver == "sqlite" && d.DSN == "" {
		d.DSN = "rolegate.db"
	}
}

// Validate checks the database configuration.
func (d *Database) Validate() error {
	switch d.Driver {
	case "sqlite", "memory":
		return nil
	default:
		return fmt.Errorf("database.driver must be sqlite or memory (got: %s)", d.Driver)
	}
}

// Config is the application configuration.
type Config struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`

	Server   server.Config              `yaml:"server" mapstructure:"server"`
	Database Database                   `yaml:"database" mapstructure:"database"`
	Token    token.Config               `yaml:"token" mapstructure:"token"`
	Password password.Config            `yaml:"password" mapstructure:"password"`
	Logging  logger.Config              `yaml:"logging" mapstructure:"logging"`
	Tracing  observability.TracerConfig `yaml:"tracing" mapstructure:"tracing"`
}

// ApplyDefaults applies default values across all sections. The token secret
// resolves in priority order: explicit config value, JWT_SECRET environment
// variable, built-in fallback.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "rolegate"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	c.Server.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.Password.ApplyDefaults()
	c.Logging.ApplyDefaults()
	c.Tracing.ApplyDefaults()

	if c.Token.Secret == "" {
		if env := os.Getenv("JWT_SECRET"); env != "" {
			c.Token.Secret = env
		} else {
			c.Token.Secret = fallbackTokenSecret
		}
	}
	c.Token.ApplyDefaults()
}

// Validate validates all sections.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Token.Validate(); err != nil {
		return err
	}
	if err := c.Password.Validate(); err != nil {
		return err
	}
	return c.Logging.Validate()
}
