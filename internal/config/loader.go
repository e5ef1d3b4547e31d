package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from an optional YAML file, an optional .env file,
// and the process environment, then applies defaults and validates.
//
// File resolution: an explicit path wins; otherwise standard locations are
// searched and missing files are simply skipped. Environment variables use
// underscore-delimited upper case keys (SERVER_PORT, DATABASE_DSN).
func Load(configFile, envFile string) (*Config, error) {
	if envFile == "" {
		envFile = findFirst(".env", "config/.env")
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			fmt.Fprintf(os.Stderr, "config: skipping env file %s: %v\n", envFile, err)
		}
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Unmarshal only sees keys viper knows about, so bind the settable ones.
	for _, key := range []string{
		"name", "environment",
		"server.host", "server.port",
		"database.driver", "database.dsn",
		"token.secret", "token.ttl",
		"password.cost",
		"logging.level", "logging.format",
		"tracing.endpoint", "tracing.sample_rate",
	} {
		_ = v.BindEnv(key)
	}

	if configFile == "" {
		configFile = findFirst("config.yml", "config/config.yml", "cmd/rolegate/config.yml")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func findFirst(paths ...string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
