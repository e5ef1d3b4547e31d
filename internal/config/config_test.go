package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/skillsenselab/rolegate/internal/config"
)

func TestLoad_DefaultsWithoutFiles(t *testing.T) {
	cfg, err := config.Load("", "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port: expected 8080, got %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("database.driver: expected sqlite, got %s", cfg.Database.Driver)
	}
	if cfg.Token.Secret == "" {
		t.Error("token.secret must resolve to the fallback when unset")
	}
	if cfg.Token.TTL.Hours() != 24 {
		t.Errorf("token.ttl: expected 24h, got %s", cfg.Token.TTL)
	}
}

func TestLoad_SecretFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-the-environment")

	cfg, err := config.Load("", "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Token.Secret != "from-the-environment" {
		t.Errorf("token.secret: expected env value, got %q", cfg.Token.Secret)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	yml := []byte("server:\n  port: 9191\ndatabase:\n  driver: memory\ntoken:\n  secret: file-secret\n")
	if err := os.WriteFile(path, yml, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9191 {
		t.Errorf("server.port: expected 9191, got %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != "memory" {
		t.Errorf("database.driver: expected memory, got %s", cfg.Database.Driver)
	}
	if cfg.Token.Secret != "file-secret" {
		t.Errorf("token.secret: expected file-secret, got %q", cfg.Token.Secret)
	}
}

func TestValidate_BadDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	cfg.Database.Driver = "postgres"

	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unsupported driver")
	}
}
