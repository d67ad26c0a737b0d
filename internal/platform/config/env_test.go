package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	Path string `env:"HUNTY_TEST_PATH" envDefault:"hunty.db"`
	Port int    `env:"HUNTY_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Path != "hunty.db" {
		t.Fatalf("expected default path hunty.db, got %q", cfg.Path)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvOverrides(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("HUNTY_TEST_PATH", "/var/lib/hunty/data.db")

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Path != "/var/lib/hunty/data.db" {
		t.Fatalf("expected env override, got %q", cfg.Path)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("HUNTY_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
