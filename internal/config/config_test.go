package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
listen: ":9090"
logger:
  level: debug
storage:
  database: /tmp/ctf.db
auth:
  jwt:
    secret: topsecret
    expire_hours: 48
  local:
    enabled: true
admin:
  enabled: true
  listen: "127.0.0.1:9091"
  username: overlord
  password: hunter2
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Listen != ":9090" {
		t.Fatalf("unexpected listen: %s", cfg.Listen)
	}
	if cfg.Auth.JWT.Secret != "topsecret" || cfg.Auth.JWT.ExpireHours != 48 {
		t.Fatalf("unexpected jwt config: %+v", cfg.Auth.JWT)
	}
	if cfg.Admin.Username != "overlord" {
		t.Fatalf("unexpected admin username: %s", cfg.Admin.Username)
	}
	if !cfg.Auth.Local.Enabled {
		t.Fatalf("expected local auth enabled")
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
listen: ":8080"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Admin.Username != "admin" {
		t.Fatalf("expected default admin username, got %q", cfg.Admin.Username)
	}
	if cfg.Auth.JWT.ExpireHours != 24 {
		t.Fatalf("expected default jwt expiry of 24h, got %d", cfg.Auth.JWT.ExpireHours)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
