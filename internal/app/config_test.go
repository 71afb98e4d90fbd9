package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("listen addr = %q", cfg.ListenAddr)
	}
	if cfg.BackupMaxAge != 24*time.Hour {
		t.Errorf("backup max age = %v", cfg.BackupMaxAge)
	}
	if cfg.SessionCfg.PollInitialInterval != 2*time.Second {
		t.Errorf("poll initial interval = %v", cfg.SessionCfg.PollInitialInterval)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
listen_addr: ":9000"
storage_root: /var/lib/editor
backup_max_age: 48h
session:
  base_url: https://api.example.com
  poll_max_elapsed: 5m
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ListenAddr != ":9000" {
		t.Errorf("listen addr = %q", cfg.ListenAddr)
	}
	if cfg.StorageRoot != "/var/lib/editor" {
		t.Errorf("storage root = %q", cfg.StorageRoot)
	}
	if cfg.BackupMaxAge != 48*time.Hour {
		t.Errorf("backup max age = %v", cfg.BackupMaxAge)
	}
	if cfg.SessionCfg.BaseURL != "https://api.example.com" {
		t.Errorf("base url = %q", cfg.SessionCfg.BaseURL)
	}
	if cfg.SessionCfg.PollMaxElapsed != 5*time.Minute {
		t.Errorf("poll max elapsed = %v", cfg.SessionCfg.PollMaxElapsed)
	}
	// Untouched keys keep their defaults.
	if cfg.SessionCfg.PollInitialInterval != 2*time.Second {
		t.Errorf("poll initial interval = %v", cfg.SessionCfg.PollInitialInterval)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("EXPLAINO_LISTEN_ADDR", ":7070")
	t.Setenv("EXPLAINO_SESSION_BASE_URL", "https://env.example.com")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ListenAddr != ":7070" {
		t.Errorf("listen addr = %q", cfg.ListenAddr)
	}
	if cfg.SessionCfg.BaseURL != "https://env.example.com" {
		t.Errorf("base url = %q", cfg.SessionCfg.BaseURL)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing config file must error")
	}
}
