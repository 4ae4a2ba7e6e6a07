package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadDefaults verifies an absent file yields the working defaults.
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("default addr = %q", cfg.Server.Addr)
	}
	if cfg.EOP.TTL != 6*time.Hour {
		t.Errorf("default eop.ttl = %v", cfg.EOP.TTL)
	}
	if cfg.Auth.Token != "" {
		t.Error("auth should default to disabled")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err != nil {
		t.Errorf("missing file should not error: %v", err)
	}
}

// TestLoadOverridesDefaults verifies partial files only touch the keys
// they set.
func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: "127.0.0.1:9090"
eop:
  url: "https://eop.example.net/latest.json"
  ttl: 30m
log:
  level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9090" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.EOP.TTL != 30*time.Minute {
		t.Errorf("eop.ttl = %v", cfg.EOP.TTL)
	}
	if cfg.EOP.FetchTimeout != 10*time.Second {
		t.Errorf("eop.fetch_timeout lost its default: %v", cfg.EOP.FetchTimeout)
	}
	if cfg.LogLevel() != slog.LevelDebug {
		t.Errorf("log level = %v", cfg.LogLevel())
	}
}

// TestLoadRejectsInvalid exercises the validation rules.
func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"bad eop url":        "eop:\n  url: \"not a url\"\n",
		"ftp eop url":        "eop:\n  url: \"ftp://example.net/x\"\n",
		"empty addr":         "server:\n  addr: \"\"\n",
		"bad log level":      "log:\n  level: verbose\n",
		"tiny tick interval": "stream:\n  tick_interval: 5ms\n",
		"zero per-ip limit":  "stream:\n  max_per_ip: 0\n",
		"not yaml":           "{{{{",
	}
	for name, body := range cases {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
