package daemon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "127.0.0.1")
	}
	if cfg.API.Port != 8090 {
		t.Errorf("API.Port = %d, want %d", cfg.API.Port, 8090)
	}
	if cfg.Push.SendDelayMS != 100 {
		t.Errorf("Push.SendDelayMS = %d, want 100", cfg.Push.SendDelayMS)
	}
	if !cfg.Jobs.InactivityScan || !cfg.Jobs.WeeklyDigest {
		t.Error("both scheduled jobs should default to enabled")
	}
	if cfg.Jobs.WeeklyDigestDay != "Sunday" {
		t.Errorf("WeeklyDigestDay = %q, want Sunday", cfg.Jobs.WeeklyDigestDay)
	}
}

func TestAppHome_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SENIORSTRENGTH_HOME", dir)

	if got := appHome(); got != dir {
		t.Errorf("appHome() = %q, want %q", got, dir)
	}
}

func TestLoadConfig_NoFileUsesDefaults(t *testing.T) {
	t.Setenv("SENIORSTRENGTH_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.API.Port != 8090 {
		t.Errorf("API.Port = %d, want default", cfg.API.Port)
	}
}

func TestLoadConfig_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SENIORSTRENGTH_HOME", dir)

	content := `
[api]
host = "0.0.0.0"
port = 9999

[email]
server_token = "pm-token"
from = "reports@example.com"

[jobs]
weekly_digest = false
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.API.Host != "0.0.0.0" || cfg.API.Port != 9999 {
		t.Errorf("api = %s:%d, want 0.0.0.0:9999", cfg.API.Host, cfg.API.Port)
	}
	if cfg.Email.ServerToken != "pm-token" {
		t.Errorf("ServerToken = %q", cfg.Email.ServerToken)
	}
	if cfg.Jobs.WeeklyDigest {
		t.Error("weekly_digest should be disabled by the file")
	}
	// Untouched sections keep defaults.
	if !cfg.Jobs.InactivityScan {
		t.Error("inactivity_scan should keep its default")
	}
}

func TestLoadConfig_BadTOML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SENIORSTRENGTH_HOME", dir)

	os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not [valid toml"), 0600)
	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig() should fail on malformed TOML")
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	t.Setenv("SENIORSTRENGTH_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.API.Port = 7777
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if loaded.API.Port != 7777 {
		t.Errorf("Port = %d, want 7777", loaded.API.Port)
	}
}
