// Package daemon manages the Senior Strength engine lifecycle and
// configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all engine configuration.
type Config struct {
	Store      StoreConfig      `toml:"store"`
	API        APIConfig        `toml:"api"`
	Push       PushConfig       `toml:"push"`
	Email      EmailConfig      `toml:"email"`
	Classifier ClassifierConfig `toml:"classifier"`
	Jobs       JobsConfig       `toml:"jobs"`
	Telemetry  TelemetryConfig  `toml:"telemetry"`
	Logging    LoggingConfig    `toml:"logging"`
}

// StoreConfig controls the SQLite store.
type StoreConfig struct {
	Dir string `toml:"dir"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// PushConfig controls the Expo push transport.
type PushConfig struct {
	Endpoint    string `toml:"endpoint"`
	SendDelayMS int    `toml:"send_delay_ms"`
	TimeoutSec  int    `toml:"timeout_sec"`
}

// EmailConfig controls the Postmark email transport.
type EmailConfig struct {
	Endpoint    string `toml:"endpoint"`
	ServerToken string `toml:"server_token"`
	From        string `toml:"from"`
	TimeoutSec  int    `toml:"timeout_sec"`
}

// ClassifierConfig controls the remote sentiment classifier. When the
// endpoint is empty the engine runs keyword-only classification.
type ClassifierConfig struct {
	Endpoint   string `toml:"endpoint"`
	APIKey     string `toml:"api_key"`
	Model      string `toml:"model"`
	TimeoutSec int    `toml:"timeout_sec"`
}

// JobsConfig controls the scheduled background jobs.
type JobsConfig struct {
	InactivityScan   bool   `toml:"inactivity_scan"`
	InactivityHour   int    `toml:"inactivity_hour"`   // local hour of day, 0-23
	WeeklyDigest     bool   `toml:"weekly_digest"`
	WeeklyDigestDay  string `toml:"weekly_digest_day"` // weekday name, e.g. "Sunday"
	WeeklyDigestHour int    `toml:"weekly_digest_hour"`
}

// TelemetryConfig controls metrics exposure.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := appHome()
	return Config{
		Store: StoreConfig{
			Dir: homeDir,
		},
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 8090,
		},
		Push: PushConfig{
			SendDelayMS: 100,
			TimeoutSec:  15,
		},
		Email: EmailConfig{
			From:       "reports@seniorstrength.app",
			TimeoutSec: 15,
		},
		Classifier: ClassifierConfig{
			Model:      "gpt-4o-mini",
			TimeoutSec: 10,
		},
		Jobs: JobsConfig{
			InactivityScan:   true,
			InactivityHour:   18,
			WeeklyDigest:     true,
			WeeklyDigestDay:  "Sunday",
			WeeklyDigestHour: 9,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(homeDir, "seniorstrength.log"),
		},
	}
}

// LoadConfig reads config from ~/.seniorstrength/config.toml, falling back
// to defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(appHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.seniorstrength/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(appHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// appHome returns the engine data directory.
func appHome() string {
	if env := os.Getenv("SENIORSTRENGTH_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".seniorstrength")
}
