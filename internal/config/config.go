// Package config resolves harness settings from a YAML profile, a .env
// file, and process environment variables, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is everything the harness needs to reach a backend.
type Config struct {
	BaseURL       string        `yaml:"base_url"`
	AdminEmail    string        `yaml:"admin_email"`
	AdminPassword string        `yaml:"admin_password"`
	WebhookSecret string        `yaml:"webhook_secret"`
	Timeout       time.Duration `yaml:"timeout"`
	HistoryDB     string        `yaml:"history_db"`
	ReportPath    string        `yaml:"report_path"`
	SpreadsheetID string        `yaml:"spreadsheet_id"`
}

// Default returns the built-in configuration. The values match the seeded
// test deployment.
func Default() Config { return defaults() }

func defaults() Config {
	return Config{
		BaseURL:       "http://localhost:8001",
		AdminEmail:    "admin@grabovoi.com",
		AdminPassword: "admin123",
		Timeout:       30 * time.Second,
	}
}

// Load builds the configuration. profilePath may be empty. A .env file in
// the working directory is honored when present.
func Load(profilePath string) (Config, error) {
	// Missing .env is fine; explicit profile files are not.
	_ = godotenv.Load()

	cfg := defaults()
	if profilePath != "" {
		data, err := os.ReadFile(profilePath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read profile: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse profile: %w", err)
		}
	}

	applyEnv(&cfg)
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setEnv := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setEnv("CRM_BASE_URL", &cfg.BaseURL)
	setEnv("CRM_ADMIN_EMAIL", &cfg.AdminEmail)
	setEnv("CRM_ADMIN_PASSWORD", &cfg.AdminPassword)
	setEnv("POSTMARK_WEBHOOK_SECRET", &cfg.WebhookSecret)
	setEnv("APICHECK_HISTORY_DB", &cfg.HistoryDB)
	setEnv("APICHECK_REPORT", &cfg.ReportPath)
	setEnv("GOOGLE_SPREADSHEET_ID", &cfg.SpreadsheetID)

	if v := os.Getenv("CRM_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.Timeout = time.Duration(secs) * time.Second
		}
	}
}
