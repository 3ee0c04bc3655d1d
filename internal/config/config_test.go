package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8001", cfg.BaseURL)
	assert.Equal(t, "admin@grabovoi.com", cfg.AdminEmail)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoadProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "staging.yaml")
	profile := `
base_url: https://staging.example.com
admin_email: qa@example.com
webhook_secret: s3cret
timeout: 10s
`
	require.NoError(t, os.WriteFile(path, []byte(profile), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://staging.example.com", cfg.BaseURL)
	assert.Equal(t, "qa@example.com", cfg.AdminEmail)
	assert.Equal(t, "s3cret", cfg.WebhookSecret)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	// Unset fields keep their defaults.
	assert.Equal(t, "admin123", cfg.AdminPassword)
}

func TestEnvOverridesProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: https://profile.example.com\n"), 0o644))

	t.Setenv("CRM_BASE_URL", "https://env.example.com")
	t.Setenv("CRM_TIMEOUT_SECONDS", "5")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoadMissingProfileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
