package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Alma.Domain != DefaultDomain {
		t.Errorf("expected Domain=%s, got %s", DefaultDomain, cfg.Alma.Domain)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected Level=info, got %s", cfg.Logging.Level)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	// Ensure no env vars interfere
	t.Setenv("ALMA_API_KEY", "")
	t.Setenv("ALMA_API_DOMAIN", "")

	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Alma.Domain = "api-eu.hosted.exlibrisgroup.com"
	cfg.Alma.APIKey = "l8xx-test"

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "api-eu.hosted.exlibrisgroup.com", loaded.Alma.Domain)
	assert.Equal(t, "l8xx-test", loaded.Alma.APIKey)
}

func TestConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("ALMA_API_KEY", "")
	t.Setenv("ALMA_API_DOMAIN", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultDomain, cfg.Alma.Domain)
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Run("ALMA_API_KEY overrides file value", func(t *testing.T) {
		t.Setenv("ALMA_API_KEY", "env-key")

		cfg := &Config{Alma: AlmaConfig{APIKey: "file-key"}}
		cfg.applyEnvOverrides()

		assert.Equal(t, "env-key", cfg.Alma.APIKey)
	})

	t.Run("ALMA_API_DOMAIN overrides file value", func(t *testing.T) {
		t.Setenv("ALMA_API_DOMAIN", "api-na.hosted.exlibrisgroup.com")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "api-na.hosted.exlibrisgroup.com", cfg.Alma.Domain)
	})

	t.Run("empty env leaves file value", func(t *testing.T) {
		t.Setenv("ALMA_API_KEY", "")

		cfg := &Config{Alma: AlmaConfig{APIKey: "file-key"}}
		cfg.applyEnvOverrides()

		assert.Equal(t, "file-key", cfg.Alma.APIKey)
	})
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	// Default has no API key
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for missing API key")
	}

	cfg.Alma.APIKey = "l8xx-test"
	require.NoError(t, cfg.Validate())

	cfg.Alma.Domain = ""
	assert.Error(t, cfg.Validate())

	cfg.Alma.Domain = DefaultDomain
	cfg.Alma.Timeout = "not-a-duration"
	assert.Error(t, cfg.Validate())
}

func TestConfig_RequestTimeout(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 90*time.Second, cfg.RequestTimeout())

	cfg.Alma.Timeout = "30s"
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())

	cfg.Alma.Timeout = "garbage"
	assert.Equal(t, 90*time.Second, cfg.RequestTimeout())
}
