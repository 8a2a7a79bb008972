// ABOUTME: Tests for configuration loading
// ABOUTME: Verifies defaults and environment variable overrides

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("PROMPTDECK_API_URL")
	os.Unsetenv("PROMPTDECK_TIMEOUT")
	os.Unsetenv("PROMPTDECK_DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIURL != "http://localhost:8000/api" {
		t.Errorf("unexpected default API URL: %s", cfg.APIURL)
	}
	if cfg.RequestTimeout != 30 {
		t.Errorf("unexpected default timeout: %d", cfg.RequestTimeout)
	}
	if cfg.Debug {
		t.Error("expected debug off by default")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	os.Setenv("PROMPTDECK_API_URL", "http://api.example.com/api")
	os.Setenv("PROMPTDECK_TIMEOUT", "5")
	os.Setenv("PROMPTDECK_DEBUG", "true")
	defer func() {
		os.Unsetenv("PROMPTDECK_API_URL")
		os.Unsetenv("PROMPTDECK_TIMEOUT")
		os.Unsetenv("PROMPTDECK_DEBUG")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIURL != "http://api.example.com/api" {
		t.Errorf("unexpected API URL: %s", cfg.APIURL)
	}
	if cfg.RequestTimeout != 5 {
		t.Errorf("unexpected timeout: %d", cfg.RequestTimeout)
	}
	if !cfg.Debug {
		t.Error("expected debug enabled")
	}
}

func TestInvalidTimeoutFallsBack(t *testing.T) {
	os.Setenv("PROMPTDECK_TIMEOUT", "not-a-number")
	defer os.Unsetenv("PROMPTDECK_TIMEOUT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RequestTimeout != 30 {
		t.Errorf("expected fallback to 30, got %d", cfg.RequestTimeout)
	}
}

func TestDefaultConfigDirHonorsXDG(t *testing.T) {
	os.Setenv("XDG_CONFIG_HOME", filepath.Join(os.TempDir(), "xdg-test"))
	defer os.Unsetenv("XDG_CONFIG_HOME")

	dir := DefaultConfigDir()
	if !strings.HasSuffix(dir, filepath.Join("xdg-test", "promptdeck")) {
		t.Errorf("unexpected config dir: %s", dir)
	}
}
