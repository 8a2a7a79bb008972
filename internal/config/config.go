// ABOUTME: Configuration loader for the PromptDeck client
// ABOUTME: Loads settings from environment variables with defaults

package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	APIURL         string // base URL of the prompt library API
	RequestTimeout int    // seconds, per-request HTTP timeout
	ConfigDir      string // where session state and debug logs live
	Debug          bool   // enable the file-backed debug log
}

const defaultAPIURL = "http://localhost:8000/api"

func Load() (*Config, error) {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:         getEnv("PROMPTDECK_API_URL", defaultAPIURL),
		RequestTimeout: getEnvInt("PROMPTDECK_TIMEOUT", 30),
		ConfigDir:      getEnv("PROMPTDECK_CONFIG_DIR", DefaultConfigDir()),
		Debug:          getEnvBool("PROMPTDECK_DEBUG", false),
	}

	return cfg, nil
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "promptdeck")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "promptdeck")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
