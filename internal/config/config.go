// Package config handles environment variable parsing and validation.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AuthMode represents the SSH authentication mode.
type AuthMode string

const (
	AuthModeAllowlist AuthMode = "allowlist"
	AuthModePublic    AuthMode = "public"
)

// Config holds all application configuration.
type Config struct {
	// SSH server settings
	SSHAddr        string
	SSHHostKeyPath string
	SSHAuthMode    AuthMode
	AllowlistPath  string

	// EcoBazaar API settings
	APIBaseURL string

	// Product page size for listings
	PageSize int

	// Cache settings
	CacheTTL time.Duration
}

// Load reads configuration from the environment, after loading a local
// .env file when one exists.
func Load() (*Config, error) {
	// Missing .env is fine; real env vars win either way.
	_ = godotenv.Load()

	cfg := &Config{
		SSHAddr:        getEnv("SSH_ADDR", ":23234"),
		SSHHostKeyPath: getEnv("SSH_HOSTKEY_PATH", "./.ssh_host_ed25519_key"),
		SSHAuthMode:    AuthMode(getEnv("SSH_AUTH_MODE", "allowlist")),
		AllowlistPath:  getEnv("SSH_ALLOWLIST_PATH", "./allowlist_authorized_keys"),
		APIBaseURL:     getEnv("ECO_BASE_URL", "http://127.0.0.1:8080"),
	}

	pageSize, err := strconv.Atoi(getEnv("ECO_PAGE_SIZE", "50"))
	if err != nil || pageSize < 1 {
		return nil, errors.New("ECO_PAGE_SIZE must be a positive integer")
	}
	cfg.PageSize = pageSize

	ttlSeconds, err := strconv.Atoi(getEnv("CACHE_TTL_SECONDS", "60"))
	if err != nil {
		return nil, errors.New("CACHE_TTL_SECONDS must be a valid integer")
	}
	cfg.CacheTTL = time.Duration(ttlSeconds) * time.Second

	if cfg.SSHAuthMode != AuthModeAllowlist && cfg.SSHAuthMode != AuthModePublic {
		return nil, errors.New("SSH_AUTH_MODE must be 'allowlist' or 'public'")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
