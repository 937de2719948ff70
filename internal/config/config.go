// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Session SessionConfig
}

// ServerConfig holds HTTP server and local storage options.
type ServerConfig struct {
	Addr    string
	DBPath  string
	LogPath string
}

// BackendConfig points at the inventory REST backend.
type BackendConfig struct {
	URL     string
	Timeout time.Duration
}

// SessionConfig controls browser sessions.
type SessionConfig struct {
	TTL             time.Duration
	ValidateTimeout time.Duration
	SecureCookie    bool
	SweepSchedule   string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance. Validation is left to the caller so that
// command-line flags can override values first.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:    getenvWithDefault("MILAMS_ADDR", ":8080"),
			DBPath:  getenvWithDefault("MILAMS_DB", "milams.sqlite3"),
			LogPath: os.Getenv("MILAMS_LOG"),
		},
		Backend: BackendConfig{
			URL: os.Getenv("MILAMS_BACKEND_URL"),
		},
		Session: SessionConfig{
			SweepSchedule: getenvWithDefault("MILAMS_SWEEP_SCHEDULE", "@hourly"),
		},
	}

	var err error
	if cfg.Backend.Timeout, err = durationEnv("MILAMS_BACKEND_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.Session.ValidateTimeout, err = durationEnv("MILAMS_VALIDATE_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.Session.TTL, err = durationEnv("MILAMS_SESSION_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.Session.SecureCookie, err = boolEnv("MILAMS_SECURE_COOKIE", false); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Addr == "" {
		return errors.New("MILAMS_ADDR must not be empty")
	}
	if c.Server.DBPath == "" {
		return errors.New("MILAMS_DB must not be empty")
	}

	if c.Backend.URL == "" {
		return errors.New("MILAMS_BACKEND_URL must be provided")
	}
	u, err := url.Parse(c.Backend.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("MILAMS_BACKEND_URL must be an http(s) URL, got %q", c.Backend.URL)
	}

	switch {
	case c.Backend.Timeout <= 0:
		return errors.New("MILAMS_BACKEND_TIMEOUT must be positive")
	case c.Session.ValidateTimeout <= 0:
		return errors.New("MILAMS_VALIDATE_TIMEOUT must be positive")
	case c.Session.TTL <= 0:
		return errors.New("MILAMS_SESSION_TTL must be positive")
	}

	if _, err := cron.ParseStandard(c.Session.SweepSchedule); err != nil {
		return fmt.Errorf("MILAMS_SWEEP_SCHEDULE is invalid: %w", err)
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
