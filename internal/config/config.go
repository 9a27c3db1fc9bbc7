// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the session cookie and database
// passwords go to the OS keychain.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"askdb/cli/internal/xdg"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds non-sensitive CLI settings. Every field can be overridden
// from the environment.
type Config struct {
	BaseURL        string `json:"base_url" env:"ASKDB_BASE_URL" env-default:"http://localhost:8000"`
	Variant        string `json:"variant" env:"ASKDB_VARIANT" env-default:"generate_sql"`
	ChartType      string `json:"chart_type" env:"ASKDB_CHART_TYPE" env-default:"bar"`
	TimeoutSeconds int    `json:"timeout_seconds" env:"ASKDB_TIMEOUT_SECONDS" env-default:"120"`
	LogLevel       string `json:"log_level" env:"ASKDB_LOG_LEVEL" env-default:"info"`
	UserEmail      string `json:"user_email" env:"ASKDB_USER_EMAIL"`
}

// Timeout returns the HTTP timeout. Zero disables it.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate rejects settings the client cannot work with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("base_url is required")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("base_url %q must start with http:// or https://", c.BaseURL)
	}
	return nil
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; a missing file yields defaults plus environment
// overrides.
func Load() (Config, error) {
	p, err := Path()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(p)
}

// LoadFrom reads configuration from p.
func LoadFrom(p string) (Config, error) {
	var c Config
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := cleanenv.ReadEnv(&c); err != nil {
				return c, err
			}
			return c, nil
		}
		return c, err
	}
	if err := cleanenv.ReadConfig(p, &c); err != nil {
		return c, err
	}
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(p, c)
}

// SaveTo writes configuration to p with 0600 permissions.
func SaveTo(p string, c Config) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

// Keys lists the settable field names in file order.
func Keys() []string {
	return []string{"base_url", "variant", "chart_type", "timeout_seconds", "log_level", "user_email"}
}

// Set assigns one field by its file key.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "base_url":
		c.BaseURL = strings.TrimRight(value, "/")
	case "variant":
		c.Variant = value
	case "chart_type":
		c.ChartType = value
	case "timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("timeout_seconds must be a non-negative integer, got %q", value)
		}
		c.TimeoutSeconds = n
	case "log_level":
		c.LogLevel = value
	case "user_email":
		c.UserEmail = value
	default:
		keys := Keys()
		sort.Strings(keys)
		return fmt.Errorf("unknown config key %q (want one of %s)", key, strings.Join(keys, ", "))
	}
	return nil
}

// Get returns one field by its file key.
func (c Config) Get(key string) (string, bool) {
	switch key {
	case "base_url":
		return c.BaseURL, true
	case "variant":
		return c.Variant, true
	case "chart_type":
		return c.ChartType, true
	case "timeout_seconds":
		return strconv.Itoa(c.TimeoutSeconds), true
	case "log_level":
		return c.LogLevel, true
	case "user_email":
		return c.UserEmail, true
	}
	return "", false
}
