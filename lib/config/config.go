// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Environment variables read by this package.
const (
	// ConfigEnvVar names the configuration file when --config is not
	// given.
	ConfigEnvVar = "SWIFTTICKET_CONFIG"

	// TokenEnvVar overrides server.token.
	TokenEnvVar = "SWIFTTICKET_TOKEN"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for a local backend.
	Development Environment = "development"
	// Staging is for a shared pre-production backend.
	Staging Environment = "staging"
	// Production is for the live backend.
	Production Environment = "production"
)

// Config is the swiftticket client configuration.
type Config struct {
	// Environment selects which override section applies.
	Environment Environment `yaml:"environment"`

	// Server configures the REST API connection.
	Server ServerConfig `yaml:"server"`

	// Activity configures activity feed sizes.
	Activity ActivityConfig `yaml:"activity"`

	// UI configures terminal rendering.
	UI UIConfig `yaml:"ui"`

	// Log configures diagnostic logging.
	Log LogConfig `yaml:"log"`

	// Per-environment overrides, applied after the base config is
	// loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Server   *ServerConfig   `yaml:"server,omitempty"`
	Activity *ActivityConfig `yaml:"activity,omitempty"`
	UI       *UIConfig       `yaml:"ui,omitempty"`
	Log      *LogConfig      `yaml:"log,omitempty"`
}

// ServerConfig configures the REST API connection.
type ServerConfig struct {
	// BaseURL is the API root.
	// Default: http://localhost:8000/api
	BaseURL string `yaml:"base_url"`

	// Token is the bearer access token. Usually supplied through
	// ${VAR} expansion or SWIFTTICKET_TOKEN rather than written into
	// the file.
	Token string `yaml:"token"`

	// Timeout bounds each HTTP request, as a Go duration string.
	// Default: 30s
	Timeout string `yaml:"timeout"`
}

// ActivityConfig configures activity feed sizes.
type ActivityConfig struct {
	// RecentLimit is the number of entries the recent feed shows.
	// Default: 20
	RecentLimit int `yaml:"recent_limit"`

	// FeedLimit is the number of entries the dashboard feed shows.
	// Default: 10
	FeedLimit int `yaml:"feed_limit"`
}

// UIConfig configures terminal rendering.
type UIConfig struct {
	// Color controls ANSI styling: "auto" (when stdout is a
	// terminal), "always", or "never".
	// Default: auto
	Color string `yaml:"color"`

	// Width is the table width in columns. Zero means detect from the
	// terminal.
	Width int `yaml:"width"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: warn
	Level string `yaml:"level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Environment: Development,
		Server: ServerConfig{
			BaseURL: "http://localhost:8000/api",
			Timeout: "30s",
		},
		Activity: ActivityConfig{
			RecentLimit: 20,
			FeedLimit:   10,
		},
		UI: UIConfig{
			Color: "auto",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load loads configuration from the file named by SWIFTTICKET_CONFIG,
// or returns the defaults (with environment overrides applied) when
// the variable is unset.
func Load() (*Config, error) {
	configPath := os.Getenv(ConfigEnvVar)
	if configPath == "" {
		cfg := Default()
		cfg.finish()
		return cfg, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.finish()
	return cfg, nil
}

// finish applies everything that happens after the file is parsed.
func (c *Config) finish() {
	c.applyEnvironmentOverrides()
	c.expandVariables()
	if token := os.Getenv(TokenEnvVar); token != "" {
		c.Server.Token = token
	}
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if strings.HasSuffix(path, ".jsonc") || strings.HasSuffix(path, ".json") {
		data = jsonc.ToJSON(data)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return nil
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
		// Production defaults: quieter logging.
		if overrides == nil {
			overrides = &ConfigOverrides{
				Log: &LogConfig{Level: "error"},
			}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Server != nil {
		if overrides.Server.BaseURL != "" {
			c.Server.BaseURL = overrides.Server.BaseURL
		}
		if overrides.Server.Token != "" {
			c.Server.Token = overrides.Server.Token
		}
		if overrides.Server.Timeout != "" {
			c.Server.Timeout = overrides.Server.Timeout
		}
	}

	if overrides.Activity != nil {
		if overrides.Activity.RecentLimit != 0 {
			c.Activity.RecentLimit = overrides.Activity.RecentLimit
		}
		if overrides.Activity.FeedLimit != 0 {
			c.Activity.FeedLimit = overrides.Activity.FeedLimit
		}
	}

	if overrides.UI != nil {
		if overrides.UI.Color != "" {
			c.UI.Color = overrides.UI.Color
		}
		if overrides.UI.Width != 0 {
			c.UI.Width = overrides.UI.Width
		}
	}

	if overrides.Log != nil && overrides.Log.Level != "" {
		c.Log.Level = overrides.Log.Level
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in the
// server section.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Server.BaseURL = expandVars(c.Server.BaseURL, vars)
	c.Server.Token = expandVars(c.Server.Token, vars)
	c.Server.Timeout = expandVars(c.Server.Timeout, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// RequestTimeout returns the parsed server timeout. Call Validate
// first; an unparseable value yields zero (no timeout).
func (c *Config) RequestTimeout() time.Duration {
	timeout, err := time.ParseDuration(c.Server.Timeout)
	if err != nil {
		return 0
	}
	return timeout
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.Server.BaseURL == "" {
		errs = append(errs, fmt.Errorf("server.base_url is required"))
	} else if parsed, err := url.Parse(c.Server.BaseURL); err != nil || parsed.Host == "" ||
		(parsed.Scheme != "http" && parsed.Scheme != "https") {
		errs = append(errs, fmt.Errorf("server.base_url must be an http or https URL (got %q)", c.Server.BaseURL))
	} else if c.Environment == Production && parsed.Scheme != "https" {
		errs = append(errs, fmt.Errorf("server.base_url must use https in production"))
	}

	if timeout, err := time.ParseDuration(c.Server.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("server.timeout: %w", err))
	} else if timeout < 0 {
		errs = append(errs, fmt.Errorf("server.timeout must not be negative"))
	}

	if c.Activity.RecentLimit < 0 {
		errs = append(errs, fmt.Errorf("activity.recent_limit must not be negative"))
	}
	if c.Activity.FeedLimit < 0 {
		errs = append(errs, fmt.Errorf("activity.feed_limit must not be negative"))
	}

	colorValues := []string{"auto", "always", "never"}
	if !contains(colorValues, c.UI.Color) {
		errs = append(errs, fmt.Errorf("ui.color must be one of: %v", colorValues))
	}
	if c.UI.Width < 0 {
		errs = append(errs, fmt.Errorf("ui.width must not be negative"))
	}

	levelValues := []string{"debug", "info", "warn", "error"}
	if !contains(levelValues, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", levelValues))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
