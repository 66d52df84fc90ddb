// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Environment != Development {
		t.Errorf("expected environment development, got %s", cfg.Environment)
	}
	if cfg.Server.BaseURL != "http://localhost:8000/api" {
		t.Errorf("unexpected base_url: %s", cfg.Server.BaseURL)
	}
	if cfg.Activity.RecentLimit != 20 {
		t.Errorf("expected recent_limit 20, got %d", cfg.Activity.RecentLimit)
	}
	if cfg.Activity.FeedLimit != 10 {
		t.Errorf("expected feed_limit 10, got %d", cfg.Activity.FeedLimit)
	}
	if cfg.RequestTimeout() != 30*time.Second {
		t.Errorf("expected timeout 30s, got %s", cfg.RequestTimeout())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_WithoutConfigUsesDefaults(t *testing.T) {
	t.Setenv(ConfigEnvVar, "")
	t.Setenv(TokenEnvVar, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Server.BaseURL != Default().Server.BaseURL {
		t.Errorf("expected default base_url, got %s", cfg.Server.BaseURL)
	}
}

func TestLoad_WithConfigEnvVar(t *testing.T) {
	path := writeConfig(t, "swiftticket.yaml", `
server:
  base_url: https://tickets.example.com/api
`)
	t.Setenv(ConfigEnvVar, path)
	t.Setenv(TokenEnvVar, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Server.BaseURL != "https://tickets.example.com/api" {
		t.Errorf("expected base_url from file, got %s", cfg.Server.BaseURL)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv(TokenEnvVar, "")
	path := writeConfig(t, "swiftticket.yaml", `
environment: staging
server:
  base_url: https://staging.example.com/api
  timeout: 5s
activity:
  recent_limit: 50
ui:
  color: never
log:
  level: debug
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Environment != Staging {
		t.Errorf("expected environment staging, got %s", cfg.Environment)
	}
	if cfg.RequestTimeout() != 5*time.Second {
		t.Errorf("expected timeout 5s, got %s", cfg.RequestTimeout())
	}
	if cfg.Activity.RecentLimit != 50 {
		t.Errorf("expected recent_limit 50, got %d", cfg.Activity.RecentLimit)
	}
	// Unset fields keep their defaults.
	if cfg.Activity.FeedLimit != 10 {
		t.Errorf("expected default feed_limit 10, got %d", cfg.Activity.FeedLimit)
	}
	if cfg.UI.Color != "never" {
		t.Errorf("expected color never, got %s", cfg.UI.Color)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected level debug, got %s", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() failed: %v", err)
	}
}

func TestLoadFile_JSONC(t *testing.T) {
	t.Setenv(TokenEnvVar, "")
	path := writeConfig(t, "swiftticket.jsonc", `{
  // Local backend on a non-default port.
  "server": {
    "base_url": "http://localhost:9000/api",
  },
  "activity": {"feed_limit": 3},
}`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Server.BaseURL != "http://localhost:9000/api" {
		t.Errorf("expected base_url from jsonc, got %s", cfg.Server.BaseURL)
	}
	if cfg.Activity.FeedLimit != 3 {
		t.Errorf("expected feed_limit 3, got %d", cfg.Activity.FeedLimit)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := writeConfig(t, "broken.yaml", "server: [unterminated\n")
	_, err := LoadFile(path)
	if err == nil {
		t.Fatal("expected error for malformed YAML")
	}
	if !strings.Contains(err.Error(), "broken.yaml") {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv(TokenEnvVar, "")
	path := writeConfig(t, "swiftticket.yaml", `
environment: production
server:
  base_url: http://localhost:8000/api
production:
  server:
    base_url: https://tickets.example.com/api
  activity:
    feed_limit: 5
development:
  server:
    base_url: http://dev.invalid/api
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Server.BaseURL != "https://tickets.example.com/api" {
		t.Errorf("expected production base_url, got %s", cfg.Server.BaseURL)
	}
	if cfg.Activity.FeedLimit != 5 {
		t.Errorf("expected production feed_limit 5, got %d", cfg.Activity.FeedLimit)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() failed: %v", err)
	}
}

func TestProductionDefaultsWithoutSection(t *testing.T) {
	t.Setenv(TokenEnvVar, "")
	path := writeConfig(t, "swiftticket.yaml", `
environment: production
server:
  base_url: https://tickets.example.com/api
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("expected production log level error, got %s", cfg.Log.Level)
	}
}

func TestTokenExpansionAndOverride(t *testing.T) {
	t.Setenv("TICKETS_TOKEN", "from-expansion")
	t.Setenv(TokenEnvVar, "")
	path := writeConfig(t, "swiftticket.yaml", `
server:
  token: ${TICKETS_TOKEN}
  base_url: ${TICKETS_URL:-http://localhost:8000/api}
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Server.Token != "from-expansion" {
		t.Errorf("expected expanded token, got %q", cfg.Server.Token)
	}
	if cfg.Server.BaseURL != "http://localhost:8000/api" {
		t.Errorf("expected default from expansion, got %s", cfg.Server.BaseURL)
	}

	t.Setenv(TokenEnvVar, "from-env")
	cfg, err = LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Server.Token != "from-env" {
		t.Errorf("expected %s to win, got %q", TokenEnvVar, cfg.Server.Token)
	}
}

func TestExpandVars(t *testing.T) {
	t.Setenv("SWIFTTICKET_TEST_VAR", "from-env")
	vars := map[string]string{"HOME": "/home/ada"}

	tests := []struct {
		input    string
		expected string
	}{
		{"${HOME}/token", "/home/ada/token"},
		{"${SWIFTTICKET_TEST_VAR}", "from-env"},
		{"${SWIFTTICKET_UNSET_VAR:-fallback}", "fallback"},
		{"${SWIFTTICKET_UNSET_VAR}", ""},
		{"no variables", "no variables"},
		{"${HOME}:${SWIFTTICKET_TEST_VAR}", "/home/ada:from-env"},
	}

	for _, test := range tests {
		result := expandVars(test.input, vars)
		if result != test.expected {
			t.Errorf("expandVars(%q) = %q, want %q", test.input, result, test.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "valid", modify: func(*Config) {}},
		{name: "bad_environment", modify: func(c *Config) { c.Environment = "qa" }, wantErr: "invalid environment"},
		{name: "missing_base_url", modify: func(c *Config) { c.Server.BaseURL = "" }, wantErr: "base_url is required"},
		{name: "base_url_scheme", modify: func(c *Config) { c.Server.BaseURL = "ftp://example.com" }, wantErr: "http or https"},
		{
			name: "production_requires_https",
			modify: func(c *Config) {
				c.Environment = Production
				c.Server.BaseURL = "http://tickets.example.com/api"
			},
			wantErr: "https in production",
		},
		{name: "bad_timeout", modify: func(c *Config) { c.Server.Timeout = "soon" }, wantErr: "server.timeout"},
		{name: "negative_limit", modify: func(c *Config) { c.Activity.RecentLimit = -1 }, wantErr: "recent_limit"},
		{name: "bad_color", modify: func(c *Config) { c.UI.Color = "rainbow" }, wantErr: "ui.color"},
		{name: "bad_level", modify: func(c *Config) { c.Log.Level = "trace" }, wantErr: "log.level"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.modify(cfg)
			err := cfg.Validate()
			if test.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, test.wantErr)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.UI.Color = "rainbow"
	cfg.Log.Level = "trace"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"ui.color", "log.level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}
