// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestSessionRoundTripAndPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	session := &Session{Username: "ada", AccessToken: "access-1", BaseURL: "http://localhost:8000/api"}

	if err := SaveSessionTo(session, path); err != nil {
		t.Fatalf("SaveSessionTo: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		t.Errorf("file mode = %o, want 600", mode)
	}

	loaded, err := LoadSessionFrom(path)
	if err != nil {
		t.Fatalf("LoadSessionFrom: %v", err)
	}
	if *loaded != *session {
		t.Errorf("loaded = %+v, want %+v", *loaded, *session)
	}

	if err := RemoveSessionAt(path); err != nil {
		t.Fatalf("RemoveSessionAt: %v", err)
	}
	if err := RemoveSessionAt(path); err != nil {
		t.Errorf("second RemoveSessionAt: %v", err)
	}
	loaded, err = LoadSessionFrom(path)
	if err != nil || loaded != nil {
		t.Errorf("LoadSessionFrom(missing) = %v, %v; want nil, nil", loaded, err)
	}
}

func TestLoadSessionRejectsMissingToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(`{"username":"ada"}`), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSessionFrom(path); err == nil {
		t.Error("LoadSessionFrom without access_token = nil error")
	}
}

func TestSessionFilePath(t *testing.T) {
	t.Setenv(SessionFileEnvVar, "/tmp/explicit.json")
	if got := SessionFilePath(); got != "/tmp/explicit.json" {
		t.Errorf("SessionFilePath() = %q, want explicit path", got)
	}

	t.Setenv(SessionFileEnvVar, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := SessionFilePath(); got != "/xdg/swiftticket/session.json" {
		t.Errorf("SessionFilePath() = %q, want /xdg/swiftticket/session.json", got)
	}
}

func TestReadPasswordFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "password")
	if err := os.WriteFile(path, []byte("correct-horse\n"), 0600); err != nil {
		t.Fatal(err)
	}
	password, err := ReadPassword(path)
	if err != nil {
		t.Fatalf("ReadPassword: %v", err)
	}
	if password != "correct-horse" {
		t.Errorf("password = %q, want trailing newline stripped", password)
	}

	empty := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(empty, []byte("\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadPassword(empty); err == nil {
		t.Error("ReadPassword(empty file) = nil error")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", 0, true},
	}
	for _, test := range tests {
		got, err := ParseLevel(test.name)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", test.name, err, test.wantErr)
			continue
		}
		if err == nil && got != test.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", test.name, got, test.want)
		}
	}
}
