package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults failed to parse: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, Default())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("board:\n  size: 5\n  win_value: 4096\nlog:\n  level: debug\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Board.Size != 5 || cfg.Board.WinValue != 4096 {
		t.Errorf("board = %+v, expected size 5 and win 4096", cfg.Board)
	}
	// Unset fields keep defaults
	if cfg.Board.Spawn4Probability != 0.10 || cfg.Board.StartTiles != 2 {
		t.Errorf("board defaults lost: %+v", cfg.Board)
	}
	if cfg.Storage.DBPath != Default().Storage.DBPath {
		t.Errorf("db path = %q, expected default", cfg.Storage.DBPath)
	}
	if cfg.LogLevel() != log.DebugLevel {
		t.Errorf("LogLevel() = %v, expected debug", cfg.LogLevel())
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should return an error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("board: [1, 2"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("malformed YAML should return an error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("board:\n  size: 1\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := Load(invalid); err == nil {
		t.Error("invalid board should return an error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		valid  bool
	}{
		{"defaults", func(*Config) {}, true},
		{"bad win value", func(c *Config) { c.Board.WinValue = 3000 }, false},
		{"empty db path", func(c *Config) { c.Storage.DBPath = "" }, false},
		{"negative idle timeout", func(c *Config) { c.Server.IdleTimeoutMinutes = -1 }, false},
		{"unknown log level", func(c *Config) { c.Log.Level = "chatty" }, false},
		{"empty log level", func(c *Config) { c.Log.Level = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tt.valid && err == nil {
				t.Error("Validate() = nil, expected error")
			}
		})
	}
}

func TestEngineConversion(t *testing.T) {
	if got := Default().Engine(); got != engine.DefaultConfig() {
		t.Errorf("Engine() = %+v, expected %+v", got, engine.DefaultConfig())
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandHome("~/.t2048/scores.db")
	if err != nil {
		t.Fatalf("ExpandHome() failed: %v", err)
	}
	if expected := filepath.Join(home, ".t2048", "scores.db"); got != expected {
		t.Errorf("ExpandHome() = %q, expected %q", got, expected)
	}

	if got, _ := ExpandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute path changed to %q", got)
	}
}
