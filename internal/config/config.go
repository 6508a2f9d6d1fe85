// Package config provides YAML-based configuration loading for the 2048
// engine, score storage, remote servers and logging.
package config

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

// Config is the full application configuration.
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// BoardConfig defines the classic game's board parameters.
type BoardConfig struct {
	Size              int     `yaml:"size"`
	WinValue          int     `yaml:"win_value"`          // 0 disables winning
	Spawn4Probability float64 `yaml:"spawn4_probability"` // Chance a spawned tile is a 4
	StartTiles        int     `yaml:"start_tiles"`
}

// StorageConfig defines where scores and recorded games live.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// ServerConfig defines remote play listeners.
type ServerConfig struct {
	SSHAddress         string `yaml:"ssh_address"`
	HTTPAddress        string `yaml:"http_address"`
	HostKeyPath        string `yaml:"host_key_path"` // Empty means ~/.t2048/host_key
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// LogConfig defines logging behaviour.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Engine converts the board section into an engine configuration.
func (c Config) Engine() engine.Config {
	return engine.Config{
		Size:       c.Board.Size,
		WinValue:   c.Board.WinValue,
		Spawn4Prob: c.Board.Spawn4Probability,
		StartTiles: c.Board.StartTiles,
	}
}

// LogLevel returns the parsed log level, defaulting to info.
func (c Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Validate checks every section for unusable values.
func (c Config) Validate() error {
	if err := c.Engine().Validate(); err != nil {
		return fmt.Errorf("config: board: %w", err)
	}
	if c.Storage.DBPath == "" {
		return fmt.Errorf("config: storage.db_path must not be empty")
	}
	if c.Server.IdleTimeoutMinutes < 0 {
		return fmt.Errorf("config: server.idle_timeout_minutes must not be negative")
	}
	if c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("config: log.level: %w", err)
		}
	}
	return nil
}
