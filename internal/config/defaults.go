package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// Default returns the hardcoded default configuration.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Size:              4,
			WinValue:          2048,
			Spawn4Probability: 0.10,
			StartTiles:        2,
		},
		Storage: StorageConfig{
			DBPath: "~/.t2048/scores.db",
		},
		Server: ServerConfig{
			SSHAddress:         ":23234",
			HTTPAddress:        ":8080",
			IdleTimeoutMinutes: 30,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
