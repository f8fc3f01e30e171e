package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all board server configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	JWT     JWTConfig     `yaml:"jwt"`
	Redis   RedisConfig   `yaml:"redis"`
	Session SessionConfig `yaml:"session"`
	Board   BoardConfig   `yaml:"board"`
}

// ServerConfig holds server-specific settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// JWTConfig holds JWT authentication settings
type JWTConfig struct {
	Issuer              string `yaml:"issuer"`
	PublicKeyURL        string `yaml:"public_key_url"`
	PublicKeyRefreshHrs int    `yaml:"public_key_refresh_hours"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Address         string `yaml:"address"`
	Password        string `yaml:"password"`
	DB              int    `yaml:"db"`
	SnapshotPrefix  string `yaml:"snapshot_prefix"`
	BlacklistPrefix string `yaml:"blacklist_prefix"`
}

// SessionConfig holds board session settings
type SessionConfig struct {
	MaxClients int `yaml:"max_clients"`
}

// BoardConfig holds grid generation settings used when no snapshot
// exists yet
type BoardConfig struct {
	Size           int     `yaml:"size"`
	CellSize       float64 `yaml:"cell_size"`
	Seed           int64   `yaml:"seed"`
	NoiseScale     float64 `yaml:"noise_scale"`
	NoiseAmplitude float64 `yaml:"noise_amplitude"`
	NoiseOctaves   int     `yaml:"noise_octaves"`
	SnapshotName   string  `yaml:"snapshot_name"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults if not provided
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.JWT.PublicKeyRefreshHrs == 0 {
		cfg.JWT.PublicKeyRefreshHrs = 24
	}
	if cfg.Session.MaxClients == 0 {
		cfg.Session.MaxClients = 100
	}
	if cfg.Board.Size == 0 {
		cfg.Board.Size = 32
	}
	if cfg.Board.CellSize == 0 {
		cfg.Board.CellSize = 10
	}
	if cfg.Board.NoiseOctaves == 0 {
		cfg.Board.NoiseOctaves = 3
	}
	if cfg.Board.SnapshotName == "" {
		cfg.Board.SnapshotName = "main"
	}

	return &cfg, nil
}
