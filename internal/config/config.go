// Package config loads YAML configuration for the storage and lobby
// services, falling back to sensible defaults when no file is present —
// the same pattern the teacher stack uses for its login/game server
// configs.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Storage holds configuration for the storage service.
type Storage struct {
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`
	DataDir     string `yaml:"data_dir"`
	GamesDir    string `yaml:"games_dir"`
	LogLevel    string `yaml:"log_level"`
	BcryptCost  int    `yaml:"bcrypt_cost"`
}

// DefaultStorage returns the storage service's default configuration.
func DefaultStorage() Storage {
	return Storage{
		BindAddress: "0.0.0.0",
		Port:        9000,
		DataDir:     "storage/data",
		GamesDir:    "storage/games",
		LogLevel:    "info",
		BcryptCost:  0, // 0 means bcrypt.DefaultCost
	}
}

// LoadStorage loads the storage service config from path, or returns
// defaults if the file does not exist.
func LoadStorage(path string) (Storage, error) {
	cfg := DefaultStorage()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Addr returns "host:port" for binding.
func (s Storage) Addr() string {
	return fmt.Sprintf("%s:%d", s.BindAddress, s.Port)
}

// Lobby holds configuration for the lobby service.
type Lobby struct {
	BindAddress     string `yaml:"bind_address"`
	Port            int    `yaml:"port"`
	StorageHost     string `yaml:"storage_host"`
	StoragePort     int    `yaml:"storage_port"`
	MatchBasePort   int    `yaml:"match_base_port"`
	MatchBinaryPath string `yaml:"match_binary_path"`
	GamesDirPath    string `yaml:"games_dir"`
	LogLevel        string `yaml:"log_level"`
}

// DefaultLobby returns the lobby service's default configuration.
func DefaultLobby() Lobby {
	return Lobby{
		BindAddress:     "0.0.0.0",
		Port:            9100,
		StorageHost:     "127.0.0.1",
		StoragePort:     9000,
		MatchBasePort:   9200,
		MatchBinaryPath: "match",
		GamesDirPath:    "storage/games",
		LogLevel:        "info",
	}
}

// LoadLobby loads the lobby service config from path, or returns defaults
// if the file does not exist.
func LoadLobby(path string) (Lobby, error) {
	cfg := DefaultLobby()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Addr returns "host:port" for binding.
func (l Lobby) Addr() string {
	return fmt.Sprintf("%s:%d", l.BindAddress, l.Port)
}

// StorageAddr returns "host:port" for dialing the storage service.
func (l Lobby) StorageAddr() string {
	return fmt.Sprintf("%s:%d", l.StorageHost, l.StoragePort)
}

// GamesDir returns the root of the shared game artifact directory. The
// lobby writes artifacts here directly (developer uploads), and its
// download handler reads them back from the path recorded in each
// GameVersion row.
func (l Lobby) GamesDir() string {
	return l.GamesDirPath
}
