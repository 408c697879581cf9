// Package config loads the pocketdo user configuration from
// ~/.pocketdo/config.toml. Every setting has a built-in default, so a
// missing config file is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// ConfigDir is the name of the config directory in home.
	ConfigDir = ".pocketdo"

	// ConfigFileName is the name of the config file.
	ConfigFileName = "config.toml"

	// DefaultDBFileName is the default database file name inside ConfigDir.
	DefaultDBFileName = "todos.db"

	// DefaultServerHost is the default server host.
	DefaultServerHost = "localhost"

	// DefaultServerPort is the default server port.
	DefaultServerPort = 7320

	// DefaultDebounceMillis is the default search debounce interval.
	DefaultDebounceMillis = 300
)

// Config represents the resolved configuration with defaults applied.
type Config struct {
	DBPath         string
	ServerHost     string
	ServerPort     int
	DebounceMillis int
	DefaultFilter  string
}

// configFile represents the raw TOML structure.
type configFile struct {
	Storage storageConfig `toml:"storage"`
	Server  serverConfig  `toml:"server"`
	List    listConfig    `toml:"list"`
}

// storageConfig represents the [storage] section in TOML.
type storageConfig struct {
	Path string `toml:"path"`
}

// serverConfig represents the [server] section in TOML.
type serverConfig struct {
	Host string `toml:"host"`
	Port *int   `toml:"port"`
}

// listConfig represents the [list] section in TOML.
type listConfig struct {
	DebounceMillis *int   `toml:"debounce_ms"`
	DefaultFilter  string `toml:"default_filter"`
}

// Load loads the configuration from ~/.pocketdo/config.toml.
// Returns a config with defaults (not an error) if the file doesn't exist.
func Load() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	return LoadFromDir(homeDir)
}

// LoadFromDir loads config using the specified directory as home.
// This is useful for testing.
func LoadFromDir(homeDir string) (*Config, error) {
	cfg := defaults(homeDir)

	configPath := filepath.Join(homeDir, ConfigDir, ConfigFileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig configFile
	if _, err := toml.Decode(string(data), &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config TOML: %w", err)
	}

	if rawConfig.Storage.Path != "" {
		cfg.DBPath = expandHome(rawConfig.Storage.Path, homeDir)
	}
	if rawConfig.Server.Host != "" {
		cfg.ServerHost = rawConfig.Server.Host
	}
	if rawConfig.Server.Port != nil {
		if err := validatePort(*rawConfig.Server.Port); err != nil {
			return nil, err
		}
		cfg.ServerPort = *rawConfig.Server.Port
	}
	if rawConfig.List.DebounceMillis != nil {
		if *rawConfig.List.DebounceMillis < 0 {
			return nil, fmt.Errorf("debounce_ms must not be negative, got %d", *rawConfig.List.DebounceMillis)
		}
		cfg.DebounceMillis = *rawConfig.List.DebounceMillis
	}
	if rawConfig.List.DefaultFilter != "" {
		if err := validateFilterName(rawConfig.List.DefaultFilter); err != nil {
			return nil, err
		}
		cfg.DefaultFilter = rawConfig.List.DefaultFilter
	}

	return cfg, nil
}

// Debounce returns the configured debounce interval as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMillis) * time.Millisecond
}

// ServerAddr returns the configured host:port address.
func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

func defaults(homeDir string) *Config {
	return &Config{
		DBPath:         filepath.Join(homeDir, ConfigDir, DefaultDBFileName),
		ServerHost:     DefaultServerHost,
		ServerPort:     DefaultServerPort,
		DebounceMillis: DefaultDebounceMillis,
		DefaultFilter:  "all",
	}
}

func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}
	return nil
}

func validateFilterName(name string) error {
	switch name {
	case "all", "pending", "completed":
		return nil
	}
	return fmt.Errorf("default_filter must be one of all, pending, completed, got %q", name)
}

func expandHome(path, homeDir string) string {
	if path == "~" {
		return homeDir
	}
	if len(path) > 1 && path[0] == '~' && path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
