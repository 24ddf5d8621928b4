package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// configEnvVar overrides the default config file location.
const configEnvVar = "SPANVIEW_CONFIG"

// Config holds CLI settings loaded from the optional TOML config file.
// Command-line flags take precedence over config file values.
type Config struct {
	Server ServerConfig `toml:"server"`
	Watch  WatchConfig  `toml:"watch"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	// Addr is the listen address, e.g. "127.0.0.1:8473".
	Addr string `toml:"addr"`
}

// WatchConfig configures snapshot file watching.
type WatchConfig struct {
	// DebounceMillis is how long to wait after the last write event before
	// reloading. Editors often emit several events per save.
	DebounceMillis int `toml:"debounce_millis"`
}

// LogConfig configures default logging behavior.
type LogConfig struct {
	// Level is the default log level ("debug", "info", "warn", "error").
	// The --verbose flag overrides it to debug.
	Level string `toml:"level"`
}

// defaultConfig returns the settings used when no config file exists.
func defaultConfig() Config {
	return Config{
		Server: ServerConfig{Addr: "127.0.0.1:8473"},
		Watch:  WatchConfig{DebounceMillis: 250},
		Log:    LogConfig{Level: "info"},
	}
}

// configPath returns the config file location: $SPANVIEW_CONFIG if set,
// otherwise <user config dir>/spanview/config.toml.
func configPath() (string, error) {
	if p := os.Getenv(configEnvVar); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "spanview", "config.toml"), nil
}

// loadConfig reads the config file, falling back to defaults when the file
// does not exist. A malformed file is an error rather than a silent default,
// so typos do not go unnoticed.
func loadConfig() (Config, error) {
	cfg := defaultConfig()

	path, err := configPath()
	if err != nil {
		return cfg, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
