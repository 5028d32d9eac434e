package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the top-level application configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Data    DataConfig    `toml:"data"`
	UI      UIConfig      `toml:"ui"`
	Logging LoggingConfig `toml:"logging"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Host               string   `toml:"host"`
	Port               int      `toml:"port"`
	StaticFilesDir     string   `toml:"static_files_dir"`
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`
	ReadTimeoutSecs    int      `toml:"read_timeout_secs"`
	WriteTimeoutSecs   int      `toml:"write_timeout_secs"`
	ShutdownTimeoutSec int      `toml:"shutdown_timeout_secs"`
}

// DataConfig describes where the per-airport datasets live.
type DataConfig struct {
	Dir            string `toml:"dir"`
	DefaultAirport string `toml:"default_airport"`
	WatchFiles     bool   `toml:"watch_files"`
}

// UIConfig carries timings handed to the browser shim.
type UIConfig struct {
	TooltipDelayMS      int `toml:"tooltip_delay_ms"`
	HighlightDurationMS int `toml:"highlight_duration_ms"`
}

// LoggingConfig holds the logger settings.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:               "0.0.0.0",
			Port:               8080,
			StaticFilesDir:     "web/static",
			CORSAllowedOrigins: []string{"*"},
			ReadTimeoutSecs:    15,
			WriteTimeoutSecs:   15,
			ShutdownTimeoutSec: 10,
		},
		Data: DataConfig{
			Dir:            "data",
			DefaultAirport: "uuee",
			WatchFiles:     true,
		},
		UI: UIConfig{
			TooltipDelayMS:      500,
			HighlightDurationMS: 1000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads the configuration from the given TOML file, applying defaults
// for any fields the file leaves unset. A missing file is not an error; the
// defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Data.Dir == "" {
		return fmt.Errorf("data dir must not be empty")
	}
	if c.Data.DefaultAirport == "" {
		return fmt.Errorf("default airport must not be empty")
	}
	if c.UI.TooltipDelayMS < 0 || c.UI.HighlightDurationMS < 0 {
		return fmt.Errorf("ui timings must not be negative")
	}
	return nil
}

// Addr returns the host:port the HTTP server binds to.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
