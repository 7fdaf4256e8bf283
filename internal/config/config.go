package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

// Config holds all talentloop runtime configuration.
type Config struct {
	// DBPath is the SQLite database file. Empty means the default
	// XDG data location.
	DBPath string `toml:"db_path"`

	Log   LogConfig   `toml:"log"`
	Redis RedisConfig `toml:"redis"`

	// EventLog persists every lifecycle event to the database.
	EventLog bool `toml:"event_log"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `toml:"level"`  // Default: "info"
	Format string `toml:"format"` // "console" or "json". Default: "console"
}

// RedisConfig configures the Redis event sink. An empty Addr disables it.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Channel  string `toml:"channel"` // Default: "talentloop"
}

// Enabled reports whether events should be published to Redis.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Redis: RedisConfig{
			Channel: "talentloop",
		},
		EventLog: true,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/talentloop/config.toml, falling
// back to ~/.config. Returns "" if no home directory is available.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "talentloop", "config.toml")
	}
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".config", "talentloop", "config.toml")
	}
	return ""
}

// Load builds a Config from defaults, the TOML file at path and then
// TALENTLOOP_* environment variables. A missing file at the default
// path is not an error; a missing explicit path is.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		err := cfg.mergeFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist) && !explicit:
		case err != nil:
			return cfg, err
		}
	}

	if err := cfg.mergeEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// mergeFile overlays values set in the TOML file onto c.
func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	// Decoding into the current value keeps defaults for keys the file omits.
	if err := toml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	if v := os.Getenv("TALENTLOOP_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("TALENTLOOP_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("TALENTLOOP_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("TALENTLOOP_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("TALENTLOOP_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("TALENTLOOP_REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TALENTLOOP_REDIS_DB: %w", err)
		}
		c.Redis.DB = n
	}
	if v := os.Getenv("TALENTLOOP_REDIS_CHANNEL"); v != "" {
		c.Redis.Channel = v
	}
	if v := os.Getenv("TALENTLOOP_EVENT_LOG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TALENTLOOP_EVENT_LOG: %w", err)
		}
		c.EventLog = b
	}
	return nil
}

// Validate checks that every value is usable.
func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil || c.Log.Level == "" {
		return fmt.Errorf("unknown log level: %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format: %q", c.Log.Format)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("redis db must be non-negative, got %d", c.Redis.DB)
	}
	if c.Redis.Enabled() && c.Redis.Channel == "" {
		return fmt.Errorf("redis channel is required when redis addr is set")
	}
	return nil
}
