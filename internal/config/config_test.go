package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv isolates a test from the caller's TALENTLOOP_* settings.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TALENTLOOP_DB", "TALENTLOOP_LOG_LEVEL", "TALENTLOOP_LOG_FORMAT",
		"TALENTLOOP_REDIS_ADDR", "TALENTLOOP_REDIS_PASSWORD", "TALENTLOOP_REDIS_DB",
		"TALENTLOOP_REDIS_CHANNEL", "TALENTLOOP_EVENT_LOG",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "talentloop", cfg.Redis.Channel)
	assert.False(t, cfg.Redis.Enabled())
	assert.True(t, cfg.EventLog)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	p := writeFile(t, `
db_path = "/tmp/tl.db"
event_log = false

[log]
level = "debug"

[redis]
addr = "localhost:6379"
db = 2
`)
	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/tl.db", cfg.DBPath)
	assert.False(t, cfg.EventLog)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format, "unset keys keep defaults")
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "talentloop", cfg.Redis.Channel)
	assert.True(t, cfg.Redis.Enabled())
}

func TestLoad_DefaultPathFromXDG(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "talentloop"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "talentloop", "config.toml"),
		[]byte("[log]\nformat = \"json\"\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	p := writeFile(t, "[log]\nlevel = \"debug\"\n[redis]\ndb = 1\n")
	t.Setenv("TALENTLOOP_LOG_LEVEL", "warn")
	t.Setenv("TALENTLOOP_REDIS_DB", "4")
	t.Setenv("TALENTLOOP_REDIS_CHANNEL", "hiring")
	t.Setenv("TALENTLOOP_EVENT_LOG", "false")
	t.Setenv("TALENTLOOP_DB", "/data/tl.db")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 4, cfg.Redis.DB)
	assert.Equal(t, "hiring", cfg.Redis.Channel)
	assert.False(t, cfg.EventLog)
	assert.Equal(t, "/data/tl.db", cfg.DBPath)
}

func TestLoad_BadEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("TALENTLOOP_REDIS_DB", "two")
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_BadTOML(t *testing.T) {
	clearEnv(t)
	p := writeFile(t, "[log\nlevel = ")
	_, err := Load(p)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"debug level", func(c *Config) { c.Log.Level = "debug" }, false},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"empty level", func(c *Config) { c.Log.Level = "" }, true},
		{"json format", func(c *Config) { c.Log.Format = "json" }, false},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"negative redis db", func(c *Config) { c.Redis.DB = -1 }, true},
		{"redis without channel", func(c *Config) { c.Redis.Addr = "x:1"; c.Redis.Channel = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
