package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, ":3000", cfg.Server.Addr)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.True(t, cfg.Storage.Seed)
	assert.Equal(t, 255, cfg.Validation.TaskMaxLength)
	assert.Equal(t, "medium", cfg.Validation.DefaultPriority)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TODOS_ADDR", ":8080")
	t.Setenv("TODOS_SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("TODOS_STORAGE_BACKEND", "sqlite")
	t.Setenv("TODOS_SQLITE_PATH", "/tmp/x.db")
	t.Setenv("TODOS_DB_QUERY_TIMEOUT", "not-a-duration")
	t.Setenv("TODOS_SEED", "false")
	t.Setenv("TODOS_VALIDATION_TASK_MAX", "80")
	t.Setenv("TODOS_LOG_FORMAT", "json")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/x.db", cfg.Storage.SQLitePath)
	assert.Equal(t, 5*time.Second, cfg.Storage.QueryTimeout, "invalid duration keeps default")
	assert.False(t, cfg.Storage.Seed)
	assert.Equal(t, 80, cfg.Validation.TaskMaxLength)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
		{"zero read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }, "server.read_timeout"},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "redis" }, "storage.backend"},
		{"sqlite without path", func(c *Config) {
			c.Storage.Backend = BackendSQLite
			c.Storage.SQLitePath = ""
		}, "storage.sqlite_path"},
		{"postgres without dsn", func(c *Config) { c.Storage.Backend = BackendPostgres }, "storage.postgres_dsn"},
		{"zero query timeout", func(c *Config) { c.Storage.QueryTimeout = 0 }, "storage.query_timeout"},
		{"zero task length", func(c *Config) { c.Validation.TaskMaxLength = 0 }, "validation.task_max_length"},
		{"empty default priority", func(c *Config) { c.Validation.DefaultPriority = "" }, "validation.default_priority"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "todos.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
[server]
addr = "127.0.0.1:9000"
shutdown_timeout = "2s"

[storage]
backend = "sqlite"
sqlite_path = "data/todos.db"
seed = false

[validation]
task_max_length = 120
default_priority = "low"

[logging]
level = "debug"
format = "logfmt"
`)

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout, "unset keys keep defaults")
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "data/todos.db", cfg.Storage.SQLitePath)
	assert.False(t, cfg.Storage.Seed)
	assert.Equal(t, 120, cfg.Validation.TaskMaxLength)
	assert.Equal(t, "low", cfg.Validation.DefaultPriority)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromFile_UnknownKey(t *testing.T) {
	path := writeConfigFile(t, `
[server]
adress = ":1"
`)

	err := NewConfig().LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.adress")
}

func TestLoadFromFile_Missing(t *testing.T) {
	err := NewConfig().LoadFromFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoader_Cascade(t *testing.T) {
	path := writeConfigFile(t, `
[server]
addr = ":4000"

[logging]
level = "warn"
`)
	t.Setenv(ConfigFileEnv, path)
	t.Setenv("TODOS_LOG_LEVEL", "error")

	addr := ":5000"
	seed := false
	cfg, err := NewLoader().LoadWithOverrides(&ConfigOverrides{Addr: &addr, Seed: &seed})
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Server.Addr, "flag beats file")
	assert.Equal(t, "error", cfg.Logging.Level, "env beats file")
	assert.False(t, cfg.Storage.Seed)
}

func TestLoader_ExplicitFileWinsOverEnv(t *testing.T) {
	envPath := writeConfigFile(t, "[server]\naddr = \":1111\"\n")
	flagPath := writeConfigFile(t, "[server]\naddr = \":2222\"\n")
	t.Setenv(ConfigFileEnv, envPath)

	cfg, err := NewLoader().WithConfigFile(flagPath).Load()
	require.NoError(t, err)
	assert.Equal(t, ":2222", cfg.Server.Addr)
}

func TestLoader_OverridesRevalidated(t *testing.T) {
	backend := "postgres"
	_, err := NewLoader().LoadWithOverrides(&ConfigOverrides{Backend: &backend})
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "storage.postgres_dsn", cfgErr.Field)
}

func TestParseWithFallback(t *testing.T) {
	assert.Equal(t, 2*time.Second, ParseDurationWithFallback("2s", time.Second))
	assert.Equal(t, time.Second, ParseDurationWithFallback("soon", time.Second))
	assert.Equal(t, 7, ParseIntWithFallback("7", 1))
	assert.Equal(t, 1, ParseIntWithFallback("seven", 1))
	assert.True(t, ParseBoolWithFallback("true", false))
	assert.False(t, ParseBoolWithFallback("maybe", false))
}
