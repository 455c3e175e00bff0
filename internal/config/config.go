package config

import (
	"os"
	"strconv"
	"time"
)

// Storage backends understood by CreateRepository.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config holds all configuration options for the to-do service
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Storage    StorageConfig    `toml:"storage"`
	Validation ValidationConfig `toml:"validation"`
	Logging    LoggingConfig    `toml:"logging"`
}

// ServerConfig holds HTTP listener configuration
type ServerConfig struct {
	Addr            string        `toml:"addr" env:"TODOS_ADDR"`
	ReadTimeout     time.Duration `toml:"read_timeout" env:"TODOS_READ_TIMEOUT"`
	WriteTimeout    time.Duration `toml:"write_timeout" env:"TODOS_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" env:"TODOS_SHUTDOWN_TIMEOUT"`
}

// StorageConfig selects and configures the to-do store backend
type StorageConfig struct {
	Backend      string        `toml:"backend" env:"TODOS_STORAGE_BACKEND"`
	SQLitePath   string        `toml:"sqlite_path" env:"TODOS_SQLITE_PATH"`
	PostgresDSN  string        `toml:"postgres_dsn" env:"TODOS_POSTGRES_DSN"`
	QueryTimeout time.Duration `toml:"query_timeout" env:"TODOS_DB_QUERY_TIMEOUT"`
	Seed         bool          `toml:"seed" env:"TODOS_SEED"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TaskMaxLength   int    `toml:"task_max_length" env:"TODOS_VALIDATION_TASK_MAX"`
	DefaultPriority string `toml:"default_priority" env:"TODOS_DEFAULT_PRIORITY"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string `toml:"level" env:"TODOS_LOG_LEVEL"`
	Format string `toml:"format" env:"TODOS_LOG_FORMAT"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":3000",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Storage: StorageConfig{
			Backend:      BackendMemory,
			SQLitePath:   "todos.db",
			QueryTimeout: 5 * time.Second,
			Seed:         true,
		},
		Validation: ValidationConfig{
			TaskMaxLength:   255,
			DefaultPriority: "medium",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadFromEnvironment loads configuration from environment variables.
// Unparseable values are ignored and the current value is kept.
func (c *Config) LoadFromEnvironment() error {
	// Server configuration
	if addr := os.Getenv("TODOS_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if v := os.Getenv("TODOS_READ_TIMEOUT"); v != "" {
		c.Server.ReadTimeout = ParseDurationWithFallback(v, c.Server.ReadTimeout)
	}
	if v := os.Getenv("TODOS_WRITE_TIMEOUT"); v != "" {
		c.Server.WriteTimeout = ParseDurationWithFallback(v, c.Server.WriteTimeout)
	}
	if v := os.Getenv("TODOS_SHUTDOWN_TIMEOUT"); v != "" {
		c.Server.ShutdownTimeout = ParseDurationWithFallback(v, c.Server.ShutdownTimeout)
	}

	// Storage configuration
	if backend := os.Getenv("TODOS_STORAGE_BACKEND"); backend != "" {
		c.Storage.Backend = backend
	}
	if path := os.Getenv("TODOS_SQLITE_PATH"); path != "" {
		c.Storage.SQLitePath = path
	}
	if dsn := os.Getenv("TODOS_POSTGRES_DSN"); dsn != "" {
		c.Storage.PostgresDSN = dsn
	}
	if v := os.Getenv("TODOS_DB_QUERY_TIMEOUT"); v != "" {
		c.Storage.QueryTimeout = ParseDurationWithFallback(v, c.Storage.QueryTimeout)
	}
	if v := os.Getenv("TODOS_SEED"); v != "" {
		c.Storage.Seed = ParseBoolWithFallback(v, c.Storage.Seed)
	}

	// Validation configuration
	if v := os.Getenv("TODOS_VALIDATION_TASK_MAX"); v != "" {
		c.Validation.TaskMaxLength = ParseIntWithFallback(v, c.Validation.TaskMaxLength)
	}
	if v := os.Getenv("TODOS_DEFAULT_PRIORITY"); v != "" {
		c.Validation.DefaultPriority = v
	}

	// Logging configuration
	if v := os.Getenv("TODOS_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("TODOS_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}

	return nil
}

// Validate validates the configuration and returns the first problem found
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "listen address cannot be empty"}
	}
	if c.Server.ReadTimeout <= 0 {
		return &ConfigError{Field: "server.read_timeout", Message: "read timeout must be positive"}
	}
	if c.Server.WriteTimeout <= 0 {
		return &ConfigError{Field: "server.write_timeout", Message: "write timeout must be positive"}
	}
	if c.Server.ShutdownTimeout <= 0 {
		return &ConfigError{Field: "server.shutdown_timeout", Message: "shutdown timeout must be positive"}
	}

	switch c.Storage.Backend {
	case BackendMemory:
	case BackendSQLite:
		if c.Storage.SQLitePath == "" {
			return &ConfigError{Field: "storage.sqlite_path", Message: "sqlite path cannot be empty"}
		}
	case BackendPostgres:
		if c.Storage.PostgresDSN == "" {
			return &ConfigError{Field: "storage.postgres_dsn", Message: "postgres DSN cannot be empty"}
		}
	default:
		return &ConfigError{Field: "storage.backend", Message: "unknown backend " + strconv.Quote(c.Storage.Backend)}
	}
	if c.Storage.QueryTimeout <= 0 {
		return &ConfigError{Field: "storage.query_timeout", Message: "query timeout must be positive"}
	}

	if c.Validation.TaskMaxLength < 1 {
		return &ConfigError{Field: "validation.task_max_length", Message: "task maximum length must be at least 1"}
	}
	if c.Validation.DefaultPriority == "" {
		return &ConfigError{Field: "validation.default_priority", Message: "default priority cannot be empty"}
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ConfigError{Field: "logging.level", Message: "unknown log level " + strconv.Quote(c.Logging.Level)}
	}
	switch c.Logging.Format {
	case "text", "json", "logfmt":
	default:
		return &ConfigError{Field: "logging.format", Message: "unknown log format " + strconv.Quote(c.Logging.Format)}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
