package config

import (
	"context"
	"fmt"

	"todo-api/internal/repository"
	"todo-api/internal/repository/memory"
	"todo-api/internal/repository/sqlrepo"
)

// CreateRepository creates the repository selected by config.Storage.Backend
func CreateRepository(ctx context.Context, config *Config) (repository.Repository, error) {
	switch config.Storage.Backend {
	case BackendMemory:
		if config.Storage.Seed {
			return memory.New(memory.DefaultSeed()...), nil
		}
		return memory.New(), nil
	case BackendSQLite:
		return openSQL(ctx, sqlrepo.SQLite, config.Storage.SQLitePath, config)
	case BackendPostgres:
		return openSQL(ctx, sqlrepo.Postgres, config.Storage.PostgresDSN, config)
	default:
		return nil, &ConfigError{Field: "storage.backend", Message: fmt.Sprintf("unknown backend %q", config.Storage.Backend)}
	}
}

// CreateTestRepository creates an empty in-memory sqlite repository for testing
func CreateTestRepository() (repository.Repository, error) {
	repo, err := sqlrepo.Open(context.Background(), sqlrepo.Options{Dialect: sqlrepo.SQLite, DSN: ":memory:"})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}
	return repo, nil
}

func openSQL(ctx context.Context, dialect sqlrepo.Dialect, dsn string, config *Config) (repository.Repository, error) {
	repo, err := sqlrepo.Open(ctx, sqlrepo.Options{
		Dialect:      dialect,
		DSN:          dsn,
		QueryTimeout: config.Storage.QueryTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return repo, nil
}
