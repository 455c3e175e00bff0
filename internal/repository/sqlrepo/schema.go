package sqlrepo

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// EnsureSchema creates the todos table if it does not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB, dialect Dialect) error {
	ddl, err := schemaFS.ReadFile("schema/" + string(dialect) + ".sql")
	if err != nil {
		return fmt.Errorf("failed to load %s schema: %w", dialect, err)
	}

	if _, err := db.ExecContext(ctx, string(ddl)); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
