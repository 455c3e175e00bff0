// Package sqlrepo stores to-dos in a single relational table, on sqlite or postgres.
package sqlrepo

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"todo-api/internal/domain"
	"todo-api/internal/errors"
	"todo-api/internal/logging"
)

// DefaultQueryTimeout bounds each statement when Options.QueryTimeout is zero.
const DefaultQueryTimeout = 5 * time.Second

// Options configures Open.
type Options struct {
	Dialect      Dialect
	DSN          string
	QueryTimeout time.Duration
}

// Repository implements repository.Repository on database/sql.
type Repository struct {
	db           *sql.DB
	dialect      Dialect
	queryTimeout time.Duration
}

// Open connects to the database described by opts and creates the todos
// table when missing.
func Open(ctx context.Context, opts Options) (*Repository, error) {
	if opts.Dialect == "" {
		opts.Dialect = SQLite
	}
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = DefaultQueryTimeout
	}

	db, err := sql.Open(opts.Dialect.DriverName(), opts.DSN)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// A single connection keeps ":memory:" databases alive and serializes sqlite writers.
	if opts.Dialect == SQLite {
		db.SetMaxOpenConns(1)
	}

	r := &Repository{db: db, dialect: opts.Dialect, queryTimeout: opts.QueryTimeout}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("connect to database", err)
	}

	if err := EnsureSchema(ctx, db, opts.Dialect); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("create schema", err)
	}

	logging.Debug("sqlrepo: opened database", "dialect", opts.Dialect)
	return r, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// CreateTodo inserts todo and sets its ID.
func (r *Repository) CreateTodo(ctx context.Context, todo *domain.Todo) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := r.dialect.Rebind(`
	INSERT INTO todos (task, completed, priority)
	VALUES (?, ?, ?)
	RETURNING ` + todoColumns)

	rec, err := QuerySingle(ctx, r.db, query, scanTodo, "todo", "", todo.Task, todo.Completed, todo.Priority)
	if err != nil {
		return err
	}

	*todo = *toDomain(rec)
	logging.Debugf("sqlrepo: created todo %d", todo.ID)
	return nil
}

// GetTodo retrieves a todo by ID
func (r *Repository) GetTodo(ctx context.Context, id int64) (*domain.Todo, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := r.dialect.Rebind(`SELECT ` + todoColumns + ` FROM todos WHERE id = ?`)

	rec, err := QuerySingle(ctx, r.db, query, scanTodo, "todo", formatID(id), id)
	if err != nil {
		return nil, err
	}
	return toDomain(rec), nil
}

// ListTodos retrieves the todos matching filter, ordered by id
func (r *Repository) ListTodos(ctx context.Context, filter domain.ListFilter) ([]*domain.Todo, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + todoColumns + ` FROM todos`
	var args []interface{}
	if filter.Completed != nil {
		query += ` WHERE completed = ?`
		args = append(args, *filter.Completed)
	}
	query += ` ORDER BY id ASC`

	recs, err := QueryMultiple(ctx, r.db, r.dialect.Rebind(query), scanTodos, "todos", args...)
	if err != nil {
		return nil, err
	}
	return toDomainSlice(recs), nil
}

// UpdateTodo writes only the fields present in patch. An empty patch reads
// the current row.
func (r *Repository) UpdateTodo(ctx context.Context, id int64, patch domain.TodoPatch) (*domain.Todo, error) {
	if patch.IsEmpty() {
		return r.GetTodo(ctx, id)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var sets []string
	var args []interface{}
	if patch.Task != nil {
		sets = append(sets, "task = ?")
		args = append(args, *patch.Task)
	}
	if patch.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, *patch.Completed)
	}
	if patch.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, *patch.Priority)
	}
	args = append(args, id)

	query := r.dialect.Rebind(`
	UPDATE todos
	SET ` + strings.Join(sets, ", ") + `
	WHERE id = ?
	RETURNING ` + todoColumns)

	rec, err := QuerySingle(ctx, r.db, query, scanTodo, "todo", formatID(id), args...)
	if err != nil {
		return nil, err
	}

	logging.Debugf("sqlrepo: updated todo %d", id)
	return toDomain(rec), nil
}

// CompleteAllTodos marks every todo completed in one statement and returns
// the full collection.
func (r *Repository) CompleteAllTodos(ctx context.Context) ([]*domain.Todo, error) {
	execCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.db.ExecContext(execCtx, r.dialect.Rebind(`UPDATE todos SET completed = ?`), true)
	if err != nil {
		return nil, HandleDatabaseError("complete all todos", err)
	}
	if n, err := result.RowsAffected(); err == nil {
		logging.Debugf("sqlrepo: completed %d todos", n)
	}

	return r.ListTodos(ctx, domain.ListFilter{})
}

// DeleteTodo deletes a todo by ID
func (r *Repository) DeleteTodo(ctx context.Context, id int64) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := r.dialect.Rebind(`DELETE FROM todos WHERE id = ?`)
	if err := ExecuteWithRowsAffected(ctx, r.db, query, "todo", formatID(id), id); err != nil {
		return err
	}

	logging.Debugf("sqlrepo: deleted todo %d", id)
	return nil
}

func (r *Repository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.queryTimeout)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
