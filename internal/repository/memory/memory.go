// Package memory keeps to-dos in process memory, in insertion order.
package memory

import (
	"context"
	"strconv"
	"sync"

	"todo-api/internal/domain"
	"todo-api/internal/errors"
	"todo-api/internal/logging"
)

// DefaultSeed returns the records a fresh seeded store starts with.
func DefaultSeed() []domain.Todo {
	return []domain.Todo{
		{Task: "Learn Go", Completed: false, Priority: "medium"},
		{Task: "Build a REST API", Completed: false, Priority: "medium"},
	}
}

// Repository is an in-memory to-do store. Ids come from a counter that
// only ever increases, so a deleted id is never handed out again.
type Repository struct {
	mu     sync.RWMutex
	todos  []domain.Todo
	nextID int64
}

// New creates an in-memory repository holding seed, assigning ids from 1.
func New(seed ...domain.Todo) *Repository {
	r := &Repository{
		todos:  make([]domain.Todo, 0, len(seed)),
		nextID: 1,
	}
	for _, todo := range seed {
		todo.ID = r.nextID
		r.nextID++
		if todo.Priority == "" {
			todo.Priority = domain.DefaultPriority
		}
		r.todos = append(r.todos, todo)
	}
	return r
}

// CreateTodo appends todo and sets its ID.
func (r *Repository) CreateTodo(ctx context.Context, todo *domain.Todo) error {
	if err := ctx.Err(); err != nil {
		return errors.NewDatabaseError("create todo", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	todo.ID = r.nextID
	r.nextID++
	r.todos = append(r.todos, *todo)

	logging.Debugf("memory: created todo %d", todo.ID)
	return nil
}

// GetTodo returns a copy of the todo with the given id.
func (r *Repository) GetTodo(ctx context.Context, id int64) (*domain.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewDatabaseError("get todo", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, notFound(id)
	}
	todo := r.todos[i]
	return &todo, nil
}

// ListTodos returns copies of the todos matching filter, in insertion order.
func (r *Repository) ListTodos(ctx context.Context, filter domain.ListFilter) ([]*domain.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewDatabaseError("list todos", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	todos := make([]*domain.Todo, 0, len(r.todos))
	for _, todo := range r.todos {
		if filter.Matches(todo) {
			todo := todo
			todos = append(todos, &todo)
		}
	}
	return todos, nil
}

// UpdateTodo applies the present patch fields to the todo with the given id.
func (r *Repository) UpdateTodo(ctx context.Context, id int64, patch domain.TodoPatch) (*domain.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewDatabaseError("update todo", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, notFound(id)
	}
	r.todos[i] = patch.Apply(r.todos[i])

	logging.Debugf("memory: updated todo %d", id)
	todo := r.todos[i]
	return &todo, nil
}

// CompleteAllTodos marks every todo completed and returns the full collection.
func (r *Repository) CompleteAllTodos(ctx context.Context) ([]*domain.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewDatabaseError("complete all todos", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	todos := make([]*domain.Todo, 0, len(r.todos))
	for i := range r.todos {
		r.todos[i] = r.todos[i].Complete()
		todo := r.todos[i]
		todos = append(todos, &todo)
	}

	logging.Debugf("memory: completed %d todos", len(todos))
	return todos, nil
}

// DeleteTodo removes the todo with the given id.
func (r *Repository) DeleteTodo(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return errors.NewDatabaseError("delete todo", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return notFound(id)
	}
	r.todos = append(r.todos[:i], r.todos[i+1:]...)

	logging.Debugf("memory: deleted todo %d", id)
	return nil
}

// Close is a no-op.
func (r *Repository) Close() error {
	return nil
}

// indexOf must be called with r.mu held.
func (r *Repository) indexOf(id int64) int {
	for i := range r.todos {
		if r.todos[i].ID == id {
			return i
		}
	}
	return -1
}

func notFound(id int64) error {
	return errors.NewNotFoundError("todo", strconv.FormatInt(id, 10))
}
