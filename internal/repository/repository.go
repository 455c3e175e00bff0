package repository

import (
	"context"

	"todo-api/internal/domain"
)

// Repository defines the storage operations every to-do backend provides.
// Misses are reported as not_found AppErrors, driver failures as database
// AppErrors.
type Repository interface {
	// Create operations
	CreateTodo(ctx context.Context, todo *domain.Todo) error

	// Read operations
	GetTodo(ctx context.Context, id int64) (*domain.Todo, error)
	ListTodos(ctx context.Context, filter domain.ListFilter) ([]*domain.Todo, error)

	// Update operations
	UpdateTodo(ctx context.Context, id int64, patch domain.TodoPatch) (*domain.Todo, error)
	CompleteAllTodos(ctx context.Context) ([]*domain.Todo, error)

	// Delete operations
	DeleteTodo(ctx context.Context, id int64) error

	// Utility
	Close() error
}
