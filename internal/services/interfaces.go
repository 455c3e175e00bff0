package services

import (
	"context"

	"todo-api/internal/domain"
)

// TodoService is the backend-agnostic to-do store used by the HTTP layer.
type TodoService interface {
	// Todo CRUD operations
	CreateTodo(ctx context.Context, task string, priority *string) (*domain.Todo, error)
	GetTodo(ctx context.Context, id int64) (*domain.Todo, error)
	ListTodos(ctx context.Context, filter domain.ListFilter) ([]*domain.Todo, error)
	UpdateTodo(ctx context.Context, id int64, patch domain.TodoPatch) (*domain.Todo, error)
	DeleteTodo(ctx context.Context, id int64) error

	// Bulk operations
	CompleteAll(ctx context.Context) ([]*domain.Todo, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TodoService TodoService
}
