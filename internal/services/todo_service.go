package services

import (
	"context"
	"strconv"

	"todo-api/internal/config"
	"todo-api/internal/domain"
	"todo-api/internal/errors"
	"todo-api/internal/repository"
	"todo-api/internal/validation"
)

// todoServiceImpl implements the TodoService interface
type todoServiceImpl struct {
	repo          repository.Repository
	todoValidator *validation.TodoValidator
}

// NewTodoService creates a TodoService with built-in validation limits
func NewTodoService(repo repository.Repository) TodoService {
	return &todoServiceImpl{
		repo:          repo,
		todoValidator: validation.NewTodoValidator(),
	}
}

// NewTodoServiceWithConfig creates a TodoService using cfg's validation limits
func NewTodoServiceWithConfig(repo repository.Repository, cfg *config.Config) TodoService {
	return &todoServiceImpl{
		repo:          repo,
		todoValidator: validation.NewTodoValidatorWithConfig(cfg),
	}
}

// NewServiceContainer wires every service on top of repo
func NewServiceContainer(repo repository.Repository, cfg *config.Config) *ServiceContainer {
	return &ServiceContainer{
		TodoService: NewTodoServiceWithConfig(repo, cfg),
	}
}

// CreateTodo stores a new, not completed todo. A nil or blank priority
// falls back to the configured default.
func (s *todoServiceImpl) CreateTodo(ctx context.Context, task string, priority *string) (*domain.Todo, error) {
	todo, err := s.todoValidator.NormalizeCreate(task, priority)
	if err != nil {
		return nil, errors.NewValidationError("invalid todo", err)
	}

	if err := s.repo.CreateTodo(ctx, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

// GetTodo retrieves a todo by its ID
func (s *todoServiceImpl) GetTodo(ctx context.Context, id int64) (*domain.Todo, error) {
	if err := s.checkID(id); err != nil {
		return nil, err
	}
	return s.repo.GetTodo(ctx, id)
}

// ListTodos returns the todos matching filter
func (s *todoServiceImpl) ListTodos(ctx context.Context, filter domain.ListFilter) ([]*domain.Todo, error) {
	return s.repo.ListTodos(ctx, filter)
}

// UpdateTodo applies the present, non-blank patch fields
func (s *todoServiceImpl) UpdateTodo(ctx context.Context, id int64, patch domain.TodoPatch) (*domain.Todo, error) {
	if err := s.checkID(id); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetTodo(ctx, id); err != nil {
		return nil, err
	}

	normalized, err := s.todoValidator.NormalizePatch(patch)
	if err != nil {
		return nil, errors.NewValidationError("invalid todo", err)
	}

	return s.repo.UpdateTodo(ctx, id, normalized)
}

// DeleteTodo removes a todo by its ID
func (s *todoServiceImpl) DeleteTodo(ctx context.Context, id int64) error {
	if err := s.checkID(id); err != nil {
		return err
	}
	return s.repo.DeleteTodo(ctx, id)
}

// CompleteAll marks every todo completed and returns the whole collection
func (s *todoServiceImpl) CompleteAll(ctx context.Context) ([]*domain.Todo, error) {
	return s.repo.CompleteAllTodos(ctx)
}

// checkID reports ids that can never be stored as a miss.
func (s *todoServiceImpl) checkID(id int64) error {
	if err := s.todoValidator.ValidateTodoID(id); err != nil {
		return errors.NewNotFoundError("todo", strconv.FormatInt(id, 10))
	}
	return nil
}
