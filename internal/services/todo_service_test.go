package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-api/internal/config"
	"todo-api/internal/domain"
	"todo-api/internal/errors"
	"todo-api/internal/repository"
	"todo-api/internal/repository/memory"
	"todo-api/internal/repository/sqlrepo"
	"todo-api/internal/validation"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// backends returns a fresh, seeded repository per backend so every test runs against both.
func backends(t *testing.T) map[string]repository.Repository {
	t.Helper()
	ctx := context.Background()

	sqlRepo, err := sqlrepo.Open(ctx, sqlrepo.Options{Dialect: sqlrepo.SQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { sqlRepo.Close() })
	for _, seed := range memory.DefaultSeed() {
		seed := seed
		require.NoError(t, sqlRepo.CreateTodo(ctx, &seed))
	}

	return map[string]repository.Repository{
		"memory": memory.New(memory.DefaultSeed()...),
		"sqlite": sqlRepo,
	}
}

func TestTodoService_CreateTodo(t *testing.T) {
	tests := []struct {
		name             string
		task             string
		priority         *string
		expectedTask     string
		expectedPriority string
		errorAssertion   func(t *testing.T, err error)
	}{
		{
			name:             "should default priority to medium",
			task:             "Write tests",
			expectedTask:     "Write tests",
			expectedPriority: "medium",
		},
		{
			name:             "should keep explicit priority",
			task:             "Ship",
			priority:         strPtr("high"),
			expectedTask:     "Ship",
			expectedPriority: "high",
		},
		{
			name:             "should treat blank priority as missing",
			task:             "Ship",
			priority:         strPtr(""),
			expectedTask:     "Ship",
			expectedPriority: "medium",
		},
		{
			name:             "should trim task",
			task:             "  padded  ",
			expectedTask:     "padded",
			expectedPriority: "medium",
		},
		{
			name: "should reject empty task",
			task: "",
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
				assert.True(t, validation.IsValidationError(err))
			},
		},
		{
			name: "should reject whitespace-only task",
			task: "   ",
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
			},
		},
		{
			name: "should reject over-long task",
			task: strings.Repeat("x", 256),
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
			},
		},
	}

	for _, tt := range tests {
		for backend, repo := range backends(t) {
			t.Run(backend+"/"+tt.name, func(t *testing.T) {
				service := NewTodoService(repo)

				result, err := service.CreateTodo(context.Background(), tt.task, tt.priority)

				if tt.errorAssertion != nil {
					require.Error(t, err)
					tt.errorAssertion(t, err)
					assert.Nil(t, result)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, int64(3), result.ID)
				assert.Equal(t, tt.expectedTask, result.Task)
				assert.Equal(t, tt.expectedPriority, result.Priority)
				assert.False(t, result.Completed)
			})
		}
	}
}

func TestTodoService_CreateTodo_ConfiguredDefaults(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Validation.DefaultPriority = "low"
	cfg.Validation.TaskMaxLength = 5

	service := NewTodoServiceWithConfig(memory.New(), cfg)

	todo, err := service.CreateTodo(context.Background(), "short", nil)
	require.NoError(t, err)
	assert.Equal(t, "low", todo.Priority)

	_, err = service.CreateTodo(context.Background(), "too long", nil)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
}

func TestTodoService_ListTodos(t *testing.T) {
	for backend, repo := range backends(t) {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			service := NewTodoService(repo)

			_, err := service.UpdateTodo(ctx, 2, domain.TodoPatch{Completed: boolPtr(true)})
			require.NoError(t, err)

			all, err := service.ListTodos(ctx, domain.ListFilter{})
			require.NoError(t, err)
			assert.Len(t, all, 2)

			completed, err := service.ListTodos(ctx, domain.CompletedFilter(true))
			require.NoError(t, err)
			require.Len(t, completed, 1)
			assert.Equal(t, int64(2), completed[0].ID)

			pending, err := service.ListTodos(ctx, domain.CompletedFilter(false))
			require.NoError(t, err)
			require.Len(t, pending, 1)
			assert.Equal(t, int64(1), pending[0].ID)
		})
	}
}

func TestTodoService_UpdateTodo(t *testing.T) {
	tests := []struct {
		name     string
		patch    domain.TodoPatch
		expected domain.Todo
	}{
		{
			name:     "completed only leaves task and priority",
			patch:    domain.TodoPatch{Completed: boolPtr(true)},
			expected: domain.Todo{ID: 1, Task: "Learn Go", Completed: true, Priority: "medium"},
		},
		{
			name:     "blank task and priority are ignored",
			patch:    domain.TodoPatch{Task: strPtr("  "), Priority: strPtr("")},
			expected: domain.Todo{ID: 1, Task: "Learn Go", Completed: false, Priority: "medium"},
		},
		{
			name:     "task is trimmed",
			patch:    domain.TodoPatch{Task: strPtr(" Learn Go well ")},
			expected: domain.Todo{ID: 1, Task: "Learn Go well", Completed: false, Priority: "medium"},
		},
		{
			name:     "all fields",
			patch:    domain.TodoPatch{Task: strPtr("Done"), Completed: boolPtr(true), Priority: strPtr("low")},
			expected: domain.Todo{ID: 1, Task: "Done", Completed: true, Priority: "low"},
		},
	}

	for _, tt := range tests {
		for backend, repo := range backends(t) {
			t.Run(backend+"/"+tt.name, func(t *testing.T) {
				service := NewTodoService(repo)

				result, err := service.UpdateTodo(context.Background(), 1, tt.patch)
				require.NoError(t, err)
				assert.Equal(t, tt.expected, *result)
			})
		}
	}
}

func TestTodoService_UpdateTodo_Errors(t *testing.T) {
	for backend, repo := range backends(t) {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			service := NewTodoService(repo)

			_, err := service.UpdateTodo(ctx, 999, domain.TodoPatch{Completed: boolPtr(true)})
			assert.True(t, errors.IsNotFound(err))

			_, err = service.UpdateTodo(ctx, 0, domain.TodoPatch{Completed: boolPtr(true)})
			assert.True(t, errors.IsNotFound(err), "non-positive id is a miss")

			_, err = service.UpdateTodo(ctx, 999, domain.TodoPatch{Task: strPtr(strings.Repeat("y", 300))})
			assert.True(t, errors.IsNotFound(err), "missing id wins over an invalid patch")

			_, err = service.UpdateTodo(ctx, 1, domain.TodoPatch{Task: strPtr(strings.Repeat("y", 300))})
			assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
		})
	}
}

func TestTodoService_GetTodo(t *testing.T) {
	for backend, repo := range backends(t) {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			service := NewTodoService(repo)

			todo, err := service.GetTodo(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, "Learn Go", todo.Task)

			_, err = service.GetTodo(ctx, -1)
			assert.True(t, errors.IsNotFound(err))
		})
	}
}

func TestTodoService_DeleteTodo(t *testing.T) {
	for backend, repo := range backends(t) {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			service := NewTodoService(repo)

			require.NoError(t, service.DeleteTodo(ctx, 1))

			todos, err := service.ListTodos(ctx, domain.ListFilter{})
			require.NoError(t, err)
			require.Len(t, todos, 1)
			assert.Equal(t, int64(2), todos[0].ID)

			assert.True(t, errors.IsNotFound(service.DeleteTodo(ctx, 1)))
			assert.True(t, errors.IsNotFound(service.DeleteTodo(ctx, 0)))

			created, err := service.CreateTodo(ctx, "after delete", nil)
			require.NoError(t, err)
			assert.Equal(t, int64(3), created.ID, "deleted ids are not reused")
		})
	}
}

func TestTodoService_CompleteAll(t *testing.T) {
	for backend, repo := range backends(t) {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			service := NewTodoService(repo)

			todos, err := service.CompleteAll(ctx)
			require.NoError(t, err)
			require.Len(t, todos, 2)
			for _, todo := range todos {
				assert.True(t, todo.Completed)
			}

			again, err := service.CompleteAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, todos, again)
		})
	}
}

func TestNewServiceContainer(t *testing.T) {
	container := NewServiceContainer(memory.New(), config.NewConfig())
	require.NotNil(t, container.TodoService)
}
