package validation

import (
	"todo-api/internal/config"
	"todo-api/internal/domain"
)

// TodoValidator validates and normalises to-do input
type TodoValidator struct {
	validator *Validator
}

// NewTodoValidator creates a todo validator with built-in limits
func NewTodoValidator() *TodoValidator {
	return &TodoValidator{validator: NewValidator()}
}

// NewTodoValidatorWithConfig creates a todo validator using cfg's limits
func NewTodoValidatorWithConfig(cfg *config.Config) *TodoValidator {
	return &TodoValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateTask validates task text for creation.
func (tv *TodoValidator) ValidateTask(task string) error {
	validationError := NewValidationError()

	trimmed := tv.validator.TrimAndValidateString(task)
	if !tv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("task")
		return validationError
	}

	if !tv.validator.IsValidTaskLength(trimmed) {
		validationError.AddInvalidLengthError("task", trimmed, tv.validator.TaskMaxLength())
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// NormalizeCreate validates the create input and returns the todo to store.
// A missing or blank priority becomes the default priority.
func (tv *TodoValidator) NormalizeCreate(task string, priority *string) (domain.Todo, error) {
	if err := tv.ValidateTask(task); err != nil {
		return domain.Todo{}, err
	}

	p := tv.validator.DefaultPriority()
	if priority != nil && tv.validator.IsNonEmptyString(*priority) {
		p = tv.validator.TrimAndValidateString(*priority)
	}

	return domain.NewTodo(tv.validator.TrimAndValidateString(task), p), nil
}

// NormalizePatch trims patch fields and drops blank task or priority
// values, which leave the stored value unchanged. Over-long task text is
// rejected.
func (tv *TodoValidator) NormalizePatch(patch domain.TodoPatch) (domain.TodoPatch, error) {
	normalized := domain.TodoPatch{Completed: patch.Completed}

	if patch.Task != nil && tv.validator.IsNonEmptyString(*patch.Task) {
		trimmed := tv.validator.TrimAndValidateString(*patch.Task)
		if !tv.validator.IsValidTaskLength(trimmed) {
			validationError := NewValidationError()
			validationError.AddInvalidLengthError("task", trimmed, tv.validator.TaskMaxLength())
			return domain.TodoPatch{}, validationError
		}
		normalized.Task = &trimmed
	}

	if patch.Priority != nil && tv.validator.IsNonEmptyString(*patch.Priority) {
		trimmed := tv.validator.TrimAndValidateString(*patch.Priority)
		normalized.Priority = &trimmed
	}

	return normalized, nil
}

// ValidateTodoID validates a todo ID
func (tv *TodoValidator) ValidateTodoID(id int64) error {
	if !tv.validator.IsValidTodoID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("id", id, "must be a positive integer")
		return validationError
	}
	return nil
}
