package validation

import (
	"strings"
	"unicode/utf8"

	"todo-api/internal/config"
)

const defaultTaskMaxLength = 255

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance using built-in limits
func NewValidator() *Validator {
	return &Validator{}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidTaskLength checks the task text against the configured maximum,
// counted in runes.
func (v *Validator) IsValidTaskLength(task string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(task)) <= v.TaskMaxLength()
}

// IsValidTodoID checks if a todo ID can refer to a stored record
func (v *Validator) IsValidTodoID(id int64) bool {
	return id > 0
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// TaskMaxLength returns the configured maximum task length or the default
func (v *Validator) TaskMaxLength() int {
	if v.config != nil && v.config.Validation.TaskMaxLength > 0 {
		return v.config.Validation.TaskMaxLength
	}
	return defaultTaskMaxLength
}

// DefaultPriority returns the configured default priority or "medium"
func (v *Validator) DefaultPriority() string {
	if v.config != nil && v.config.Validation.DefaultPriority != "" {
		return v.config.Validation.DefaultPriority
	}
	return "medium"
}
