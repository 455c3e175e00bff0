package cli

import (
	"errors"
	"fmt"

	apperrors "todo-api/internal/errors"
	"todo-api/internal/validation"
)

// ErrorHandler turns startup and shutdown failures into operator-facing messages
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle prefixes err with the failed operation, using the most specific
// message the error carries
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}

	var validationErr *validation.ValidationError
	if errors.As(err, &validationErr) {
		return fmt.Errorf("failed to %s: %s", operation, validationErr.GetUserFriendlyMessage())
	}

	if appErr, ok := apperrors.AsAppError(err); ok {
		return fmt.Errorf("failed to %s: %s (%s)", operation, apperrors.GetUserMessage(err), appErr.Code)
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}

// IsDatabaseError checks if an error is a database error
func (eh *ErrorHandler) IsDatabaseError(err error) bool {
	return apperrors.IsErrorType(err, apperrors.ErrorTypeDatabase)
}
