package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"todo-api/internal/errors"
	"todo-api/internal/validation"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes payload as JSON with the given status code.
func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		code = http.StatusInternalServerError
		response, _ = json.Marshal(errorResponse{Error: err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondError writes {"error": message} with the given status code.
func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, errorResponse{Error: message})
}

// writeError maps err onto its status code and client message, logging
// server-side failures.
func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)

	requestID := RequestIDFromContext(r.Context())

	if errors.ShouldLogError(err) {
		fields := []interface{}{
			"method", r.Method,
			"path", r.URL.Path,
			"code", errors.GetErrorCode(err),
			"err", err,
		}
		if appErr, ok := errors.AsAppError(err); ok {
			fields = append(fields, appErr.WithContext("request_id", requestID).LogFields()...)
		} else {
			fields = append(fields, "request_id", requestID)
		}
		h.logger.Error("request failed", fields...)
	}

	respondError(w, status, userMessage(err))
}

// userMessage prefers field-level validation messages over the generic
// AppError message.
func userMessage(err error) string {
	var validationErr *validation.ValidationError
	if stderrors.As(err, &validationErr) && validationErr.HasErrors() {
		return validationErr.GetUserFriendlyMessage()
	}
	return errors.GetUserMessage(err)
}
