package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"todo-api/internal/domain"
	"todo-api/internal/errors"
	"todo-api/internal/services"
	"todo-api/internal/validation"
)

// maxBodyBytes caps the request body read by create and update.
const maxBodyBytes = 1 << 20

// CompleteAllMessage accompanies the collection returned by PUT /todos/complete-all.
const CompleteAllMessage = "All to-do items marked as completed"

// Handlers serves the to-do HTTP endpoints on top of a TodoService.
type Handlers struct {
	todos    services.TodoService
	requests *validation.RequestValidator
	logger   *log.Logger
}

// NewHandlers creates the endpoint handlers.
func NewHandlers(todos services.TodoService, logger *log.Logger) (*Handlers, error) {
	requests, err := validation.NewRequestValidator()
	if err != nil {
		return nil, err
	}
	return &Handlers{todos: todos, requests: requests, logger: logger}, nil
}

// todoRequest is the body accepted by create and update. A nil field was
// absent or null.
type todoRequest struct {
	Task      *string `json:"task"`
	Completed *bool   `json:"completed"`
	Priority  *string `json:"priority"`
}

type completeAllResponse struct {
	Message string         `json:"message"`
	Todos   []*domain.Todo `json:"todos"`
}

// ListTodos handles GET /todos. When the completed query key is present,
// only "true" selects completed items; any other value selects open ones.
func (h *Handlers) ListTodos(w http.ResponseWriter, r *http.Request) {
	filter := domain.ListFilter{}
	if values, ok := r.URL.Query()["completed"]; ok {
		filter = domain.CompletedFilter(len(values) > 0 && values[0] == "true")
	}

	todos, err := h.todos.ListTodos(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, nonNil(todos))
}

// CreateTodo handles POST /todos.
func (h *Handlers) CreateTodo(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeTodoRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var task string
	if req.Task != nil {
		task = *req.Task
	}

	todo, err := h.todos.CreateTodo(r.Context(), task, req.Priority)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, todo)
}

// GetTodo handles GET /todos/{id}.
func (h *Handlers) GetTodo(w http.ResponseWriter, r *http.Request) {
	id, err := todoID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	todo, err := h.todos.GetTodo(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, todo)
}

// UpdateTodo handles PUT /todos/{id}.
func (h *Handlers) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, err := todoID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	body, doc, err := readJSONBody(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	// A missing todo is a 404 whatever the body says.
	if _, err := h.todos.GetTodo(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	req, err := h.checkTodoRequest(body, doc)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	patch := domain.TodoPatch{Task: req.Task, Completed: req.Completed, Priority: req.Priority}
	todo, err := h.todos.UpdateTodo(r.Context(), id, patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, todo)
}

// DeleteTodo handles DELETE /todos/{id}.
func (h *Handlers) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := todoID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.todos.DeleteTodo(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CompleteAll handles PUT /todos/complete-all.
func (h *Handlers) CompleteAll(w http.ResponseWriter, r *http.Request) {
	todos, err := h.todos.CompleteAll(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, completeAllResponse{
		Message: CompleteAllMessage,
		Todos:   nonNil(todos),
	})
}

// NotFound answers requests that match no route.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, "route not found: "+r.Method+" "+r.URL.Path)
}

// MethodNotAllowed answers requests for a known path with an unsupported method.
func (h *Handlers) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusMethodNotAllowed, "method not allowed: "+r.Method+" "+r.URL.Path)
}

// decodeTodoRequest reads the JSON body. An empty body is treated as {}.
func (h *Handlers) decodeTodoRequest(r *http.Request) (*todoRequest, error) {
	body, doc, err := readJSONBody(r)
	if err != nil {
		return nil, err
	}
	return h.checkTodoRequest(body, doc)
}

// readJSONBody reads the body and checks that it is well-formed JSON.
// An empty body yields a nil body and document.
func readJSONBody(r *http.Request) ([]byte, interface{}, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, nil, errors.NewInvalidInputError("body", nil, "could not read request body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil, nil
	}

	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, nil, errors.NewInvalidInputError("body", nil, "malformed JSON")
	}
	return body, doc, nil
}

// checkTodoRequest validates a parsed body against the request schema and
// decodes it.
func (h *Handlers) checkTodoRequest(body []byte, doc interface{}) (*todoRequest, error) {
	if body == nil {
		return &todoRequest{}, nil
	}

	if err := h.requests.Validate(doc); err != nil {
		if validation.IsValidationError(err) {
			return nil, errors.NewValidationError("invalid request body", err)
		}
		return nil, err
	}

	req := &todoRequest{}
	if err := json.Unmarshal(body, req); err != nil {
		return nil, errors.NewInvalidInputError("body", nil, "malformed JSON")
	}
	return req, nil
}

// todoID parses the {id} path variable. Anything that is not an integer
// can never match a stored todo.
func todoID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.NewNotFoundError("todo", raw)
	}
	return id, nil
}

func nonNil(todos []*domain.Todo) []*domain.Todo {
	if todos == nil {
		return []*domain.Todo{}
	}
	return todos
}
