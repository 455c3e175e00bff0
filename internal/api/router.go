package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"todo-api/internal/services"
)

// NewRouter registers the to-do routes. complete-all is registered ahead
// of {id} so it is never parsed as an id.
func NewRouter(h *Handlers) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/todos", h.ListTodos).Methods(http.MethodGet)
	router.HandleFunc("/todos", h.CreateTodo).Methods(http.MethodPost)
	router.HandleFunc("/todos/complete-all", h.CompleteAll).Methods(http.MethodPut)
	router.HandleFunc("/todos/{id}", h.GetTodo).Methods(http.MethodGet)
	router.HandleFunc("/todos/{id}", h.UpdateTodo).Methods(http.MethodPut)
	router.HandleFunc("/todos/{id}", h.DeleteTodo).Methods(http.MethodDelete)

	router.NotFoundHandler = http.HandlerFunc(h.NotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(h.MethodNotAllowed)

	return router
}

// NewHandler builds the complete HTTP handler: routes wrapped in the
// request id and access log middleware.
func NewHandler(todos services.TodoService, logger *log.Logger) (http.Handler, error) {
	h, err := NewHandlers(todos, logger)
	if err != nil {
		return nil, err
	}
	return RequestID(AccessLog(logger)(NewRouter(h))), nil
}
