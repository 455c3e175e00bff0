package cli

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/charmbracelet/log"

	"todo-api/internal/api"
	"todo-api/internal/config"
	"todo-api/internal/repository"
	"todo-api/internal/services"
)

// App owns the repository and HTTP server for one `todos serve` run
type App struct {
	config   *config.Config
	logger   *log.Logger
	repo     repository.Repository
	server   *http.Server
	listener net.Listener
	errors   *ErrorHandler
}

// NewApp opens the configured repository and builds the HTTP handler
func NewApp(ctx context.Context, cfg *config.Config, logger *log.Logger) (*App, error) {
	eh := NewErrorHandler()

	repo, err := config.CreateRepository(ctx, cfg)
	if err != nil {
		if eh.IsDatabaseError(err) {
			logger.Error("storage unavailable", "backend", cfg.Storage.Backend, "err", err)
		}
		return nil, eh.Handle("open repository", err)
	}

	container := services.NewServiceContainer(repo, cfg)
	handler, err := api.NewHandler(container.TodoService, logger)
	if err != nil {
		repo.Close()
		return nil, eh.Handle("build router", err)
	}

	return &App{
		config: cfg,
		logger: logger,
		repo:   repo,
		errors: eh,
		server: &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      handler,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}, nil
}

// Listen binds the configured address and returns the bound address
func (a *App) Listen() (net.Addr, error) {
	listener, err := net.Listen("tcp", a.config.Server.Addr)
	if err != nil {
		return nil, a.errors.Handle("listen on "+a.config.Server.Addr, err)
	}
	a.listener = listener
	return listener.Addr(), nil
}

// Serve answers requests until ctx is cancelled, then shuts down within
// the configured timeout and closes the repository
func (a *App) Serve(ctx context.Context) error {
	if a.listener == nil {
		if _, err := a.Listen(); err != nil {
			a.repo.Close()
			return err
		}
	}

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("listening",
			"addr", a.listener.Addr().String(),
			"backend", a.config.Storage.Backend,
		)
		serveErr <- a.server.Serve(a.listener)
	}()

	var err error
	select {
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
	case <-ctx.Done():
		a.logger.Info("shutting down", "timeout", a.config.Server.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
		defer cancel()
		err = a.server.Shutdown(shutdownCtx)
	}

	if closeErr := a.repo.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return a.errors.Handle("serve", err)
	}

	a.logger.Info("stopped")
	return nil
}
