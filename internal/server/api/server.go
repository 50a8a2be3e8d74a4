// Package api provides the HTTP REST surface of TaskKeeper: auth
// endpoints, the bearer-token resource guard, and the user and task
// resource handlers.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/avelkovs/taskkeeper/internal/logging"
	"github.com/avelkovs/taskkeeper/internal/server/services"
	"github.com/avelkovs/taskkeeper/internal/server/shared/db"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight
// requests to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Server is the HTTP API server.
type Server struct {
	address   string
	logger    logging.Logger
	users     *services.UserService
	tasks     *services.TaskService
	store     db.RepositoryManager
	jwtSecret []byte
	server    *http.Server
}

func NewServer(addr string, l logging.Logger, us *services.UserService, ts *services.TaskService, store db.RepositoryManager, secretKey string) *Server {
	return &Server{
		address:   addr,
		logger:    l.With("module", "http_server"),
		users:     us,
		tasks:     ts,
		store:     store,
		jwtSecret: []byte(secretKey),
	}
}

// Run starts the HTTP listener and blocks until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.server = &http.Server{
		Addr:    s.address,
		Handler: s.buildRouter(),
	}

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}
