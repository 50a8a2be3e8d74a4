package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// Liveness; pings the store.
	r.Get("/health", s.handleHealth)

	// Auth endpoints (no token required)
	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", s.handleCurrentUser)
			r.Patch("/", s.handleEditUser)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", s.handleListTasks)
			r.Post("/", s.handleAddTask)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetTask)
				r.Patch("/", s.handleEditTask)
				r.Delete("/", s.handleDeleteTask)
			})
		})
	})

	return r
}

// handleHealth reports whether the server and its store are reachable.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.Error(r.Context(), "store ping failed", "error", err.Error())
		writeError(w, http.StatusServiceUnavailable, ErrCodeInternal, "store unreachable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}
