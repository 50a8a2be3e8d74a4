package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/avelkovs/taskkeeper/internal/common"
	"github.com/avelkovs/taskkeeper/internal/server/auth"
	"github.com/avelkovs/taskkeeper/internal/server/models"
	"github.com/google/uuid"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

const (
	ctxKeyRequestID contextKey = "request_id"
	ctxKeyUser      contextKey = "current_user"
)

// maxRequestBodySize is the maximum allowed request body size (1 MB).
const maxRequestBodySize = 1 << 20

// currentUser returns the authenticated user attached by authMiddleware.
func currentUser(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(ctxKeyUser).(*models.User)
	return u, ok
}

// requestIDMiddleware tags each request with an ID. A client-supplied
// X-Request-ID header is kept; otherwise one is generated.
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		ctx := context.WithValue(r.Context(), ctxKeyRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loggingMiddleware logs each request with method, path, status, and duration.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		s.logger.Info(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", r.Context().Value(ctxKeyRequestID),
		)
	})
}

// recoveryMiddleware catches panics in handlers and returns a 500.
func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.Error(r.Context(), "panic recovered in HTTP handler",
					"error", err,
					"method", r.Method,
					"path", r.URL.Path,
					"request_id", r.Context().Value(ctxKeyRequestID),
				)
				writeInternalError(w, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// bodySizeLimitMiddleware caps incoming request bodies.
func (s *Server) bodySizeLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		}
		next.ServeHTTP(w, r)
	})
}

// authMiddleware is the resource guard. It extracts the bearer token,
// verifies it, resolves the subject to a user record, and attaches the
// identity to the request context. Every failure mode (missing header,
// bad signature, expired token, vanished user) is answered with the
// same 401, but the cause stays distinguishable in logs.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeUnauthorized(w, "missing bearer token")
			return
		}

		subject, err := auth.SubjectFromToken(token, s.jwtSecret)
		if err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				s.logger.Warn(r.Context(), "rejected expired token")
			} else {
				s.logger.Warn(r.Context(), "rejected invalid token")
			}
			writeUnauthorized(w, "invalid or expired token")
			return
		}

		user, err := s.users.GetByID(r.Context(), subject)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				s.logger.Warn(r.Context(), "token subject has no user record", "subject", subject)
				writeUnauthorized(w, "invalid or expired token")
				return
			}
			s.logger.Error(r.Context(), "resolving token subject", "error", err.Error())
			writeInternalError(w, "internal server error")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUser, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <t>" header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
