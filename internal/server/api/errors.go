package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avelkovs/taskkeeper/internal/common"
)

// Error is the structured error response body.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Common error codes.
const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeValidation   = "validation_error"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeInternal     = "internal_error"
)

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // best-effort write; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Error{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, ErrCodeValidation, message)
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, ErrCodeInternal, message)
}

// writeServiceError maps the sentinel error taxonomy onto HTTP statuses:
// not-found → 404, the conflict family (taken email, invalid or vanished
// user, bad credentials) → 403, everything unexpected → 500. Ownership
// misses arrive here as common.ErrorNotFound, so a non-owner sees the
// same 404 as for an absent resource.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, ErrCodeNotFound, "not found")
	case errors.Is(err, common.ErrorEmailTaken):
		writeError(w, http.StatusForbidden, ErrCodeForbidden, "email already exists")
	case errors.Is(err, common.ErrorInvalidID):
		writeError(w, http.StatusForbidden, ErrCodeForbidden, "invalid id")
	case errors.Is(err, common.ErrorUserGone):
		writeError(w, http.StatusForbidden, ErrCodeForbidden, "user does not exist")
	case errors.Is(err, common.ErrorUnauthorized):
		writeError(w, http.StatusForbidden, ErrCodeForbidden, "credentials are incorrect")
	default:
		writeInternalError(w, "internal server error")
	}
}
