package api

import (
	"encoding/json"
	"net/http"

	"github.com/avelkovs/taskkeeper/internal/server/services"
)

// editUserRequest is the body of PATCH /users; absent fields are left
// unchanged.
type editUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r.Context())
	if !ok {
		writeUnauthorized(w, "missing bearer token")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleEditUser(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r.Context())
	if !ok {
		writeUnauthorized(w, "missing bearer token")
		return
	}

	var req editUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if req.Name != nil && *req.Name == "" {
		writeBadRequest(w, "name must not be empty")
		return
	}
	if req.Email != nil && !validEmail(*req.Email) {
		writeBadRequest(w, "email must be a valid address")
		return
	}

	updated, err := s.users.EditUser(r.Context(), user.ID.Hex(), services.UserUpdate{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		s.logger.Warn(r.Context(), "editing user failed", "user_id", user.ID.Hex(), "error", err.Error())
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}
