package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

// registerRequest is the body of POST /auth/register.
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginRequest is the body of POST /auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse is the success body of both auth endpoints.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if req.Name == "" {
		writeBadRequest(w, "name must not be empty")
		return
	}
	if !validEmail(req.Email) {
		writeBadRequest(w, "email must be a valid address")
		return
	}
	if req.Password == "" {
		writeBadRequest(w, "password must not be empty")
		return
	}

	token, err := s.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.logger.Warn(r.Context(), "registration failed", "error", err.Error())
		writeServiceError(w, err)
		return
	}

	s.logger.Info(r.Context(), "user registered", "email", req.Email)
	writeJSON(w, http.StatusCreated, tokenResponse{AccessToken: token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if !validEmail(req.Email) {
		writeBadRequest(w, "email must be a valid address")
		return
	}
	if req.Password == "" {
		writeBadRequest(w, "password must not be empty")
		return
	}

	token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.logger.Warn(r.Context(), "login failed", "error", err.Error())
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse{AccessToken: token})
}

// validEmail applies a cheap shape check; real validation happens when
// mail is sent, which is out of scope.
func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}
