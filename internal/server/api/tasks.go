package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/avelkovs/taskkeeper/internal/server/models"
	"github.com/avelkovs/taskkeeper/internal/server/services"
	"github.com/go-chi/chi/v5"
)

// addTaskRequest is the body of POST /tasks.
type addTaskRequest struct {
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	Description string     `json:"description"`
	DueAt       *time.Time `json:"dueAt"`
}

// editTaskRequest is the body of PATCH /tasks/{id}; absent fields are
// left unchanged.
type editTaskRequest struct {
	Title       *string    `json:"title"`
	Status      *string    `json:"status"`
	Description *string    `json:"description"`
	DueAt       *time.Time `json:"dueAt"`
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r.Context())
	if !ok {
		writeUnauthorized(w, "missing bearer token")
		return
	}

	limit, err := queryInt(r, "limit", services.DefaultListLimit)
	if err != nil {
		writeBadRequest(w, "limit must be an integer")
		return
	}
	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		writeBadRequest(w, "skip must be an integer")
		return
	}

	tasks, err := s.tasks.List(r.Context(), user.ID, limit, skip)
	if err != nil {
		s.logger.Error(r.Context(), "listing tasks failed", "error", err.Error())
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r.Context())
	if !ok {
		writeUnauthorized(w, "missing bearer token")
		return
	}

	task, err := s.tasks.GetByID(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r.Context())
	if !ok {
		writeUnauthorized(w, "missing bearer token")
		return
	}

	var req addTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if req.Title == "" {
		writeBadRequest(w, "title must not be empty")
		return
	}
	status := models.TaskStatus(req.Status)
	if !status.Valid() {
		writeBadRequest(w, "status must be one of: open, closed")
		return
	}

	task, err := s.tasks.Add(r.Context(), user.ID, services.TaskCreate{
		Title:       req.Title,
		Status:      status,
		Description: req.Description,
		DueAt:       req.DueAt,
	})
	if err != nil {
		s.logger.Error(r.Context(), "creating task failed", "error", err.Error())
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleEditTask(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r.Context())
	if !ok {
		writeUnauthorized(w, "missing bearer token")
		return
	}

	var req editTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	upd := services.TaskUpdate{
		Description: req.Description,
		DueAt:       req.DueAt,
	}
	if req.Title != nil {
		if *req.Title == "" {
			writeBadRequest(w, "title must not be empty")
			return
		}
		upd.Title = req.Title
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		if !status.Valid() {
			writeBadRequest(w, "status must be one of: open, closed")
			return
		}
		upd.Status = &status
	}

	task, err := s.tasks.Edit(r.Context(), user.ID, chi.URLParam(r, "id"), upd)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r.Context())
	if !ok {
		writeUnauthorized(w, "missing bearer token")
		return
	}

	task, err := s.tasks.Delete(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string, def int64) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}
