package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// taskBody is the decoded JSON shape of a task response.
type taskBody struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	Title       string `json:"title"`
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
}

func createTask(t *testing.T, env *testEnv, token string, body map[string]any) taskBody {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/tasks", token, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var task taskBody
	decodeBody(t, rec, &task)
	require.NotEmpty(t, task.ID)
	return task
}

func TestTaskLifecycle(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "Anna", "anna@example.com", "s3cret")

	task := createTask(t, env, token, map[string]any{
		"title":       "Water the plants",
		"status":      "open",
		"description": "balcony first",
	})

	rec := env.do(t, http.MethodGet, "/tasks/"+task.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched taskBody
	decodeBody(t, rec, &fetched)
	assert.Equal(t, task.ID, fetched.ID)
	assert.Equal(t, "Water the plants", fetched.Title)

	// A partial update touches only the provided fields.
	rec = env.do(t, http.MethodPatch, "/tasks/"+task.ID, token, map[string]any{"status": "closed"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated taskBody
	decodeBody(t, rec, &updated)
	assert.Equal(t, "closed", updated.Status)
	assert.Equal(t, "Water the plants", updated.Title)
	assert.Equal(t, "balcony first", updated.Description)

	// Delete answers with the removed task.
	rec = env.do(t, http.MethodDelete, "/tasks/"+task.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var deleted taskBody
	decodeBody(t, rec, &deleted)
	assert.Equal(t, task.ID, deleted.ID)

	rec = env.do(t, http.MethodGet, "/tasks/"+task.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/tasks", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestTasks_CrossUserIsolation(t *testing.T) {
	env := newTestEnv(t)
	annaToken := env.register(t, "Anna", "anna@example.com", "s3cret")
	bertToken := env.register(t, "Bert", "bert@example.com", "s3cret")

	task := createTask(t, env, annaToken, map[string]any{"title": "private", "status": "open"})

	// Another user's requests behave as if the task does not exist.
	rec := env.do(t, http.MethodGet, "/tasks/"+task.ID, bertToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPatch, "/tasks/"+task.ID, bertToken, map[string]any{"status": "closed"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, "/tasks/"+task.ID, bertToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/tasks", bertToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	// The owner still sees the task untouched.
	rec = env.do(t, http.MethodGet, "/tasks/"+task.ID, annaToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var mine taskBody
	decodeBody(t, rec, &mine)
	assert.Equal(t, "open", mine.Status)
}

func TestListTasks(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "Anna", "anna@example.com", "s3cret")

	for i := 0; i < 3; i++ {
		createTask(t, env, token, map[string]any{
			"title":  fmt.Sprintf("task %d", i),
			"status": "open",
		})
	}

	rec := env.do(t, http.MethodGet, "/tasks", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []taskBody
	decodeBody(t, rec, &list)
	assert.Len(t, list, 3)
}

func TestListTasks_BadQuery(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "Anna", "anna@example.com", "s3cret")

	rec := env.do(t, http.MethodGet, "/tasks?limit=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/tasks?skip=1.5", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddTask_Validation(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "Anna", "anna@example.com", "s3cret")

	rec := env.do(t, http.MethodPost, "/tasks", token, map[string]any{"status": "open"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/tasks", token, map[string]any{"title": "x", "status": "done"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/tasks", token, "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEditTask_Validation(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "Anna", "anna@example.com", "s3cret")
	task := createTask(t, env, token, map[string]any{"title": "x", "status": "open"})

	rec := env.do(t, http.MethodPatch, "/tasks/"+task.ID, token, map[string]any{"title": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPatch, "/tasks/"+task.ID, token, map[string]any{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// A malformed ID is treated as an absent task.
	rec = env.do(t, http.MethodPatch, "/tasks/not-an-id", token, map[string]any{"status": "closed"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
