package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avelkovs/taskkeeper/internal/common"
	"github.com/avelkovs/taskkeeper/internal/logging"
	"github.com/avelkovs/taskkeeper/internal/server/config"
	"github.com/avelkovs/taskkeeper/internal/server/models"
	"github.com/avelkovs/taskkeeper/internal/server/repositories/tasks"
	"github.com/avelkovs/taskkeeper/internal/server/repositories/users"
	"github.com/avelkovs/taskkeeper/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

// fakeUsersRepo is an in-memory users.Repository with the same
// unique-email behavior as the real store.
type fakeUsersRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return nil, common.ErrorEmailTaken
		}
	}
	user.ID = primitive.NewObjectID()
	copied := *user
	f.users[user.ID] = &copied
	return user, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUsersRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return common.ErrorNotFound
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

// fakeTasksRepo is an in-memory tasks.Repository; every lookup matches
// both task ID and owner, like the real store's filters.
type fakeTasksRepo struct {
	tasks map[primitive.ObjectID]*models.Task
}

func newFakeTasksRepo() *fakeTasksRepo {
	return &fakeTasksRepo{tasks: make(map[primitive.ObjectID]*models.Task)}
}

func (f *fakeTasksRepo) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	task.ID = primitive.NewObjectID()
	copied := *task
	f.tasks[task.ID] = &copied
	return task, nil
}

func (f *fakeTasksRepo) GetByOwner(ctx context.Context, userID, taskID primitive.ObjectID) (*models.Task, error) {
	task, ok := f.tasks[taskID]
	if !ok || task.UserID != userID {
		return nil, common.ErrorNotFound
	}
	copied := *task
	return &copied, nil
}

func (f *fakeTasksRepo) ListByOwner(ctx context.Context, userID primitive.ObjectID, limit, skip int64) ([]*models.Task, error) {
	list := []*models.Task{}
	for _, task := range f.tasks {
		if task.UserID == userID {
			copied := *task
			list = append(list, &copied)
		}
	}
	return list, nil
}

func (f *fakeTasksRepo) Update(ctx context.Context, task *models.Task) error {
	stored, ok := f.tasks[task.ID]
	if !ok || stored.UserID != task.UserID {
		return common.ErrorNotFound
	}
	copied := *task
	f.tasks[task.ID] = &copied
	return nil
}

func (f *fakeTasksRepo) Delete(ctx context.Context, userID, taskID primitive.ObjectID) (int64, error) {
	task, ok := f.tasks[taskID]
	if !ok || task.UserID != userID {
		return 0, nil
	}
	delete(f.tasks, taskID)
	return 1, nil
}

// fakeStore implements db.RepositoryManager over the in-memory repos.
type fakeStore struct {
	usersRepo *fakeUsersRepo
	tasksRepo *fakeTasksRepo
	pingErr   error
}

func (f *fakeStore) EnsureIndexes(ctx context.Context) error { return nil }
func (f *fakeStore) Ping(ctx context.Context) error          { return f.pingErr }
func (f *fakeStore) Users() users.Repository                 { return f.usersRepo }
func (f *fakeStore) Tasks() tasks.Repository                 { return f.tasksRepo }
func (f *fakeStore) Close(ctx context.Context) error         { return nil }

// testEnv bundles the router under test with its backing fakes.
type testEnv struct {
	handler   http.Handler
	usersRepo *fakeUsersRepo
	tasksRepo *fakeTasksRepo
	store     *fakeStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	usersRepo := newFakeUsersRepo()
	tasksRepo := newFakeTasksRepo()
	store := &fakeStore{usersRepo: usersRepo, tasksRepo: tasksRepo}

	cfg := &config.Config{SecretKey: testSecret, TokenTTL: time.Hour}
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))

	srv := NewServer("localhost:0", logger,
		services.NewUserService(usersRepo, cfg),
		services.NewTaskService(tasksRepo),
		store, cfg.SecretKey)

	return &testEnv{
		handler:   srv.buildRouter(),
		usersRepo: usersRepo,
		tasksRepo: tasksRepo,
		store:     store,
	}
}

// do performs a request against the router. A string body is sent raw;
// anything else is JSON-encoded.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		encoded, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

// register creates an account through the API and returns its token.
func (e *testEnv) register(t *testing.T, name, email, password string) string {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp tokenResponse
	decodeBody(t, rec, &resp)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	env.store.pingErr = errors.New("connection refused")
	rec = env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequestID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", "", nil)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "client-supplied")
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Equal(t, "client-supplied", rec.Header().Get("X-Request-ID"))
}
