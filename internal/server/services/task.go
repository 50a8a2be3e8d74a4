package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avelkovs/taskkeeper/internal/common"
	"github.com/avelkovs/taskkeeper/internal/server/models"
	"github.com/avelkovs/taskkeeper/internal/server/repositories/tasks"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultListLimit bounds GET /tasks when no limit is given.
const DefaultListLimit = 10

// TaskCreate carries the fields of a new task.
type TaskCreate struct {
	Title       string
	Status      models.TaskStatus
	Description string
	DueAt       *time.Time
}

// TaskUpdate carries the optional fields of a partial edit; nil means
// "leave unchanged".
type TaskUpdate struct {
	Title       *string
	Status      *models.TaskStatus
	Description *string
	DueAt       *time.Time
}

type TaskService struct {
	repo tasks.Repository
}

func NewTaskService(repo tasks.Repository) *TaskService {
	return &TaskService{repo: repo}
}

// List returns the tasks owned by userID, bounded by limit and skip.
func (s *TaskService) List(ctx context.Context, userID primitive.ObjectID, limit, skip int64) ([]*models.Task, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if skip < 0 {
		skip = 0
	}

	list, err := s.repo.ListByOwner(ctx, userID, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}

	return list, nil
}

// GetByID returns the task with the given ID if userID owns it. A
// malformed ID, a missing task, and another user's task all yield
// common.ErrorNotFound, so existence is never confirmed to non-owners.
func (s *TaskService) GetByID(ctx context.Context, userID primitive.ObjectID, taskID string) (*models.Task, error) {
	oid, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return nil, common.ErrorNotFound
	}

	return s.repo.GetByOwner(ctx, userID, oid)
}

// Add creates a task owned by userID. CreatedAt is set here, not by
// the caller.
func (s *TaskService) Add(ctx context.Context, userID primitive.ObjectID, tc TaskCreate) (*models.Task, error) {
	task := &models.Task{
		UserID:      userID,
		Title:       tc.Title,
		Status:      tc.Status,
		Description: tc.Description,
		DueAt:       tc.DueAt,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}

	return created, nil
}

// Edit fetches the task ownership-checked, overwrites only the provided
// fields, and persists the result.
func (s *TaskService) Edit(ctx context.Context, userID primitive.ObjectID, taskID string, tu TaskUpdate) (*models.Task, error) {
	task, err := s.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if tu.Title != nil {
		task.Title = *tu.Title
	}
	if tu.Status != nil {
		task.Status = *tu.Status
	}
	if tu.Description != nil {
		task.Description = *tu.Description
	}
	if tu.DueAt != nil {
		task.DueAt = tu.DueAt
	}

	if err := s.repo.Update(ctx, task); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating task: %w", err)
	}

	return task, nil
}

// Delete removes the task ownership-checked and returns its
// pre-deletion snapshot. If the store reports zero removed documents
// after the fetch succeeded, something else deleted it concurrently and
// the operation fails with common.ErrorInternal.
func (s *TaskService) Delete(ctx context.Context, userID primitive.ObjectID, taskID string) (*models.Task, error) {
	task, err := s.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.Delete(ctx, userID, task.ID)
	if err != nil {
		return nil, fmt.Errorf("error deleting task: %w", err)
	}
	if count != 1 {
		return nil, common.ErrorInternal
	}

	return task, nil
}
