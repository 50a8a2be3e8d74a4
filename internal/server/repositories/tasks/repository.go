// Package tasks provides persistence for to-do items. Every read,
// update, and delete filters by both task ID and owner ID, so a task
// is never visible outside its owner's context.
package tasks

import (
	"context"

	"github.com/avelkovs/taskkeeper/internal/server/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Repository interface {
	// Create inserts a new task and returns it with the assigned ID.
	Create(ctx context.Context, task *models.Task) (*models.Task, error)

	// GetByOwner returns the task with the given ID owned by userID,
	// or common.ErrorNotFound.
	GetByOwner(ctx context.Context, userID, taskID primitive.ObjectID) (*models.Task, error)

	// ListByOwner returns tasks owned by userID in natural store
	// order, bounded by limit and skip.
	ListByOwner(ctx context.Context, userID primitive.ObjectID, limit, skip int64) ([]*models.Task, error)

	// Update overwrites the mutable fields of the stored task,
	// matching by both ID and owner. Returns common.ErrorNotFound if
	// no such task exists.
	Update(ctx context.Context, task *models.Task) error

	// Delete removes the task with the given ID owned by userID and
	// returns the number of documents removed.
	Delete(ctx context.Context, userID, taskID primitive.ObjectID) (int64, error)
}
