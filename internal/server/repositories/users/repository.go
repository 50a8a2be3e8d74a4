// Package users provides persistence for user accounts.
package users

import (
	"context"

	"github.com/avelkovs/taskkeeper/internal/server/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Repository interface {
	// Create inserts a new user and returns it with the assigned ID.
	// A unique-email violation is reported as common.ErrorEmailTaken.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the user with the given email, or
	// common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the user with the given ID, or common.ErrorNotFound.
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)

	// Update overwrites the mutable profile fields (name, email) of the
	// stored user. A unique-email violation is reported as
	// common.ErrorEmailTaken; a vanished user as common.ErrorNotFound.
	Update(ctx context.Context, user *models.User) error
}
