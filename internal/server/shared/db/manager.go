// Package db wires the document store: connection, index setup, and
// access to the concrete repositories.
package db

import (
	"context"

	"github.com/avelkovs/taskkeeper/internal/server/repositories/tasks"
	"github.com/avelkovs/taskkeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	// EnsureIndexes declares the collection indexes, including the
	// unique index on users.email that backs conflict detection.
	EnsureIndexes(ctx context.Context) error

	// Ping verifies that the store is reachable.
	Ping(ctx context.Context) error

	Users() users.Repository
	Tasks() tasks.Repository

	Close(ctx context.Context) error
}
