package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskStatus enumerates the lifecycle states of a task.
type TaskStatus string

const (
	TaskStatusOpen   TaskStatus = "open"
	TaskStatusClosed TaskStatus = "closed"
)

// Valid reports whether s is a known status value.
func (s TaskStatus) Valid() bool {
	return s == TaskStatusOpen || s == TaskStatusClosed
}

// Task is a to-do item owned by a single user. UserID is immutable
// after creation; every lookup filters by it.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Title       string             `bson:"title" json:"title"`
	Status      TaskStatus         `bson:"status" json:"status"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	DueAt       *time.Time         `bson:"dueAt,omitempty" json:"dueAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
