package db

import (
	"context"
	"fmt"

	"github.com/avelkovs/taskkeeper/internal/server/repositories/tasks"
	"github.com/avelkovs/taskkeeper/internal/server/repositories/users"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection = "users"
	tasksCollection = "tasks"
)

type MongoRepositoryManager struct {
	client *mongo.Client
	db     *mongo.Database
	users  users.Repository
	tasks  tasks.Repository
}

// NewMongoRepositoryManager connects to the MongoDB deployment at uri,
// verifies the connection, and declares the indexes.
func NewMongoRepositoryManager(ctx context.Context, uri, dbName string) (RepositoryManager, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("db connect error: %w", err)
	}

	database := client.Database(dbName)

	m := &MongoRepositoryManager{
		client: client,
		db:     database,
		users:  users.NewMongoRepository(database.Collection(usersCollection)),
		tasks:  tasks.NewMongoRepository(database.Collection(tasksCollection)),
	}

	if err := m.Ping(ctx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := m.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("index setup error: %w", err)
	}

	return m, nil
}

func (m *MongoRepositoryManager) EnsureIndexes(ctx context.Context) error {
	_, err := m.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	_, err = m.db.Collection(tasksCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "dueAt", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("tasks indexes: %w", err)
	}

	return nil
}

func (m *MongoRepositoryManager) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *MongoRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *MongoRepositoryManager) Tasks() tasks.Repository {
	return m.tasks
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
