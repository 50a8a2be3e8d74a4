package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/avelkovs/taskkeeper/internal/common"
	"github.com/avelkovs/taskkeeper/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

func (r *MongoRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	task.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, task); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *MongoRepository) GetByOwner(ctx context.Context, userID, taskID primitive.ObjectID) (*models.Task, error) {
	task := &models.Task{}
	err := r.coll.FindOne(ctx, bson.M{"_id": taskID, "userId": userID}).Decode(task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *MongoRepository) ListByOwner(ctx context.Context, userID primitive.ObjectID, limit, skip int64) ([]*models.Task, error) {
	opts := options.Find().SetLimit(limit).SetSkip(skip)

	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	tasks := []*models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tasks, nil
}

func (r *MongoRepository) Update(ctx context.Context, task *models.Task) error {
	filter := bson.M{"_id": task.ID, "userId": task.UserID}

	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{
		"title":       task.Title,
		"status":      task.Status,
		"description": task.Description,
		"dueAt":       task.DueAt,
	}})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, userID, taskID primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": taskID, "userId": userID})
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return res.DeletedCount, nil
}
