package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/avelkovs/taskkeeper/internal/common"
	"github.com/avelkovs/taskkeeper/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

func (r *MongoRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	user.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		// The unique index on email resolves concurrent double
		// registration: the loser's insert fails here.
		if mongo.IsDuplicateKeyError(err) {
			return nil, common.ErrorEmailTaken
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *MongoRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user := &models.User{}
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *MongoRepository) Update(ctx context.Context, user *models.User) error {
	res, err := r.coll.UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{
		"name":  user.Name,
		"email": user.Email,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return common.ErrorEmailTaken
		}
		return fmt.Errorf("db error: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrorNotFound
	}

	return nil
}
