// Package models holds the persistent entities of TaskKeeper.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is an account record. PasswordHash is an Argon2id PHC string
// and is never serialized outward.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
}
