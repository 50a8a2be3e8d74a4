// Package services contains server-side business logic. This file
// implements UserService: registration, login (the auth gateway), and
// self-service profile edits.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avelkovs/taskkeeper/internal/common"
	"github.com/avelkovs/taskkeeper/internal/server/auth"
	"github.com/avelkovs/taskkeeper/internal/server/config"
	"github.com/avelkovs/taskkeeper/internal/server/models"
	"github.com/avelkovs/taskkeeper/internal/server/repositories/users"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserUpdate carries the optional profile fields of a PATCH /users
// request; nil means "leave unchanged".
type UserUpdate struct {
	Name  *string
	Email *string
}

type UserService struct {
	repo      users.Repository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewUserService(repo users.Repository, cfg *config.Config) *UserService {
	return &UserService{
		repo:      repo,
		jwtSecret: []byte(cfg.SecretKey),
		tokenTTL:  cfg.TokenTTL,
	}
}

// Register creates an account and returns a bearer token for it.
// A taken email yields common.ErrorEmailTaken, whether detected by the
// pre-check or by the store's unique index when two registrations race.
func (s *UserService) Register(ctx context.Context, name, email, password string) (string, error) {
	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return "", common.ErrorEmailTaken
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return "", fmt.Errorf("error checking existing email: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	user, err := s.repo.Create(ctx, &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrorEmailTaken) {
			return "", common.ErrorEmailTaken
		}
		return "", fmt.Errorf("error creating user: %w", err)
	}

	return s.issueToken(user)
}

// Login verifies the credentials and returns a bearer token. A missing
// account and a wrong password both yield common.ErrorUnauthorized so
// the response does not reveal which emails are registered.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", fmt.Errorf("error looking up user: %w", err)
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, password)
	if err != nil {
		// Malformed stored digest. Internal, never client-visible.
		return "", fmt.Errorf("error verifying password: %w", err)
	}
	if !ok {
		return "", common.ErrorUnauthorized
	}

	return s.issueToken(user)
}

// GetByID resolves a token subject to a user record.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrorNotFound
	}

	return s.repo.GetByID(ctx, oid)
}

// EditUser overwrites the provided profile fields of the user with the
// given ID. A malformed ID yields common.ErrorInvalidID, an email held
// by another account common.ErrorEmailTaken, and a vanished user
// common.ErrorUserGone; all three map to the same external status.
func (s *UserService) EditUser(ctx context.Context, id string, upd UserUpdate) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrorInvalidID
	}

	if upd.Email != nil {
		existing, err := s.repo.GetByEmail(ctx, *upd.Email)
		if err == nil && existing.ID != oid {
			return nil, common.ErrorEmailTaken
		}
		if err != nil && !errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("error checking existing email: %w", err)
		}
	}

	user, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUserGone
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Email != nil {
		user.Email = *upd.Email
	}

	if err := s.repo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return nil, common.ErrorUserGone
		case errors.Is(err, common.ErrorEmailTaken):
			return nil, common.ErrorEmailTaken
		default:
			return nil, fmt.Errorf("error updating user: %w", err)
		}
	}

	return user, nil
}

func (s *UserService) issueToken(user *models.User) (string, error) {
	token, err := auth.GenerateToken(user.ID.Hex(), s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("error issuing token: %w", err)
	}
	return token, nil
}
