package service

import (
	"context"
	"errors"
	userserrors "shareit/internal/users/errors"
	apperrors "shareit/pkg/errors"
	"shareit/pkg/model"
)

// Finder is the user lookup other domains need to resolve the acting user.
type Finder interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// LoadActor resolves a user id to a user. A malformed id is reported the same
// way as a missing user.
func LoadActor(ctx context.Context, users Finder, id string) (*model.User, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	user, err := users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) || errors.Is(err, userserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("User", id, userserrors.ErrNotFound)
		}
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}
	return user, nil
}
