package storage

import (
	"context"

	"github.com/vincewoo/splitwiser/pkg/api"
)

// GroupStorage defines interface for group persistence
type GroupStorage interface {
	// CreateGroup inserts a new group owned by the user and returns it
	// with the assigned id and version 1
	CreateGroup(ctx context.Context, userID string, req api.GroupRequest) (*api.Group, error)

	// GetGroup retrieves a group owned by the user
	// Returns ErrGroupNotFound if it doesn't exist or belongs to someone else
	GetGroup(ctx context.Context, userID string, id int64) (*api.Group, error)

	// UpdateGroup overwrites the group if req.Version matches the stored
	// version, bumping the version by one
	// Returns ErrVersionConflict on a stale version, ErrGroupNotFound if the
	// row doesn't exist or belongs to someone else
	UpdateGroup(ctx context.Context, userID string, id int64, req api.GroupRequest) (*api.Group, error)

	// DeleteGroup removes the group
	// Returns ErrGroupNotFound if the row doesn't exist or belongs to
	// someone else
	DeleteGroup(ctx context.Context, userID string, id int64) error

	// ListGroups returns all of the user's groups ordered by id
	ListGroups(ctx context.Context, userID string) ([]api.Group, error)
}
