package storage

import (
	"context"

	"github.com/vincewoo/splitwiser/pkg/api"
)

//go:generate moq -out cache_mock.go . CacheStorage

// CacheStorage defines interface for locally cached entities. The cache holds
// both server-confirmed entities (keyed by server id) and optimistic entities
// created offline (keyed by temp id, until their Create operation resolves).
type CacheStorage interface {
	// PutExpense stores or replaces a cached expense under its ID
	PutExpense(ctx context.Context, expense *api.Expense) error

	// GetExpense retrieves a cached expense by id
	// Returns ErrEntityNotFound if it is not cached
	GetExpense(ctx context.Context, id string) (*api.Expense, error)

	// DeleteExpense removes a cached expense
	DeleteExpense(ctx context.Context, id string) error

	// ListExpenses returns all cached expenses
	ListExpenses(ctx context.Context) ([]*api.Expense, error)

	// ListExpensesByGroup returns cached expenses belonging to a group
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*api.Expense, error)

	// PutGroup stores or replaces a cached group under its ID
	PutGroup(ctx context.Context, group *api.Group) error

	// GetGroup retrieves a cached group by id
	GetGroup(ctx context.Context, id string) (*api.Group, error)

	// DeleteGroup removes a cached group
	DeleteGroup(ctx context.Context, id string) error

	// ListGroups returns all cached groups
	ListGroups(ctx context.Context) ([]*api.Group, error)

	// ReplaceServerEntities replaces every server-keyed cache entry with the
	// given lists. Temp-keyed optimistic entries are preserved: they are still
	// owned by unresolved Create operations.
	ReplaceServerEntities(ctx context.Context, expenses []*api.Expense, groups []*api.Group) error
}
