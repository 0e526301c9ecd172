package storage

import (
	"context"

	"github.com/vincewoo/splitwiser/pkg/api"
)

// Ids выдаются базой (autoincrement) и наружу отдаются десятичными
// строками внутри api типов.

// ExpenseStorage defines interface for expense persistence
type ExpenseStorage interface {
	// CreateExpense inserts a new expense owned by the user and returns it
	// with the assigned id and version 1
	CreateExpense(ctx context.Context, userID string, req api.ExpenseRequest) (*api.Expense, error)

	// GetExpense retrieves an expense owned by the user
	// Returns ErrExpenseNotFound if it doesn't exist or belongs to someone else
	GetExpense(ctx context.Context, userID string, id int64) (*api.Expense, error)

	// UpdateExpense overwrites the expense if req.Version matches the stored
	// version, bumping the version by one
	// Returns ErrVersionConflict on a stale version, ErrExpenseNotFound if
	// the row doesn't exist or belongs to someone else
	UpdateExpense(ctx context.Context, userID string, id int64, req api.ExpenseRequest) (*api.Expense, error)

	// DeleteExpense removes the expense
	// Returns ErrExpenseNotFound if the row doesn't exist or belongs to
	// someone else
	DeleteExpense(ctx context.Context, userID string, id int64) error

	// ListExpenses returns all of the user's expenses ordered by id
	ListExpenses(ctx context.Context, userID string) ([]api.Expense, error)
}
