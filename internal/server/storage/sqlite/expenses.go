package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/vincewoo/splitwiser/internal/server/storage"
	"github.com/vincewoo/splitwiser/pkg/api"
)

// CreateExpense inserts a new expense owned by the user
func (s *Storage) CreateExpense(ctx context.Context, userID string, req api.ExpenseRequest) (*api.Expense, error) {
	splitWith, err := marshalStrings(req.SplitWith)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal split_with: %w", err)
	}

	groupID, err := parseGroupID(req.GroupID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	query := `
		INSERT INTO expenses (user_id, group_id, description, currency, paid_by, split_with, amount, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		userID,
		groupID,
		req.Description,
		req.Currency,
		req.PaidBy,
		splitWith,
		req.Amount,
		now,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert expense: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get expense id: %w", err)
	}

	return &api.Expense{
		ID:          strconv.FormatInt(id, 10),
		GroupID:     req.GroupID,
		Description: req.Description,
		Currency:    req.Currency,
		PaidBy:      req.PaidBy,
		SplitWith:   req.SplitWith,
		Amount:      req.Amount,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// GetExpense retrieves an expense owned by the user
func (s *Storage) GetExpense(ctx context.Context, userID string, id int64) (*api.Expense, error) {
	query := `
		SELECT id, group_id, description, currency, paid_by, split_with, amount, version, created_at, updated_at
		FROM expenses
		WHERE id = ? AND user_id = ?
	`

	return scanExpense(s.db.QueryRowContext(ctx, query, id, userID))
}

// UpdateExpense overwrites the expense if the submitted version is current
func (s *Storage) UpdateExpense(ctx context.Context, userID string, id int64, req api.ExpenseRequest) (*api.Expense, error) {
	splitWith, err := marshalStrings(req.SplitWith)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal split_with: %w", err)
	}

	groupID, err := parseGroupID(req.GroupID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	query := `
		UPDATE expenses
		SET group_id = ?, description = ?, currency = ?, paid_by = ?, split_with = ?, amount = ?,
		    version = version + 1, updated_at = ?
		WHERE id = ? AND user_id = ? AND version = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		groupID,
		req.Description,
		req.Currency,
		req.PaidBy,
		splitWith,
		req.Amount,
		now,
		id,
		userID,
		req.Version,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		// Либо строки нет, либо версия устарела
		if _, getErr := s.GetExpense(ctx, userID, id); getErr != nil {
			return nil, getErr
		}
		return nil, storage.ErrVersionConflict
	}

	return s.GetExpense(ctx, userID, id)
}

// DeleteExpense removes the expense
func (s *Storage) DeleteExpense(ctx context.Context, userID string, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrExpenseNotFound
	}

	return nil
}

// ListExpenses returns all of the user's expenses ordered by id
func (s *Storage) ListExpenses(ctx context.Context, userID string) ([]api.Expense, error) {
	query := `
		SELECT id, group_id, description, currency, paid_by, split_with, amount, version, created_at, updated_at
		FROM expenses
		WHERE user_id = ?
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []api.Expense
	for rows.Next() {
		expense, err := scanExpenseRow(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *expense)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row *sql.Row) (*api.Expense, error) {
	expense, err := scanExpenseRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}

func scanExpenseRow(row rowScanner) (*api.Expense, error) {
	expense := &api.Expense{}
	var id int64
	var groupID sql.NullInt64
	var splitWith string

	err := row.Scan(
		&id,
		&groupID,
		&expense.Description,
		&expense.Currency,
		&expense.PaidBy,
		&splitWith,
		&expense.Amount,
		&expense.Version,
		&expense.CreatedAt,
		&expense.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan expense: %w", err)
	}

	expense.ID = strconv.FormatInt(id, 10)
	if groupID.Valid {
		expense.GroupID = strconv.FormatInt(groupID.Int64, 10)
	}
	if err := json.Unmarshal([]byte(splitWith), &expense.SplitWith); err != nil {
		return nil, fmt.Errorf("failed to unmarshal split_with: %w", err)
	}

	return expense, nil
}

// marshalStrings сериализует список имен в JSON текстовую колонку
func marshalStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// parseGroupID переводит десятичную строку group id в NULLable колонку
func parseGroupID(raw string) (sql.NullInt64, error) {
	if raw == "" {
		return sql.NullInt64{}, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return sql.NullInt64{}, fmt.Errorf("invalid group id %q: %w", raw, err)
	}
	return sql.NullInt64{Int64: id, Valid: true}, nil
}
