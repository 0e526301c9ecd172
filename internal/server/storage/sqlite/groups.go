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

// CreateGroup inserts a new expense group owned by the user
func (s *Storage) CreateGroup(ctx context.Context, userID string, req api.GroupRequest) (*api.Group, error) {
	members, err := marshalStrings(req.Members)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal members: %w", err)
	}

	now := time.Now()
	query := `
		INSERT INTO expense_groups (user_id, name, members, version, created_at, updated_at)
		VALUES (?, ?, ?, 1, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query, userID, req.Name, members, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert group: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get group id: %w", err)
	}

	return &api.Group{
		ID:        strconv.FormatInt(id, 10),
		Name:      req.Name,
		Members:   req.Members,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GetGroup retrieves a group owned by the user
func (s *Storage) GetGroup(ctx context.Context, userID string, id int64) (*api.Group, error) {
	query := `
		SELECT id, name, members, version, created_at, updated_at
		FROM expense_groups
		WHERE id = ? AND user_id = ?
	`

	return scanGroup(s.db.QueryRowContext(ctx, query, id, userID))
}

// UpdateGroup overwrites the group if the submitted version is current
func (s *Storage) UpdateGroup(ctx context.Context, userID string, id int64, req api.GroupRequest) (*api.Group, error) {
	members, err := marshalStrings(req.Members)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal members: %w", err)
	}

	now := time.Now()
	query := `
		UPDATE expense_groups
		SET name = ?, members = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND user_id = ? AND version = ?
	`

	result, err := s.db.ExecContext(ctx, query, req.Name, members, now, id, userID, req.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to update group: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		// Либо строки нет, либо версия устарела
		if _, getErr := s.GetGroup(ctx, userID, id); getErr != nil {
			return nil, getErr
		}
		return nil, storage.ErrVersionConflict
	}

	return s.GetGroup(ctx, userID, id)
}

// DeleteGroup removes the group; expenses referencing it keep a NULL group_id
func (s *Storage) DeleteGroup(ctx context.Context, userID string, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM expense_groups WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrGroupNotFound
	}

	return nil
}

// ListGroups returns all of the user's groups ordered by id
func (s *Storage) ListGroups(ctx context.Context, userID string) ([]api.Group, error) {
	query := `
		SELECT id, name, members, version, created_at, updated_at
		FROM expense_groups
		WHERE user_id = ?
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	var groups []api.Group
	for rows.Next() {
		group, err := scanGroupRow(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *group)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	return groups, nil
}

func scanGroup(row *sql.Row) (*api.Group, error) {
	group, err := scanGroupRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

func scanGroupRow(row rowScanner) (*api.Group, error) {
	group := &api.Group{}
	var id int64
	var members string

	err := row.Scan(
		&id,
		&group.Name,
		&members,
		&group.Version,
		&group.CreatedAt,
		&group.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan group: %w", err)
	}

	group.ID = strconv.FormatInt(id, 10)
	if err := json.Unmarshal([]byte(members), &group.Members); err != nil {
		return nil, fmt.Errorf("failed to unmarshal members: %w", err)
	}

	return group, nil
}
