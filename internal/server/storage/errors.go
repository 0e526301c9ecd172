package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrExpenseNotFound indicates that expense was not found or belongs to another user
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrGroupNotFound indicates that group was not found or belongs to another user
	ErrGroupNotFound = errors.New("group not found")

	// ErrVersionConflict indicates that the submitted version is stale:
	// the row was modified since the client last read it
	ErrVersionConflict = errors.New("version conflict")
)
