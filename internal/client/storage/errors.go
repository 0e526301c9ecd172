package storage

import "errors"

// Common client storage errors
var (
	// ErrSessionNotFound indicates that no stored session exists
	ErrSessionNotFound = errors.New("session not found")

	// ErrOperationNotFound indicates that pending operation was not found
	ErrOperationNotFound = errors.New("pending operation not found")

	// ErrMappingNotFound indicates that no id mapping exists for a temp id
	ErrMappingNotFound = errors.New("id mapping not found")

	// ErrMappingExists indicates an attempt to overwrite an existing id mapping.
	// Mappings are created once and immutable afterwards.
	ErrMappingExists = errors.New("id mapping already exists")

	// ErrEntityNotFound indicates that cached entity was not found
	ErrEntityNotFound = errors.New("cached entity not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
