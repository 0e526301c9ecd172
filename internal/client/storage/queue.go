package storage

import (
	"context"

	"github.com/vincewoo/splitwiser/internal/models"
)

//go:generate moq -out queue_mock.go . QueueStorage

// QueueStorage defines interface for the durable queue of pending operations.
// Ordered retrieval is always by (CreatedAt, Seq) ascending: the sync engine
// depends on strict creation order for id reconciliation correctness.
type QueueStorage interface {
	// AddOperation persists a new pending operation and assigns its Seq
	AddOperation(ctx context.Context, op *models.PendingOperation) error

	// GetOperation retrieves an operation by id
	// Returns ErrOperationNotFound if it doesn't exist
	GetOperation(ctx context.Context, id string) (*models.PendingOperation, error)

	// UpdateOperation overwrites the stored operation record
	UpdateOperation(ctx context.Context, op *models.PendingOperation) error

	// DeleteOperation removes the operation from the queue
	DeleteOperation(ctx context.Context, id string) error

	// ListOperationsByStatus returns operations with the given status,
	// ordered by (CreatedAt, Seq)
	ListOperationsByStatus(ctx context.Context, status models.OperationStatus) ([]*models.PendingOperation, error)

	// ListAllOperations returns every queued operation ordered by (CreatedAt, Seq)
	ListAllOperations(ctx context.Context) ([]*models.PendingOperation, error)

	// CountByStatus returns the number of operations with the given status
	CountByStatus(ctx context.Context, status models.OperationStatus) (int, error)
}

//go:generate moq -out mappings_mock.go . MappingStorage

// MappingStorage defines interface for temp id to server id mappings.
// A mapping is written once and never updated or deleted.
type MappingStorage interface {
	// SaveMapping persists a new mapping
	// Returns ErrMappingExists if the temp id is already mapped
	SaveMapping(ctx context.Context, m *models.IDMapping) error

	// GetMapping retrieves the mapping for a temp id
	// Returns ErrMappingNotFound if the temp id has no mapping yet
	GetMapping(ctx context.Context, tempID string) (*models.IDMapping, error)
}
