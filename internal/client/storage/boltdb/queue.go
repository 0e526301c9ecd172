package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.etcd.io/bbolt"

	"github.com/vincewoo/splitwiser/internal/client/storage"
	"github.com/vincewoo/splitwiser/internal/models"
)

// AddOperation persists a new pending operation and assigns its Seq
func (s *Storage) AddOperation(ctx context.Context, op *models.PendingOperation) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketOperations)
		if bucket == nil {
			return fmt.Errorf("operations bucket not found")
		}

		// NextSequence монотонно растет и переживает рестарты: порядок
		// операций с одинаковым CreatedAt остается стабильным
		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to get next sequence: %w", err)
		}
		op.Seq = seq

		data, err := json.Marshal(op)
		if err != nil {
			return fmt.Errorf("failed to marshal operation: %w", err)
		}

		if err := bucket.Put([]byte(op.ID), data); err != nil {
			return fmt.Errorf("failed to save operation: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("add operation transaction failed: %w", err)
	}

	return nil
}

// GetOperation retrieves an operation by id
func (s *Storage) GetOperation(ctx context.Context, id string) (*models.PendingOperation, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var op *models.PendingOperation

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketOperations)
		if bucket == nil {
			return storage.ErrOperationNotFound
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return storage.ErrOperationNotFound
		}

		op = &models.PendingOperation{}
		if err := json.Unmarshal(data, op); err != nil {
			return fmt.Errorf("failed to unmarshal operation: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return op, nil
}

// UpdateOperation overwrites the stored operation record
func (s *Storage) UpdateOperation(ctx context.Context, op *models.PendingOperation) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketOperations)
		if bucket == nil {
			return storage.ErrOperationNotFound
		}

		if bucket.Get([]byte(op.ID)) == nil {
			return storage.ErrOperationNotFound
		}

		data, err := json.Marshal(op)
		if err != nil {
			return fmt.Errorf("failed to marshal operation: %w", err)
		}

		return bucket.Put([]byte(op.ID), data)
	})

	if err != nil {
		if err == storage.ErrOperationNotFound {
			return err
		}
		return fmt.Errorf("update operation transaction failed: %w", err)
	}

	return nil
}

// DeleteOperation removes the operation from the queue
func (s *Storage) DeleteOperation(ctx context.Context, id string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketOperations)
		if bucket == nil {
			return storage.ErrOperationNotFound
		}

		return bucket.Delete([]byte(id))
	})

	if err != nil {
		return fmt.Errorf("delete operation transaction failed: %w", err)
	}

	return nil
}

// ListOperationsByStatus returns operations with the given status,
// ordered by (CreatedAt, Seq)
func (s *Storage) ListOperationsByStatus(ctx context.Context, status models.OperationStatus) ([]*models.PendingOperation, error) {
	return s.listOperations(ctx, func(op *models.PendingOperation) bool {
		return op.Status == status
	})
}

// ListAllOperations returns every queued operation ordered by (CreatedAt, Seq)
func (s *Storage) ListAllOperations(ctx context.Context) ([]*models.PendingOperation, error) {
	return s.listOperations(ctx, func(op *models.PendingOperation) bool {
		return true
	})
}

// CountByStatus returns the number of operations with the given status
func (s *Storage) CountByStatus(ctx context.Context, status models.OperationStatus) (int, error) {
	ops, err := s.ListOperationsByStatus(ctx, status)
	if err != nil {
		return 0, err
	}
	return len(ops), nil
}

// listOperations собирает операции по фильтру и сортирует по (CreatedAt, Seq)
func (s *Storage) listOperations(ctx context.Context, keep func(*models.PendingOperation) bool) ([]*models.PendingOperation, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var ops []*models.PendingOperation

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketOperations)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var op models.PendingOperation
			if err := json.Unmarshal(v, &op); err != nil {
				return fmt.Errorf("failed to unmarshal operation: %w", err)
			}
			if keep(&op) {
				ops = append(ops, &op)
			}
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}

	sort.Slice(ops, func(i, j int) bool {
		return ops[i].Before(ops[j])
	})

	return ops, nil
}
