package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/vincewoo/splitwiser/internal/client/storage"
	"github.com/vincewoo/splitwiser/internal/models"
)

// SaveMapping persists a new temp id to server id mapping.
// A mapping is immutable: a second save for the same temp id fails.
func (s *Storage) SaveMapping(ctx context.Context, m *models.IDMapping) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMappings)
		if bucket == nil {
			return fmt.Errorf("mappings bucket not found")
		}

		if bucket.Get([]byte(m.TempID)) != nil {
			return storage.ErrMappingExists
		}

		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("failed to marshal mapping: %w", err)
		}

		return bucket.Put([]byte(m.TempID), data)
	})

	if err != nil {
		if err == storage.ErrMappingExists {
			return err
		}
		return fmt.Errorf("save mapping transaction failed: %w", err)
	}

	return nil
}

// GetMapping retrieves the mapping for a temp id
func (s *Storage) GetMapping(ctx context.Context, tempID string) (*models.IDMapping, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var m *models.IDMapping

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMappings)
		if bucket == nil {
			return storage.ErrMappingNotFound
		}

		data := bucket.Get([]byte(tempID))
		if data == nil {
			return storage.ErrMappingNotFound
		}

		m = &models.IDMapping{}
		if err := json.Unmarshal(data, m); err != nil {
			return fmt.Errorf("failed to unmarshal mapping: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return m, nil
}
