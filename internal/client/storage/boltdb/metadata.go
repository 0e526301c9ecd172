package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/vincewoo/splitwiser/internal/client/storage"
)

var keyLastSync = []byte("last_sync_timestamp")

// SaveLastSyncTimestamp saves the timestamp of the last completed sync
func (s *Storage) SaveLastSyncTimestamp(ctx context.Context, timestamp int64) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(timestamp))
		return bucket.Put(keyLastSync, buf)
	})
}

// GetLastSyncTimestamp retrieves the timestamp of the last completed sync
// Returns 0 if no sync has been performed yet
func (s *Storage) GetLastSyncTimestamp(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	var timestamp int64

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		data := bucket.Get(keyLastSync)
		if data == nil {
			// Синхронизация еще не выполнялась
			return nil
		}
		if len(data) != 8 {
			return fmt.Errorf("corrupted last sync timestamp: %d bytes", len(data))
		}

		timestamp = int64(binary.BigEndian.Uint64(data))
		return nil
	})

	if err != nil {
		return 0, err
	}

	return timestamp, nil
}
