package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/vincewoo/splitwiser/internal/client/storage"
	"github.com/vincewoo/splitwiser/internal/models"
	"github.com/vincewoo/splitwiser/pkg/api"
)

// PutExpense stores or replaces a cached expense under its ID
func (s *Storage) PutExpense(ctx context.Context, expense *api.Expense) error {
	return s.putEntity(bucketExpenses, expense.ID, expense)
}

// GetExpense retrieves a cached expense by id
func (s *Storage) GetExpense(ctx context.Context, id string) (*api.Expense, error) {
	var expense api.Expense
	if err := s.getEntity(bucketExpenses, id, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

// DeleteExpense removes a cached expense
func (s *Storage) DeleteExpense(ctx context.Context, id string) error {
	return s.deleteEntity(bucketExpenses, id)
}

// ListExpenses returns all cached expenses
func (s *Storage) ListExpenses(ctx context.Context) ([]*api.Expense, error) {
	return s.listExpenses(func(e *api.Expense) bool { return true })
}

// ListExpensesByGroup returns cached expenses belonging to a group
func (s *Storage) ListExpensesByGroup(ctx context.Context, groupID string) ([]*api.Expense, error) {
	return s.listExpenses(func(e *api.Expense) bool { return e.GroupID == groupID })
}

// PutGroup stores or replaces a cached group under its ID
func (s *Storage) PutGroup(ctx context.Context, group *api.Group) error {
	return s.putEntity(bucketGroups, group.ID, group)
}

// GetGroup retrieves a cached group by id
func (s *Storage) GetGroup(ctx context.Context, id string) (*api.Group, error) {
	var group api.Group
	if err := s.getEntity(bucketGroups, id, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// DeleteGroup removes a cached group
func (s *Storage) DeleteGroup(ctx context.Context, id string) error {
	return s.deleteEntity(bucketGroups, id)
}

// ListGroups returns all cached groups
func (s *Storage) ListGroups(ctx context.Context) ([]*api.Group, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var groups []*api.Group

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketGroups)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var group api.Group
			if err := json.Unmarshal(v, &group); err != nil {
				return fmt.Errorf("failed to unmarshal group: %w", err)
			}
			groups = append(groups, &group)
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	return groups, nil
}

// ReplaceServerEntities replaces every server-keyed cache entry with the given
// lists. Temp-keyed optimistic entries are preserved: their Create operations
// are still unresolved and the server knows nothing about them.
func (s *Storage) ReplaceServerEntities(ctx context.Context, expenses []*api.Expense, groups []*api.Group) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		if err := replaceBucketEntities(tx, bucketExpenses, len(expenses), func(i int) (string, any) {
			return expenses[i].ID, expenses[i]
		}); err != nil {
			return err
		}
		return replaceBucketEntities(tx, bucketGroups, len(groups), func(i int) (string, any) {
			return groups[i].ID, groups[i]
		})
	})

	if err != nil {
		return fmt.Errorf("replace entities transaction failed: %w", err)
	}

	return nil
}

// replaceBucketEntities удаляет все ключи с server id и вставляет свежие записи
func replaceBucketEntities(tx *bbolt.Tx, bucketName []byte, n int, item func(int) (string, any)) error {
	bucket := tx.Bucket(bucketName)
	if bucket == nil {
		return fmt.Errorf("bucket %s not found", bucketName)
	}

	// Собираем server-keyed ключи заранее: удалять внутри ForEach нельзя
	var stale [][]byte
	err := bucket.ForEach(func(k, v []byte) error {
		if !models.IsTempID(string(k)) {
			key := make([]byte, len(k))
			copy(key, k)
			stale = append(stale, key)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, k := range stale {
		if err := bucket.Delete(k); err != nil {
			return fmt.Errorf("failed to delete stale entity: %w", err)
		}
	}

	for i := 0; i < n; i++ {
		id, v := item(i)
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal entity: %w", err)
		}
		if err := bucket.Put([]byte(id), data); err != nil {
			return fmt.Errorf("failed to save entity: %w", err)
		}
	}

	return nil
}

// putEntity сохраняет JSON-сериализованную сущность по ключу id
func (s *Storage) putEntity(bucketName []byte, id string, v any) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if bucket == nil {
			return fmt.Errorf("bucket %s not found", bucketName)
		}
		return bucket.Put([]byte(id), data)
	})

	if err != nil {
		return fmt.Errorf("put entity transaction failed: %w", err)
	}

	return nil
}

// getEntity читает и десериализует сущность по ключу id
func (s *Storage) getEntity(bucketName []byte, id string, v any) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if bucket == nil {
			return storage.ErrEntityNotFound
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return storage.ErrEntityNotFound
		}

		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to unmarshal entity: %w", err)
		}

		return nil
	})
}

// deleteEntity удаляет сущность по ключу id (отсутствие ключа не ошибка)
func (s *Storage) deleteEntity(bucketName []byte, id string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(id))
	})

	if err != nil {
		return fmt.Errorf("delete entity transaction failed: %w", err)
	}

	return nil
}

// listExpenses собирает расходы из cache по фильтру
func (s *Storage) listExpenses(keep func(*api.Expense) bool) ([]*api.Expense, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var expenses []*api.Expense

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketExpenses)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var expense api.Expense
			if err := json.Unmarshal(v, &expense); err != nil {
				return fmt.Errorf("failed to unmarshal expense: %w", err)
			}
			if keep(&expense) {
				expenses = append(expenses, &expense)
			}
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	return expenses, nil
}
