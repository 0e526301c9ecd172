package boltdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vincewoo/splitwiser/internal/client/storage"
	"github.com/vincewoo/splitwiser/internal/models"
)

func TestSaveAndGetMapping(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	tempID := models.NewTempID()
	m := &models.IDMapping{
		TempID:     tempID,
		ServerID:   "42",
		EntityKind: models.EntityGroup,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, store.SaveMapping(ctx, m))

	got, err := store.GetMapping(ctx, tempID)
	require.NoError(t, err)
	assert.Equal(t, "42", got.ServerID)
	assert.Equal(t, models.EntityGroup, got.EntityKind)
}

func TestGetMapping_NotFound(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	_, err := store.GetMapping(ctx, models.NewTempID())
	assert.ErrorIs(t, err, storage.ErrMappingNotFound)
}

func TestSaveMapping_Immutable(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	tempID := models.NewTempID()
	m := &models.IDMapping{
		TempID:     tempID,
		ServerID:   "7",
		EntityKind: models.EntityExpense,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, store.SaveMapping(ctx, m))

	// Повторная запись для того же temp id запрещена
	dup := &models.IDMapping{
		TempID:     tempID,
		ServerID:   "8",
		EntityKind: models.EntityExpense,
		CreatedAt:  time.Now(),
	}
	err := store.SaveMapping(ctx, dup)
	assert.ErrorIs(t, err, storage.ErrMappingExists)

	// Исходное значение не изменилось
	got, err := store.GetMapping(ctx, tempID)
	require.NoError(t, err)
	assert.Equal(t, "7", got.ServerID)
}
