package boltdb

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vincewoo/splitwiser/internal/client/storage"
	"github.com/vincewoo/splitwiser/internal/models"
)

func newTestOperation(kind models.OperationKind, createdAt time.Time) *models.PendingOperation {
	entityKind, _ := models.EntityKindForOp(kind)
	return &models.PendingOperation{
		ID:         uuid.New().String(),
		Kind:       kind,
		EntityKind: entityKind,
		EntityID:   models.NewTempID(),
		Payload:    json.RawMessage(`{"description":"Lunch","amount":1200}`),
		CreatedAt:  createdAt,
		Status:     models.StatusPending,
	}
}

func TestAddAndGetOperation(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	op := newTestOperation(models.OpCreateExpense, time.Now())
	require.NoError(t, store.AddOperation(ctx, op))

	// Add присваивает Seq
	assert.NotZero(t, op.Seq)

	got, err := store.GetOperation(ctx, op.ID)
	require.NoError(t, err)
	assert.Equal(t, op.ID, got.ID)
	assert.Equal(t, models.OpCreateExpense, got.Kind)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Equal(t, op.Seq, got.Seq)
}

func TestGetOperation_NotFound(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	_, err := store.GetOperation(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrOperationNotFound)
}

func TestUpdateOperation(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	op := newTestOperation(models.OpCreateGroup, time.Now())
	require.NoError(t, store.AddOperation(ctx, op))

	op.Status = models.StatusFailed
	op.RetryCount = 3
	op.LastError = "connection refused"
	require.NoError(t, store.UpdateOperation(ctx, op))

	got, err := store.GetOperation(ctx, op.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, got.Status)
	assert.Equal(t, 3, got.RetryCount)
	assert.Equal(t, "connection refused", got.LastError)
}

func TestUpdateOperation_NotFound(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	op := newTestOperation(models.OpCreateExpense, time.Now())
	err := store.UpdateOperation(ctx, op)
	assert.ErrorIs(t, err, storage.ErrOperationNotFound)
}

func TestDeleteOperation(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	op := newTestOperation(models.OpDeleteExpense, time.Now())
	require.NoError(t, store.AddOperation(ctx, op))
	require.NoError(t, store.DeleteOperation(ctx, op.ID))

	_, err := store.GetOperation(ctx, op.ID)
	assert.ErrorIs(t, err, storage.ErrOperationNotFound)

	// Удаление отсутствующей операции не ошибка
	assert.NoError(t, store.DeleteOperation(ctx, op.ID))
}

func TestListOperationsByStatus_OrderedByCreation(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	base := time.Now()

	// Добавляем в перемешанном порядке
	op3 := newTestOperation(models.OpCreateExpense, base.Add(2*time.Second))
	op1 := newTestOperation(models.OpCreateGroup, base)
	op2 := newTestOperation(models.OpUpdateExpense, base.Add(time.Second))

	require.NoError(t, store.AddOperation(ctx, op3))
	require.NoError(t, store.AddOperation(ctx, op1))
	require.NoError(t, store.AddOperation(ctx, op2))

	ops, err := store.ListOperationsByStatus(ctx, models.StatusPending)
	require.NoError(t, err)
	require.Len(t, ops, 3)

	assert.Equal(t, op1.ID, ops[0].ID)
	assert.Equal(t, op2.ID, ops[1].ID)
	assert.Equal(t, op3.ID, ops[2].ID)
}

func TestListOperationsByStatus_EqualTimestampsOrderedBySeq(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	// Один и тот же CreatedAt: порядок определяется Seq, то есть
	// порядком постановки в очередь
	createdAt := time.Now()
	first := newTestOperation(models.OpCreateGroup, createdAt)
	second := newTestOperation(models.OpCreateExpense, createdAt)

	require.NoError(t, store.AddOperation(ctx, first))
	require.NoError(t, store.AddOperation(ctx, second))

	ops, err := store.ListOperationsByStatus(ctx, models.StatusPending)
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, first.ID, ops[0].ID)
	assert.Equal(t, second.ID, ops[1].ID)
}

func TestListOperationsByStatus_FiltersStatus(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	pending := newTestOperation(models.OpCreateExpense, time.Now())
	failed := newTestOperation(models.OpCreateExpense, time.Now())
	failed.Status = models.StatusFailed

	require.NoError(t, store.AddOperation(ctx, pending))
	require.NoError(t, store.AddOperation(ctx, failed))

	ops, err := store.ListOperationsByStatus(ctx, models.StatusPending)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, pending.ID, ops[0].ID)

	ops, err = store.ListOperationsByStatus(ctx, models.StatusFailed)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, failed.ID, ops[0].ID)
}

func TestCountByStatus(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	count, err := store.CountByStatus(ctx, models.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, store.AddOperation(ctx, newTestOperation(models.OpCreateExpense, time.Now())))
	require.NoError(t, store.AddOperation(ctx, newTestOperation(models.OpCreateGroup, time.Now())))

	count, err = store.CountByStatus(ctx, models.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSeq_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := t.TempDir() + "/seq_test.db"

	store, err := New(ctx, dbPath)
	require.NoError(t, err)

	op1 := newTestOperation(models.OpCreateExpense, time.Now())
	require.NoError(t, store.AddOperation(ctx, op1))
	require.NoError(t, store.Close())

	// После переоткрытия Seq продолжает расти, а не начинается заново
	store, err = New(ctx, dbPath)
	require.NoError(t, err)
	defer func() { require.NoError(t, store.Close()) }()

	op2 := newTestOperation(models.OpCreateExpense, time.Now())
	require.NoError(t, store.AddOperation(ctx, op2))
	assert.Greater(t, op2.Seq, op1.Seq)
}
