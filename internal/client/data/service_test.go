package data

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpclient "github.com/vincewoo/splitwiser/internal/client/api"
	"github.com/vincewoo/splitwiser/internal/client/storage"
	"github.com/vincewoo/splitwiser/internal/client/storage/boltdb"
	"github.com/vincewoo/splitwiser/internal/client/syncer"
	"github.com/vincewoo/splitwiser/internal/models"
	"github.com/vincewoo/splitwiser/pkg/api"
)

// newTestService собирает сервис данных поверх реального bbolt хранилища
// и реального движка синхронизации
func newTestService(t *testing.T, apiMock *httpclient.ClientAPIMock, online bool) (Service, *boltdb.Storage, *syncer.Service) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "client_test.db")
	store, err := boltdb.New(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	tokens := &syncer.TokenSourceMock{
		AccessTokenFunc: func(ctx context.Context) (string, error) {
			return "test-token", nil
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	engine := syncer.NewService(apiMock, store, tokens, logger)
	require.NoError(t, engine.Start(context.Background()))
	engine.SetOnline(online)
	engine.Wait()
	t.Cleanup(engine.Wait)

	return NewService(apiMock, store, engine, tokens), store, engine
}

func TestCreateGroup_OfflineQueuesWithTempID(t *testing.T) {
	svc, store, engine := newTestService(t, &httpclient.ClientAPIMock{}, false)

	group, err := svc.CreateGroup(context.Background(), api.GroupRequest{Name: "trip", Members: []string{"alice"}})
	require.NoError(t, err)

	assert.True(t, models.IsTempID(group.ID))
	assert.Equal(t, "trip", group.Name)

	// Оптимистическая копия видна в cache под temp id
	cached, err := store.GetGroup(context.Background(), group.ID)
	require.NoError(t, err)
	assert.Equal(t, "trip", cached.Name)

	assert.Equal(t, 1, engine.State().PendingCount)
}

func TestCreateExpense_OnlineCallsServerDirectly(t *testing.T) {
	apiMock := &httpclient.ClientAPIMock{
		CreateExpenseFunc: func(ctx context.Context, accessToken string, req api.ExpenseRequest) (*api.Expense, error) {
			return &api.Expense{ID: "17", Description: req.Description, Amount: req.Amount, Version: 1}, nil
		},
	}
	svc, store, engine := newTestService(t, apiMock, true)

	expense, err := svc.CreateExpense(context.Background(), api.ExpenseRequest{Description: "dinner", Amount: 4250})
	require.NoError(t, err)

	assert.Equal(t, "17", expense.ID)
	assert.Zero(t, engine.State().PendingCount)

	cached, err := store.GetExpense(context.Background(), "17")
	require.NoError(t, err)
	assert.Equal(t, "dinner", cached.Description)
}

// fakeQueue записывает операции без запуска drain
type fakeQueue struct {
	ops    []*models.PendingOperation
	online bool
}

func (q *fakeQueue) QueueOperation(_ context.Context, op *models.PendingOperation) error {
	q.ops = append(q.ops, op)
	return nil
}

func (q *fakeQueue) Online() bool { return q.online }

func TestCreateExpense_TempGroupTargetAlwaysQueues(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "client_test.db")
	store, err := boltdb.New(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	// Ни одна Func у mock не настроена: даже в онлайне расход с temp id
	// группы обязан пойти через очередь, прямой вызов уронил бы тест
	queue := &fakeQueue{online: true}
	svc := NewService(&httpclient.ClientAPIMock{}, store, queue, &syncer.TokenSourceMock{})

	tempGroup := models.NewTempID()
	expense, err := svc.CreateExpense(context.Background(), api.ExpenseRequest{
		Description: "dinner",
		Amount:      4250,
		GroupID:     tempGroup,
	})
	require.NoError(t, err)

	assert.True(t, models.IsTempID(expense.ID))
	require.Len(t, queue.ops, 1)
	assert.Equal(t, models.OpCreateExpense, queue.ops[0].Kind)
}

func TestCreateExpense_FallsBackToQueueOnServerError(t *testing.T) {
	apiMock := &httpclient.ClientAPIMock{
		CreateExpenseFunc: func(ctx context.Context, accessToken string, req api.ExpenseRequest) (*api.Expense, error) {
			return nil, errors.New("connection refused")
		},
		ListExpensesFunc: func(ctx context.Context, accessToken string) ([]api.Expense, error) {
			return nil, nil
		},
		ListGroupsFunc: func(ctx context.Context, accessToken string) ([]api.Group, error) {
			return nil, nil
		},
	}
	svc, store, engine := newTestService(t, apiMock, true)

	expense, err := svc.CreateExpense(context.Background(), api.ExpenseRequest{Description: "taxi", Amount: 1200})
	require.NoError(t, err)
	assert.True(t, models.IsTempID(expense.ID))

	// Фоновый drain тоже упрется в ту же ошибку; операция остается в очереди
	engine.Wait()

	ops, listErr := store.ListAllOperations(context.Background())
	require.NoError(t, listErr)
	require.Len(t, ops, 1)
	assert.Equal(t, models.OpCreateExpense, ops[0].Kind)
	assert.Equal(t, models.StatusPending, ops[0].Status)
}

func TestUpdateGroup_PendingCreateForcesQueue(t *testing.T) {
	// Прямой UpdateGroup не настроен: вызов уронит тест
	svc, store, _ := newTestService(t, &httpclient.ClientAPIMock{}, false)

	group, err := svc.CreateGroup(context.Background(), api.GroupRequest{Name: "trip"})
	require.NoError(t, err)

	updated, err := svc.UpdateGroup(context.Background(), group.ID, api.GroupRequest{Name: "trip 2026"})
	require.NoError(t, err)
	assert.Equal(t, "trip 2026", updated.Name)
	assert.Equal(t, group.ID, updated.ID)

	ops, err := store.ListAllOperations(context.Background())
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, models.OpCreateGroup, ops[0].Kind)
	assert.Equal(t, models.OpUpdateGroup, ops[1].Kind)
}

func TestUpdateExpense_DirectConflictSurfacesImmediately(t *testing.T) {
	apiMock := &httpclient.ClientAPIMock{
		UpdateExpenseFunc: func(ctx context.Context, accessToken, id string, req api.ExpenseRequest) (*api.Expense, error) {
			return nil, httpclient.ErrConflict
		},
	}
	svc, store, _ := newTestService(t, apiMock, true)

	_, err := svc.UpdateExpense(context.Background(), "5", api.ExpenseRequest{Description: "dinner", Amount: 100, Version: 1})
	assert.ErrorIs(t, err, httpclient.ErrConflict)

	// Интерактивный конфликт не порождает очередную операцию
	ops, listErr := store.ListAllOperations(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, ops)
}

func TestDeleteExpense_OfflineQueuesAndEvictsCache(t *testing.T) {
	svc, store, _ := newTestService(t, &httpclient.ClientAPIMock{}, false)

	require.NoError(t, store.PutExpense(context.Background(), &api.Expense{ID: "9", Description: "dinner", Amount: 100, Version: 1}))

	require.NoError(t, svc.DeleteExpense(context.Background(), "9"))

	_, err := store.GetExpense(context.Background(), "9")
	assert.ErrorIs(t, err, storage.ErrEntityNotFound)

	ops, err := store.ListAllOperations(context.Background())
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, models.OpDeleteExpense, ops[0].Kind)
	assert.Equal(t, "9", ops[0].EntityID)
	assert.Empty(t, ops[0].Payload)
}

func TestReads_ServedFromCache(t *testing.T) {
	svc, store, _ := newTestService(t, &httpclient.ClientAPIMock{}, false)

	require.NoError(t, store.PutGroup(context.Background(), &api.Group{ID: "1", Name: "trip", Version: 1}))
	require.NoError(t, store.PutExpense(context.Background(), &api.Expense{ID: "2", GroupID: "1", Description: "dinner", Amount: 100, Version: 1}))
	require.NoError(t, store.PutExpense(context.Background(), &api.Expense{ID: "3", Description: "solo", Amount: 50, Version: 1}))

	groups, err := svc.ListGroups(context.Background())
	require.NoError(t, err)
	assert.Len(t, groups, 1)

	expenses, err := svc.ListExpenses(context.Background())
	require.NoError(t, err)
	assert.Len(t, expenses, 2)

	byGroup, err := svc.ListExpensesByGroup(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, byGroup, 1)
	assert.Equal(t, "dinner", byGroup[0].Description)
}
