package syncer

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpclient "github.com/vincewoo/splitwiser/internal/client/api"
	"github.com/vincewoo/splitwiser/internal/client/idmap"
	"github.com/vincewoo/splitwiser/internal/client/storage"
	"github.com/vincewoo/splitwiser/internal/models"
	"github.com/vincewoo/splitwiser/pkg/api"
)

func newTestProcessor(t *testing.T, apiMock *httpclient.ClientAPIMock, onProcessing func(*models.PendingOperation)) (*Processor, Storage) {
	t.Helper()

	store := newTestStore(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	proc := NewProcessor(apiMock, store, idmap.NewResolver(store), logger, onProcessing)

	return proc, store
}

func TestProcess_UnresolvedTargetFailsWithoutRetry(t *testing.T) {
	// Update ссылается на temp id без mapping: сетевой вызов невозможен,
	// retry не поможет
	proc, store := newTestProcessor(t, &httpclient.ClientAPIMock{}, nil)

	op := &models.PendingOperation{
		ID:         "op-1",
		Kind:       models.OpUpdateGroup,
		EntityKind: models.EntityGroup,
		EntityID:   models.NewTempID(),
		Payload:    json.RawMessage(`{"name":"trip","version":1}`),
		CreatedAt:  time.Now(),
	}
	require.NoError(t, store.AddOperation(context.Background(), op))

	result := proc.Process(context.Background(), "token", op)

	assert.Equal(t, OutcomeFailed, result.Outcome)
	assert.ErrorIs(t, result.Err, idmap.ErrUnresolvedReference)

	stored, err := store.GetOperation(context.Background(), "op-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, stored.Status)
	assert.Zero(t, stored.RetryCount)
}

func TestProcess_MarksProcessingBeforeNetworkCall(t *testing.T) {
	var statusAtCallback models.OperationStatus
	var sawProcessing bool

	apiMock := &httpclient.ClientAPIMock{
		CreateGroupFunc: func(ctx context.Context, accessToken string, req api.GroupRequest) (*api.Group, error) {
			return &api.Group{ID: "1", Name: req.Name, Version: 1}, nil
		},
	}

	var proc *Processor
	var store Storage
	proc, store = newTestProcessor(t, apiMock, func(op *models.PendingOperation) {
		sawProcessing = true
		stored, err := store.GetOperation(context.Background(), op.ID)
		require.NoError(t, err)
		statusAtCallback = stored.Status
	})

	op := &models.PendingOperation{
		ID:         "op-1",
		Kind:       models.OpCreateGroup,
		EntityKind: models.EntityGroup,
		EntityID:   models.NewTempID(),
		Payload:    json.RawMessage(`{"name":"trip"}`),
		CreatedAt:  time.Now(),
	}
	require.NoError(t, store.AddOperation(context.Background(), op))

	result := proc.Process(context.Background(), "token", op)

	assert.Equal(t, OutcomeSuccess, result.Outcome)
	assert.True(t, sawProcessing)
	assert.Equal(t, models.StatusProcessing, statusAtCallback)
}

func TestProcess_UpdateRefreshesCachedCopy(t *testing.T) {
	apiMock := &httpclient.ClientAPIMock{
		UpdateExpenseFunc: func(ctx context.Context, accessToken, id string, req api.ExpenseRequest) (*api.Expense, error) {
			return &api.Expense{ID: id, Description: req.Description, Amount: req.Amount, Version: 5}, nil
		},
	}
	proc, store := newTestProcessor(t, apiMock, nil)

	require.NoError(t, store.PutExpense(context.Background(), &api.Expense{ID: "8", Description: "old", Amount: 100, Version: 4}))

	op := &models.PendingOperation{
		ID:         "op-1",
		Kind:       models.OpUpdateExpense,
		EntityKind: models.EntityExpense,
		EntityID:   "8",
		Payload:    json.RawMessage(`{"description":"dinner","amount":4250,"version":4}`),
		CreatedAt:  time.Now(),
	}
	require.NoError(t, store.AddOperation(context.Background(), op))

	result := proc.Process(context.Background(), "token", op)
	require.Equal(t, OutcomeSuccess, result.Outcome)

	cached, err := store.GetExpense(context.Background(), "8")
	require.NoError(t, err)
	assert.Equal(t, "dinner", cached.Description)
	assert.Equal(t, int64(5), cached.Version)
}

func TestProcess_CreateReplacesOptimisticEntity(t *testing.T) {
	apiMock := &httpclient.ClientAPIMock{
		CreateGroupFunc: func(ctx context.Context, accessToken string, req api.GroupRequest) (*api.Group, error) {
			return &api.Group{ID: "21", Name: req.Name, Version: 1}, nil
		},
	}
	proc, store := newTestProcessor(t, apiMock, nil)

	tempID := models.NewTempID()
	require.NoError(t, store.PutGroup(context.Background(), &api.Group{ID: tempID, Name: "trip"}))

	op := &models.PendingOperation{
		ID:         "op-1",
		Kind:       models.OpCreateGroup,
		EntityKind: models.EntityGroup,
		EntityID:   tempID,
		Payload:    json.RawMessage(`{"name":"trip"}`),
		CreatedAt:  time.Now(),
	}
	require.NoError(t, store.AddOperation(context.Background(), op))

	result := proc.Process(context.Background(), "token", op)
	require.Equal(t, OutcomeSuccess, result.Outcome)

	// Серверная копия лежит под серверным id, optimistic запись удалена
	group, err := store.GetGroup(context.Background(), "21")
	require.NoError(t, err)
	assert.Equal(t, "21", group.ID)
	assert.Equal(t, "trip", group.Name)
	assert.Equal(t, int64(1), group.Version)

	_, err = store.GetGroup(context.Background(), tempID)
	assert.ErrorIs(t, err, storage.ErrEntityNotFound)
}

func TestProcess_UpdateSendsCurrentCachedVersion(t *testing.T) {
	// Версия в payload заморожена при постановке в очередь; на проводе
	// должна уйти та, что лежит в cache на момент выполнения
	var sentVersion int64
	apiMock := &httpclient.ClientAPIMock{
		UpdateExpenseFunc: func(ctx context.Context, accessToken, id string, req api.ExpenseRequest) (*api.Expense, error) {
			sentVersion = req.Version
			return &api.Expense{ID: id, Description: req.Description, Amount: req.Amount, Version: req.Version + 1}, nil
		},
	}
	proc, store := newTestProcessor(t, apiMock, nil)

	require.NoError(t, store.PutExpense(context.Background(), &api.Expense{ID: "8", Description: "dinner", Amount: 4250, Version: 3}))

	op := &models.PendingOperation{
		ID:         "op-1",
		Kind:       models.OpUpdateExpense,
		EntityKind: models.EntityExpense,
		EntityID:   "8",
		Payload:    json.RawMessage(`{"description":"dinner for two","amount":4250,"version":1}`),
		CreatedAt:  time.Now(),
	}
	require.NoError(t, store.AddOperation(context.Background(), op))

	result := proc.Process(context.Background(), "token", op)
	require.Equal(t, OutcomeSuccess, result.Outcome)
	assert.Equal(t, int64(3), sentVersion)
}
